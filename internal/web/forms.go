package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/storelinks/internal/core"
	"github.com/JonMunkholm/storelinks/internal/spreadsheet"
)

// multipartMemory is how much of a multipart form is kept in memory before
// spilling to temp files.
const multipartMemory = 32 << 20

// parseForm limits the body to the configured upload size and parses a
// multipart or urlencoded form.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	err := r.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	return err
}

// readFile returns the name and content of the uploaded file field.
func readFile(r *http.Request, field string) (string, []byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil, fmt.Errorf("%s: %w", field, core.ErrNoFile)
		}
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	return filepath.Base(header.Filename), data, nil
}

// formInput builds a core.Input from the fields with the given suffix
// ("" for single-file forms, "_a"/"_b" for comparisons). The file comes from
// the upload field or, when upload_id is set, from an earlier inspection.
func (s *Server) formInput(r *http.Request, suffix string) (core.Input, error) {
	in := core.Input{
		Sheet:       formValue(r, "sheet"+suffix),
		StoreColumn: formValue(r, "store_col"+suffix),
		LinkColumn:  formValue(r, "link_col"+suffix),
	}

	if id := formValue(r, "upload_id"+suffix); id != "" {
		up, err := s.uploads.Get(id)
		if err != nil {
			return in, err
		}
		in.FileName, in.Data = up.FileName, up.Data
		return in, nil
	}

	name, data, err := readFile(r, "file"+suffix)
	if err != nil {
		return in, err
	}
	in.FileName, in.Data = name, data
	return in, nil
}

// extractRequest builds a hyperlink extraction request from the form.
func extractRequest(r *http.Request) (core.ExtractRequest, error) {
	name, data, err := readFile(r, "file")
	if err != nil {
		return core.ExtractRequest{}, err
	}

	opts := spreadsheet.DefaultCellOptions()
	opts.Sheet = formValue(r, "sheet")
	if v := formValue(r, "store_letter"); v != "" {
		opts.StoreLetter = v
	}
	if v := formValue(r, "link_letter"); v != "" {
		opts.LinkLetter = v
	}
	opts.StartRow = parseIntField(r, "start_row", opts.StartRow)

	return core.ExtractRequest{
		FileName:  name,
		Data:      data,
		Options:   opts,
		URLPrefix: formValue(r, "url_prefix"),
	}, nil
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// parseBoolField treats "on", "true", "1" and friends as true.
func parseBoolField(r *http.Request, name string) bool {
	v := strings.ToLower(formValue(r, name))
	if v == "on" || v == "yes" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}

// parseIntField parses a positive integer field with a default value.
func parseIntField(r *http.Request, name string, defaultVal int) int {
	i, err := strconv.Atoi(formValue(r, name))
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
