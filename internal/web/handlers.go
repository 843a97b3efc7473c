package web

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/storelinks/internal/core"
	"github.com/JonMunkholm/storelinks/internal/logging"
	"github.com/JonMunkholm/storelinks/internal/spreadsheet"
	"github.com/JonMunkholm/storelinks/internal/web/templates"
)

// handleIndex renders the landing page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, nil, templates.IndexPage(s.indexParams()))
}

// handleInspect keeps the upload and renders the sheet and column pickers.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	res, uploadID, err := s.inspect(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	renderPage(w, r, templates.InspectPartial(res, uploadID), templates.InspectPage(res, uploadID))
}

// handleDedup runs the deduplication and renders metrics, views and the
// download link.
func (s *Server) handleDedup(w http.ResponseWriter, r *http.Request) {
	view, err := s.dedup(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	renderPage(w, r, templates.DedupPartial(view), templates.DedupPage(view))
}

// handleCompare compares the store sets of two uploads.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	view, err := s.compare(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	renderPage(w, r, templates.ComparePartial(view), templates.ComparePage(view))
}

// handleExtract resolves links from hyperlink cells by column letter.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	view, err := s.extract(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	renderPage(w, r, templates.ExtractPartial(view), templates.ExtractPage(view))
}

// handleDownload serves a finished workbook once or many times until it expires.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	res, err := s.results.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", spreadsheet.XLSXContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(res.Data); err != nil {
		logging.FromContext(r.Context()).Warn("download interrupted", "id", res.ID, "error", err)
	}
}

func (s *Server) inspect(w http.ResponseWriter, r *http.Request) (*core.InspectResult, string, error) {
	if err := s.parseForm(w, r); err != nil {
		return nil, "", err
	}
	in, err := s.formInput(r, "")
	if err != nil {
		return nil, "", err
	}

	res, err := s.service.Inspect(operationContext(r), in)
	if err != nil {
		return nil, "", err
	}

	uploadID := formValue(r, "upload_id")
	if uploadID == "" {
		uploadID = s.uploads.Put(in.FileName, in.Data)
	}
	return res, uploadID, nil
}

func (s *Server) dedup(w http.ResponseWriter, r *http.Request) (templates.DedupView, error) {
	if err := s.parseForm(w, r); err != nil {
		return templates.DedupView{}, err
	}
	in, err := s.formInput(r, "")
	if err != nil {
		return templates.DedupView{}, err
	}

	req := core.DedupRequest{Input: in, OnePerStore: parseBoolField(r, "one_per_store")}
	res, err := s.service.Dedup(operationContext(r), req)
	if err != nil {
		return templates.DedupView{}, err
	}

	name := core.OutputName(in.FileName, core.DedupSuffix)
	return templates.DedupView{
		Result:     res,
		View:       formValue(r, "view"),
		DownloadID: s.results.Put(name, res.Workbook),
		FileName:   name,
		MaxRows:    templates.DefaultMaxRows,
	}, nil
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) (templates.CompareView, error) {
	if err := s.parseForm(w, r); err != nil {
		return templates.CompareView{}, err
	}
	a, err := s.formInput(r, "_a")
	if err != nil {
		return templates.CompareView{}, err
	}
	b, err := s.formInput(r, "_b")
	if err != nil {
		return templates.CompareView{}, err
	}

	req := core.CompareRequest{A: a, B: b, IncludeLinks: parseBoolField(r, "include_links")}
	res, err := s.service.Compare(operationContext(r), req)
	if err != nil {
		return templates.CompareView{}, err
	}

	return templates.CompareView{
		Result:     res,
		DownloadID: s.results.Put(core.CompareOutputName, res.Workbook),
		FileName:   core.CompareOutputName,
		MaxRows:    templates.DefaultMaxRows,
	}, nil
}

func (s *Server) extract(w http.ResponseWriter, r *http.Request) (templates.ExtractView, error) {
	if err := s.parseForm(w, r); err != nil {
		return templates.ExtractView{}, err
	}
	req, err := extractRequest(r)
	if err != nil {
		return templates.ExtractView{}, err
	}

	res, err := s.service.Extract(operationContext(r), req)
	if err != nil {
		return templates.ExtractView{}, err
	}

	name := core.OutputName(req.FileName, core.ExtractSuffix)
	return templates.ExtractView{
		Result:     res,
		DownloadID: s.results.Put(name, res.Workbook),
		FileName:   name,
		MaxRows:    templates.DefaultMaxRows,
	}, nil
}

// renderPage renders partial for HTMX requests and page otherwise. A nil
// partial always renders the page.
func renderPage(w http.ResponseWriter, r *http.Request, partial, page templ.Component) {
	c := page
	if partial != nil && isHTMX(r) {
		c = partial
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}
