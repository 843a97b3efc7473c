package web

import (
	"net/http"

	"github.com/JonMunkholm/storelinks/internal/core"
	"github.com/JonMunkholm/storelinks/internal/links"
)

// HealthResponse reports processing capacity and cached results.
type HealthResponse struct {
	Status  string                   `json:"status"`
	Uploads core.UploadLimiterStatus `json:"uploads"`
	Results int                      `json:"results"`
}

// TableJSON is a table in API responses.
type TableJSON struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// InspectResponse is the /api/inspect body. UploadID can be sent back as
// upload_id instead of the file.
type InspectResponse struct {
	*core.InspectResult
	UploadID string    `json:"uploadId"`
	Preview  TableJSON `json:"preview"`
}

// DedupResponse is the /api/dedup body.
type DedupResponse struct {
	DownloadID string        `json:"downloadId"`
	FileName   string        `json:"fileName"`
	Summary    links.Summary `json:"summary"`
	Pairs      []links.Pair  `json:"pairs"`
	Groups     []links.Group `json:"groups"`
}

// CompareResponse is the /api/compare body.
type CompareResponse struct {
	*core.CompareResult
	DownloadID string `json:"downloadId"`
	FileName   string `json:"fileName"`
}

// ExtractResponse is the /api/extract body.
type ExtractResponse struct {
	*core.ExtractResult
	DownloadID string `json:"downloadId"`
	FileName   string `json:"fileName"`
}

// handleHealth reports limiter status; it is not rate limited.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Results: s.results.Len()}
	if l := s.service.Limiter(); l != nil {
		resp.Uploads = l.Status()
	}
	writeJSON(w, resp)
}

func (s *Server) handleAPIInspect(w http.ResponseWriter, r *http.Request) {
	res, uploadID, err := s.inspect(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}

	resp := InspectResponse{InspectResult: res, UploadID: uploadID}
	if res.Preview != nil {
		resp.Preview = TableJSON{Columns: res.Preview.Columns, Rows: res.Preview.Rows}
	}
	writeJSON(w, resp)
}

func (s *Server) handleAPIDedup(w http.ResponseWriter, r *http.Request) {
	view, err := s.dedup(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, DedupResponse{
		DownloadID: view.DownloadID,
		FileName:   view.FileName,
		Summary:    view.Result.Summary,
		Pairs:      view.Result.Pairs,
		Groups:     view.Result.Groups,
	})
}

func (s *Server) handleAPICompare(w http.ResponseWriter, r *http.Request) {
	view, err := s.compare(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, CompareResponse{CompareResult: view.Result, DownloadID: view.DownloadID, FileName: view.FileName})
}

func (s *Server) handleAPIExtract(w http.ResponseWriter, r *http.Request) {
	view, err := s.extract(w, r)
	if err != nil {
		respondError(w, r, err, 0)
		return
	}
	writeJSON(w, ExtractResponse{ExtractResult: view.Result, DownloadID: view.DownloadID, FileName: view.FileName})
}
