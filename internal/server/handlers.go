// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pdiddy/formatforge/internal/compat"
	"github.com/pdiddy/formatforge/internal/detect"
	"github.com/pdiddy/formatforge/internal/history"
	"github.com/pdiddy/formatforge/pkg/types"
)

type convertRequest struct {
	InputPath string `json:"input_path"`
	OutputDir string `json:"output_dir"`
	Source    string `json:"source"`
	Target    string `json:"target"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Convert handles POST /api/convert. The response body is an NDJSON stream
// of outcomes ending with one success or failure object.
func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.InputPath == "" || req.Target == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("input_path and target are required"))
		return
	}

	job := types.ConversionJob{
		InputPath: req.InputPath,
		OutputDir: req.OutputDir,
		Target:    types.NormalizeTarget(req.Target),
	}
	if job.OutputDir == "" {
		job.OutputDir = filepath.Dir(req.InputPath)
	}

	if req.Source != "" {
		st, err := types.ParseSourceType(req.Source)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown_source_type", err)
			return
		}
		job.Source = st
	} else {
		st, err := detect.Detect(req.InputPath)
		if err != nil {
			code := "io_failure"
			if errors.Is(err, types.ErrDetection) {
				code = "detection_failed"
			}
			writeError(w, http.StatusUnprocessableEntity, code, err)
			return
		}
		job.Source = st
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	for o := range s.dispatcher.Submit(r.Context(), job) {
		if err := enc.Encode(o); err != nil {
			s.logger.Debug("client went away", "err", err)
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

type detectResponse struct {
	Source  types.SourceType     `json:"source"`
	MIME    string               `json:"mime,omitempty"`
	ByMagic bool                 `json:"by_magic"`
	Targets []types.TargetFormat `json:"targets"`
}

// Detect handles GET /api/detect?path=.
func (s *Server) Detect(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("path is required"))
		return
	}
	res, err := detect.Inspect(path)
	if err != nil {
		if errors.Is(err, types.ErrDetection) {
			writeError(w, http.StatusUnprocessableEntity, "detection_failed", err)
			return
		}
		writeError(w, http.StatusNotFound, "io_failure", err)
		return
	}
	targets, _ := compat.TargetsFor(res.Type)
	writeJSON(w, http.StatusOK, detectResponse{
		Source:  res.Type,
		MIME:    res.MIME,
		ByMagic: res.ByMagic,
		Targets: targets,
	})
}

// Targets handles GET /api/targets/{source}.
func (s *Server) Targets(w http.ResponseWriter, r *http.Request) {
	st, err := types.ParseSourceType(mux.Vars(r)["source"])
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_source_type", err)
		return
	}
	targets, err := compat.TargetsFor(st)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown_source_type", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"source": st, "targets": targets})
}

// History handles GET /api/history?status=&source=&limit=.
func (s *Server) History(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history_disabled", errors.New("job history is disabled"))
		return
	}
	q := r.URL.Query()
	opts := history.ListOptions{
		Status: types.JobStatus(q.Get("status")),
		Source: types.SourceType(q.Get("source")),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", errors.New("limit must be a non-negative integer"))
			return
		}
		opts.MaxResults = n
	}

	records, err := s.history.List(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history_failure", err)
		return
	}
	if records == nil {
		records = []types.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}
