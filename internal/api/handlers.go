package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusdocs/webharvester/internal/crawler"
)

type crawlRequest struct {
	RootURL  string `json:"root_url"`
	MaxDepth *int   `json:"max_depth"`
}

func (s *Server) startCrawl(w http.ResponseWriter, r *http.Request) {
	var req crawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.RootURL == "" {
		writeError(w, http.StatusBadRequest, "root_url is required")
		return
	}
	// Depths of zero or less fall back to the configured default.
	maxDepth := s.cfg.Crawler.MaxDepthDefault
	if req.MaxDepth != nil && *req.MaxDepth > 0 {
		maxDepth = *req.MaxDepth
	}

	jobID, err := s.crawls.Start(r.Context(), req.RootURL, maxDepth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":    jobID,
		"status":    crawler.JobStatusRunning,
		"root_url":  req.RootURL,
		"max_depth": maxDepth,
	})
}

func (s *Server) getJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	job, ok := s.tracker.Snapshot(jobID)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (s *Server) cancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "job_id")
	if err := s.crawls.Cancel(jobID); err != nil {
		if errors.Is(err, crawler.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "job not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"job_id": jobID})
}
