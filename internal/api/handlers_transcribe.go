package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/outline"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/pipeline"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
)

// submitRequest is the body for POST /api/transcriptions.
type submitRequest struct {
	Page        string             `json:"page"`
	Title       string             `json:"title"`
	Recognition recognition.Result `json:"recognition"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Recognition.Label == "" && len(req.Recognition.Words) == 0 {
		jsonError(w, "recognition result is required", http.StatusBadRequest)
		return
	}

	s.submitJob(w, req.Page, req.Title, req.Recognition)
}

// strokesRequest is the body for POST /api/transcriptions/strokes. The
// strokes are sent to the recognition service before structuring.
type strokesRequest struct {
	Page    string               `json:"page"`
	Title   string               `json:"title"`
	Strokes []recognition.Stroke `json:"strokes"`
}

func (s *Server) handleSubmitStrokes(w http.ResponseWriter, r *http.Request) {
	if s.recognizer == nil {
		jsonError(w, "recognition service is not configured", http.StatusServiceUnavailable)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req strokesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Strokes) == 0 {
		jsonError(w, "at least one stroke is required", http.StatusBadRequest)
		return
	}

	res, err := s.recognizer.Recognize(r.Context(), req.Strokes)
	if err != nil {
		s.log.Error("recognition failed", "page", req.Page, "error", err)
		jsonError(w, "recognition failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	s.submitJob(w, req.Page, req.Title, *res)
}

func (s *Server) handleSubmitHOCR(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	res, err := recognition.ParseHOCR(r.Body)
	if err != nil {
		jsonError(w, "invalid hocr: "+err.Error(), http.StatusBadRequest)
		return
	}
	if res.Label == "" {
		jsonError(w, "hocr document contains no text lines", http.StatusBadRequest)
		return
	}

	s.submitJob(w, r.URL.Query().Get("page"), r.URL.Query().Get("title"), *res)
}

func (s *Server) submitJob(w http.ResponseWriter, page, title string, res recognition.Result) {
	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(page, now),
		Page:      page,
		Title:     title,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetInput(res)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"page":     job.Page,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/transcriptions/%s", job.ID),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

// jobResult looks up a job and its structured document, writing the
// appropriate error when either is missing.
func (s *Server) jobResult(w http.ResponseWriter, r *http.Request) *pipeline.Job {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil
	}
	if job.Result() == nil {
		jsonError(w, "job has no result yet", http.StatusConflict)
		return nil
	}
	return job
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	job := s.jobResult(w, r)
	if job == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Result())
}

func (s *Server) handleMarkdown(w http.ResponseWriter, r *http.Request) {
	job := s.jobResult(w, r)
	if job == nil {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(outline.Markdown(job.Result())))
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	job := s.jobResult(w, r)
	if job == nil {
		return
	}
	title := job.Title
	if title == "" {
		title = job.Page
	}
	data, err := outline.PDF(job.Result(), title)
	if err != nil {
		jsonError(w, "render pdf: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(data)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
