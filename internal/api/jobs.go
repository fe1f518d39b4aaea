package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/meeting-minutes/internal/jobs"
	"github.com/nguyentantai21042004/meeting-minutes/internal/storage/sqlite"
)

// jobResponse adds download links to a stored job
type jobResponse struct {
	*sqlite.JobRecord
	Links []documentLink `json:"links"`
}

func newJobResponse(record *sqlite.JobRecord) jobResponse {
	links := make([]documentLink, 0, len(record.Documents))
	for _, name := range record.Documents {
		links = append(links, documentLink{Format: formatOf(name), Name: name, URL: documentURL(name)})
	}
	return jobResponse{JobRecord: record, Links: links}
}

// SubmitJob queues an upload for background processing
func (h *Handler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	path, filename, err := h.saveUpload(w, r)
	if err != nil {
		h.logger.Warn(r.Context(), "Upload rejected (%q): %v", filename, err)
		h.writeError(w, r, statusFor(err), messageFor(err, h.config.Server.MaxUploadMB))
		return
	}

	record, err := h.queue.Submit(r.Context(), path, filename)
	if err != nil {
		h.removeUpload(r, path)
		if errors.Is(err, jobs.ErrClosed) {
			h.writeError(w, r, http.StatusServiceUnavailable, "Server is shutting down.")
			return
		}
		h.logger.Error(r.Context(), "Failed to submit job: %v", err)
		h.writeError(w, r, statusFor(err), messageFor(err, h.config.Server.MaxUploadMB))
		return
	}

	w.Header().Set("Location", "/api/v1/jobs/"+record.ID)
	h.writeJSON(w, r, http.StatusAccepted, newJobResponse(record))
}

// ListJobs returns the most recent jobs
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			h.writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	records, err := h.queue.List(r.Context(), limit)
	if err != nil {
		h.logger.Error(r.Context(), "Failed to list jobs: %v", err)
		h.writeError(w, r, http.StatusInternalServerError, "failed to list jobs")
		return
	}

	resp := make([]jobResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, newJobResponse(rec))
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

// GetJob returns one job
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.queue.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sqlite.ErrNotFound) {
			h.writeError(w, r, http.StatusNotFound, "job not found")
			return
		}
		h.logger.Error(r.Context(), "Failed to get job %s: %v", id, err)
		h.writeError(w, r, http.StatusInternalServerError, "failed to get job")
		return
	}

	h.writeJSON(w, r, http.StatusOK, newJobResponse(record))
}
