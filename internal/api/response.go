package api

import (
	"encoding/json"
	"net/http"

	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
)

// documentLink points at a rendered document
type documentLink struct {
	Format string `json:"format"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

// minutesResponse is returned by the synchronous minutes endpoint
type minutesResponse struct {
	Message    string         `json:"message"`
	Transcript string         `json:"transcript,omitempty"`
	Minutes    string         `json:"minutes,omitempty"`
	Documents  []documentLink `json:"documents"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func documentURL(name string) string {
	return "/documents/" + name
}

func documentLinks(files []document.File) []documentLink {
	links := make([]documentLink, 0, len(files))
	for _, f := range files {
		links = append(links, documentLink{Format: f.Format, Name: f.Name, URL: documentURL(f.Name)})
	}
	return links
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(r.Context(), "Failed to encode response: %v", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.writeJSON(w, r, status, errorResponse{Error: message})
}
