package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
)

var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"md":   "text/markdown; charset=utf-8",
}

func formatOf(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

// DownloadDocument serves a rendered document from the output dir
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "name"))
	if !strings.HasPrefix(name, document.FilePrefix) {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.config.Paths.Output, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	if ct, ok := contentTypes[formatOf(name)]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeFile(w, r, path)
}

// GetHealth reports the configured providers
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status":        "ok",
		"transcription": h.config.Transcription.Provider,
		"minutes":       h.config.Minutes.Provider,
		"formats":       h.config.Document.Formats,
	})
}
