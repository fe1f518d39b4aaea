package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
)

// pageData feeds html/index.html
type pageData struct {
	Title       string
	Message     string
	IsError     bool
	Minutes     template.HTML
	Documents   []documentLink
	MaxUploadMB int
}

// Index renders the upload form
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pageData{})
}

// CreateMinutesForm runs the pipeline for the web form and renders the
// minutes on the same page
func (h *Handler) CreateMinutesForm(w http.ResponseWriter, r *http.Request) {
	result, err := h.runUpload(w, r)
	if err != nil {
		h.renderPage(w, r, statusFor(err), pageData{
			Message: messageFor(err, h.config.Server.MaxUploadMB),
			IsError: true,
		})
		return
	}

	h.renderPage(w, r, http.StatusOK, pageData{
		Message:   processor.StatusComplete,
		Minutes:   h.renderMarkdown(r, result.Minutes),
		Documents: documentLinks(result.Documents),
	})
}

// CreateMinutes runs the pipeline and returns JSON
func (h *Handler) CreateMinutes(w http.ResponseWriter, r *http.Request) {
	result, err := h.runUpload(w, r)
	if err != nil {
		h.writeJSON(w, r, statusFor(err), minutesResponse{
			Message:   messageFor(err, h.config.Server.MaxUploadMB),
			Documents: []documentLink{},
		})
		return
	}

	h.writeJSON(w, r, http.StatusOK, minutesResponse{
		Message:    processor.StatusComplete,
		Transcript: result.Transcript,
		Minutes:    result.Minutes,
		Documents:  documentLinks(result.Documents),
	})
}

// runUpload saves the upload, processes it and removes it again.
func (h *Handler) runUpload(w http.ResponseWriter, r *http.Request) (*processor.Result, error) {
	path, filename, err := h.saveUpload(w, r)
	if err != nil {
		h.logger.Warn(r.Context(), "Upload rejected (%q): %v", filename, err)
		return nil, err
	}
	defer h.removeUpload(r, path)

	h.logger.Info(r.Context(), "Processing upload %s as %s", filename, path)

	return h.processor.Process(r.Context(), path, func(fraction float64, status string) {
		h.logger.Debug(r.Context(), "%s: %.0f%% %s", filename, fraction*100, status)
	})
}

// renderMarkdown converts minutes to HTML. goldmark's default renderer
// drops raw HTML from the minutes and leaves an "omitted" comment instead.
func (h *Handler) renderMarkdown(r *http.Request, markdown string) template.HTML {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdown), &buf); err != nil {
		h.logger.Warn(r.Context(), "Failed to render minutes as HTML: %v", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(markdown) + "</pre>")
	}
	return template.HTML(buf.String())
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	data.Title = h.config.Minutes.Title
	data.MaxUploadMB = h.config.Server.MaxUploadMB

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		h.logger.Error(r.Context(), "Failed to render page: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
