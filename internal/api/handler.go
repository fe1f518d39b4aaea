package api

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/jobs"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed html/*.html
var htmlFS embed.FS

// Handler handles HTTP requests
type Handler struct {
	processor processor.Processor
	queue     jobs.Queue
	config    *config.Config
	templates *template.Template
	markdown  goldmark.Markdown
	logger    logger.Logger
}

// NewHandler creates a new handler
func NewHandler(proc processor.Processor, queue jobs.Queue, cfg *config.Config, log logger.Logger) (*Handler, error) {
	templates, err := template.ParseFS(htmlFS, "html/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Handler{
		processor: proc,
		queue:     queue,
		config:    cfg,
		templates: templates,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger:    log,
	}, nil
}
