package document

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

type implRenderer struct {
	writers   []Writer
	outputDir string
	title     string
	logger    logger.Logger
}

// New builds a Renderer for cfg.Document.Formats writing into outputDir.
func New(cfg config.DocumentConfig, outputDir, title string, log logger.Logger) (Renderer, error) {
	writers := make([]Writer, 0, len(cfg.Formats))
	for _, format := range cfg.Formats {
		w, err := NewWriter(format, cfg)
		if err != nil {
			return nil, err
		}
		writers = append(writers, w)
	}

	return &implRenderer{
		writers:   writers,
		outputDir: outputDir,
		title:     title,
		logger:    log,
	}, nil
}

// NewWriter returns the Writer for a single format.
func NewWriter(format string, cfg config.DocumentConfig) (Writer, error) {
	switch strings.ToLower(format) {
	case "pdf":
		return &pdfWriter{
			fontFamily: cfg.FontFamily,
			fontSize:   cfg.FontSize,
			lineHeight: cfg.LineHeight,
			margin:     cfg.Margin,
		}, nil
	case "docx":
		return newDocxWriter(cfg.FontFamily, cfg.FontSize), nil
	case "md":
		return markdownWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}
}
