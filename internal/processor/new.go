package processor

import (
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

type implProcessor struct {
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	renderer    document.Renderer
	logger      logger.Logger
}

// New creates a new Processor instance
func New(t transcriber.Transcriber, s summarizer.Summarizer, r document.Renderer, log logger.Logger) Processor {
	return &implProcessor{
		transcriber: t,
		summarizer:  s,
		renderer:    r,
		logger:      log,
	}
}
