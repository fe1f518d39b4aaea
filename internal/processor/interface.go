// Package processor runs the minutes pipeline: validate the upload,
// transcribe it, generate minutes and render the documents.
package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
)

// ProgressFunc receives the completed fraction (0..1) and a status line.
type ProgressFunc func(fraction float64, status string)

// Result is the outcome of a successful run.
type Result struct {
	Transcript string
	Minutes    string
	Documents  []document.File
	Duration   time.Duration
}

// Processor defines the interface for meeting recording processing.
type Processor interface {
	// Process runs the whole pipeline on audioPath. progress may be nil.
	Process(ctx context.Context, audioPath string, progress ProgressFunc) (*Result, error)
}
