// Package jobs runs minutes generation in the background and tracks each
// submission in storage.
package jobs

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/meeting-minutes/internal/storage/sqlite"
)

// ErrClosed is returned by Submit once the queue is shutting down.
var ErrClosed = errors.New("job queue closed")

// Queue accepts uploads and processes them asynchronously.
type Queue interface {
	// Submit validates filename, stores a queued job and processes
	// audioPath in the background. The queue owns audioPath afterwards and
	// removes it once the job finishes.
	Submit(ctx context.Context, audioPath, filename string) (*sqlite.JobRecord, error)
	Get(ctx context.Context, id string) (*sqlite.JobRecord, error)
	List(ctx context.Context, limit int) ([]*sqlite.JobRecord, error)
	// Close stops accepting jobs, cancels the ones in flight and waits for
	// them to record their final state.
	Close()
}

// Store persists job state.
type Store interface {
	Create(ctx context.Context, record *sqlite.JobRecord) error
	UpdateProgress(ctx context.Context, id string, progress float64, message string) error
	Complete(ctx context.Context, id, message, transcript, minutes string, documents []string) error
	Fail(ctx context.Context, id, message string) error
	Get(ctx context.Context, id string) (*sqlite.JobRecord, error)
	List(ctx context.Context, limit int) ([]*sqlite.JobRecord, error)
}
