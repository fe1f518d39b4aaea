package jobs

import (
	"context"
	"sync"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
)

type implQueue struct {
	processor processor.Processor
	store     Store
	logger    logger.Logger
	sem       *semaphore

	// ctx is cancelled by Close and interrupts every job still in flight
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// New creates a Queue running at most maxConcurrent jobs at a time.
func New(proc processor.Processor, store Store, log logger.Logger, maxConcurrent int) Queue {
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &implQueue{
		processor: proc,
		store:     store,
		logger:    log,
		sem:       newSemaphore(maxConcurrent),
		ctx:       ctx,
		cancel:    cancel,
	}
}
