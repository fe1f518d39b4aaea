package jobs

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
	"github.com/nguyentantai21042004/meeting-minutes/internal/storage/sqlite"
)

const (
	queuedMessage      = "Queued"
	interruptedMessage = "Interrupted by server shutdown."
)

func (q *implQueue) Submit(ctx context.Context, audioPath, filename string) (*sqlite.JobRecord, error) {
	if err := processor.Validate(filename); err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrClosed
	}

	record := &sqlite.JobRecord{
		ID:        uuid.NewString(),
		Filename:  filename,
		Status:    sqlite.StatusQueued,
		Message:   queuedMessage,
		Documents: []string{},
	}
	if err := q.store.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	q.logger.Info(ctx, "Job %s queued: %s", record.ID, filename)

	// The job outlives the request but keeps its values (request id).
	// It ends when the queue closes.
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(q.ctx, cancel)

	q.wg.Add(1)
	go func() {
		defer cancel()
		defer stop()
		q.run(jobCtx, record.ID, audioPath)
	}()

	return record, nil
}

func (q *implQueue) run(ctx context.Context, id, audioPath string) {
	defer q.wg.Done()
	defer q.removeUpload(ctx, audioPath)

	if err := q.sem.acquire(ctx); err != nil {
		q.fail(ctx, id, interruptedMessage)
		return
	}
	defer q.sem.release()

	q.logger.Info(ctx, "Job %s started", id)

	result, err := q.processor.Process(ctx, audioPath, func(fraction float64, status string) {
		if err := q.store.UpdateProgress(ctx, id, fraction, status); err != nil {
			q.logger.Warn(ctx, "Failed to record progress for job %s: %v", id, err)
		}
	})
	if err != nil {
		message := processor.UserMessage(err)
		if ctx.Err() != nil {
			message = interruptedMessage
		}
		q.fail(ctx, id, message)
		return
	}

	names := make([]string, 0, len(result.Documents))
	for _, d := range result.Documents {
		names = append(names, d.Name)
	}

	if err := q.store.Complete(ctx, id, processor.StatusComplete, result.Transcript, result.Minutes, names); err != nil {
		q.logger.Error(ctx, "Failed to store result of job %s: %v", id, err)
		q.fail(ctx, id, "Error saving minutes: "+err.Error())
		return
	}

	q.logger.Info(ctx, "Job %s done in %s", id, result.Duration)
}

// fail records the terminal state even when the job context is already cancelled
func (q *implQueue) fail(ctx context.Context, id, message string) {
	q.logger.Error(ctx, "Job %s failed: %s", id, message)
	if err := q.store.Fail(context.WithoutCancel(ctx), id, message); err != nil {
		q.logger.Error(ctx, "Failed to mark job %s failed: %v", id, err)
	}
}

func (q *implQueue) removeUpload(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		q.logger.Warn(ctx, "Failed to cleanup upload %s: %v", path, err)
	}
}

func (q *implQueue) Get(ctx context.Context, id string) (*sqlite.JobRecord, error) {
	return q.store.Get(ctx, id)
}

func (q *implQueue) List(ctx context.Context, limit int) ([]*sqlite.JobRecord, error) {
	return q.store.List(ctx, limit)
}

func (q *implQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
}
