package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

func newTestStorage(t *testing.T) *JobStorage {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "db", "minutes.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := NewJobStorage(context.Background(), db, logger.NewNop())
	if err != nil {
		t.Fatalf("NewJobStorage() error = %v", err)
	}
	return s
}

func TestJobLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	if err := s.Create(ctx, &JobRecord{ID: "job-1", Filename: "standup.mp3"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != StatusQueued || got.Filename != "standup.mp3" {
		t.Errorf("created job = %+v", got)
	}
	if got.Documents == nil || len(got.Documents) != 0 {
		t.Errorf("Documents = %#v, want empty slice", got.Documents)
	}

	if err := s.UpdateProgress(ctx, "job-1", 0.3, "Transcribing audio..."); err != nil {
		t.Fatalf("UpdateProgress() error = %v", err)
	}
	got, _ = s.Get(ctx, "job-1")
	if got.Status != StatusRunning || got.Progress != 0.3 || got.Message != "Transcribing audio..." {
		t.Errorf("running job = %+v", got)
	}

	docs := []string{"meeting_minutes_abc.pdf", "meeting_minutes_abc.docx"}
	if err := s.Complete(ctx, "job-1", "Process complete!", "hello", "# Minutes", docs); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	got, _ = s.Get(ctx, "job-1")
	if got.Status != StatusDone || got.Progress != 1 || got.Minutes != "# Minutes" || got.Transcript != "hello" {
		t.Errorf("done job = %+v", got)
	}
	if len(got.Documents) != 2 || got.Documents[1] != "meeting_minutes_abc.docx" {
		t.Errorf("Documents = %v", got.Documents)
	}
}

func TestFail(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_ = s.Create(ctx, &JobRecord{ID: "job-1", Filename: "a.mp3"})
	if err := s.Fail(ctx, "job-1", "Error generating minutes: timeout"); err != nil {
		t.Fatalf("Fail() error = %v", err)
	}

	got, _ := s.Get(ctx, "job-1")
	if got.Status != StatusFailed || got.Message != "Error generating minutes: timeout" {
		t.Errorf("failed job = %+v", got)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := s.UpdateProgress(ctx, "missing", 0.1, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProgress() error = %v, want ErrNotFound", err)
	}
	if err := s.Fail(ctx, "missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Fail() error = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	base := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		rec := &JobRecord{ID: id, Filename: id + ".mp3", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Create(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		ids := make([]string, len(got))
		for i, r := range got {
			ids[i] = r.ID
		}
		t.Errorf("List() ids = %v, want [c b]", ids)
	}
}

func TestFailUnfinished(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_ = s.Create(ctx, &JobRecord{ID: "queued", Filename: "a.mp3"})
	_ = s.Create(ctx, &JobRecord{ID: "running", Filename: "b.mp3"})
	_ = s.UpdateProgress(ctx, "running", 0.5, "x")
	_ = s.Create(ctx, &JobRecord{ID: "done", Filename: "c.mp3"})
	_ = s.Complete(ctx, "done", "Process complete!", "t", "m", nil)

	n, err := s.FailUnfinished(ctx, "interrupted")
	if err != nil {
		t.Fatalf("FailUnfinished() error = %v", err)
	}
	if n != 2 {
		t.Errorf("FailUnfinished() = %d, want 2", n)
	}

	done, _ := s.Get(ctx, "done")
	if done.Status != StatusDone {
		t.Errorf("done job status changed to %s", done.Status)
	}
}
