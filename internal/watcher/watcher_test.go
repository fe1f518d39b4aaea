package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
)

func TestIsMP3(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.mp3", true},
		{"/inbox/B.MP3", true},
		{"a.wav", false},
		{"mp3", false},
		{"a.mp3.part", false},
	}
	for _, tt := range tests {
		if got := isMP3(tt.path); got != tt.want {
			t.Errorf("isMP3(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func startWatcher(t *testing.T, dir string, handler EventHandler) context.CancelFunc {
	t.Helper()

	w, err := New(dir, handler, logger.NewNop(), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	w.(*implWatcher).settleDelay = 0

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		w.Stop()
	})
	return cancel
}

func TestWatcherPicksUpMP3(t *testing.T) {
	dir := t.TempDir()
	seen := make(chan string, 4)

	startWatcher(t, dir, func(_ context.Context, path string) error {
		seen <- filepath.Base(path)
		return nil
	})

	// Let the watch settle
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "standup.mp3"), []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-seen:
		if got != "standup.mp3" {
			t.Errorf("handled %q, want standup.mp3", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("mp3 file was not handled")
	}
}

func TestWatcherProcessesExisting(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "waiting.mp3"), []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}

	seen := make(chan string, 1)
	startWatcher(t, dir, func(_ context.Context, path string) error {
		seen <- filepath.Base(path)
		return nil
	})

	select {
	case got := <-seen:
		if got != "waiting.mp3" {
			t.Errorf("handled %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("existing recording was not handled")
	}
}

type fakeProcessor struct {
	err error
}

func (f *fakeProcessor) Process(context.Context, string, processor.ProgressFunc) (*processor.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &processor.Result{Documents: []document.File{{Format: "pdf", Path: "out/meeting_minutes_x.pdf"}}}, nil
}

func TestArchiveHandler(t *testing.T) {
	inbox := t.TempDir()
	archived := filepath.Join(t.TempDir(), "archived")
	path := filepath.Join(inbox, "standup.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}

	handler := NewArchiveHandler(&fakeProcessor{}, archived, logger.NewNop())
	if err := handler(context.Background(), path); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("recording still in inbox")
	}
	if _, err := os.Stat(filepath.Join(archived, "standup.mp3")); err != nil {
		t.Errorf("recording not archived: %v", err)
	}
}

func TestArchiveHandlerFailureKeepsFile(t *testing.T) {
	inbox := t.TempDir()
	path := filepath.Join(inbox, "standup.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0644); err != nil {
		t.Fatal(err)
	}

	proc := &fakeProcessor{err: &processor.StageError{Stage: processor.StageTranscription, Err: errors.New("quota")}}
	handler := NewArchiveHandler(proc, t.TempDir(), logger.NewNop())

	err := handler(context.Background(), path)
	if err == nil || err.Error() != "Error during transcription: quota" {
		t.Errorf("handler error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("failed recording must stay in the inbox")
	}
}
