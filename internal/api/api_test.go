package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/jobs"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
	"github.com/nguyentantai21042004/meeting-minutes/internal/storage/sqlite"
)

type fakeProcessor struct {
	minutes  string
	err      error
	gotPath  string
	gotExist bool
}

func (f *fakeProcessor) Process(_ context.Context, audioPath string, progress processor.ProgressFunc) (*processor.Result, error) {
	f.gotPath = audioPath
	_, statErr := os.Stat(audioPath)
	f.gotExist = statErr == nil

	if err := processor.Validate(audioPath); err != nil {
		return nil, err
	}
	if progress != nil {
		progress(0.1, processor.StatusStarting)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &processor.Result{
		Transcript: "Alice: hello",
		Minutes:    f.minutes,
		Documents:  []document.File{{Format: "pdf", Name: "meeting_minutes_abc.pdf", Path: "out/meeting_minutes_abc.pdf"}},
	}, nil
}

type testServer struct {
	handler http.Handler
	cfg     *config.Config
	queue   jobs.Queue
}

func newTestServer(t *testing.T, proc processor.Processor) *testServer {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.Uploads = filepath.Join(t.TempDir(), "uploads")
	cfg.Paths.Output = filepath.Join(t.TempDir(), "output")
	cfg.Server.MaxUploadMB = 1

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := sqlite.NewJobStorage(context.Background(), db, logger.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	queue := jobs.New(proc, store, logger.NewNop(), 1)
	t.Cleanup(queue.Close)

	router, err := NewRouter(proc, queue, cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	return &testServer{handler: router.Routes(), cfg: cfg, queue: queue}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// uploadRequest builds a multipart request; an empty filename sends no file.
func uploadRequest(t *testing.T, target, filename string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("audio", filename)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = part.Write([]byte("ID3\x04\x00\x00\x00\x00\x00\x00"))
	} else {
		_ = mw.WriteField("note", "no file")
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})

	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="audio"`) || !strings.Contains(body, "Meeting Minutes") {
		t.Error("index page lacks the upload form")
	}
}

func TestCreateMinutesValidation(t *testing.T) {
	tests := []struct {
		name     string
		req      func(t *testing.T) *http.Request
		wantCode int
		wantMsg  string
	}{
		{
			name:     "no file",
			req:      func(t *testing.T) *http.Request { return uploadRequest(t, "/api/v1/minutes", "") },
			wantCode: http.StatusBadRequest,
			wantMsg:  "Please upload an audio file.",
		},
		{
			name: "not multipart",
			req: func(*testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/v1/minutes", strings.NewReader("{}"))
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "Please upload an audio file.",
		},
		{
			name:     "wav file",
			req:      func(t *testing.T) *http.Request { return uploadRequest(t, "/api/v1/minutes", "notes.wav") },
			wantCode: http.StatusBadRequest,
			wantMsg:  "Please upload an MP3 file.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := &fakeProcessor{minutes: "# Minutes"}
			s := newTestServer(t, proc)

			rec := s.do(tt.req(t))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			var resp minutesResponse
			decode(t, rec, &resp)
			if resp.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", resp.Message, tt.wantMsg)
			}
			if proc.gotPath != "" {
				t.Error("processor must not run for a rejected upload")
			}
		})
	}
}

func TestCreateMinutes(t *testing.T) {
	proc := &fakeProcessor{minutes: "# Minutes\n\n- Budget approved"}
	s := newTestServer(t, proc)

	rec := s.do(uploadRequest(t, "/api/v1/minutes", "Board Meeting.MP3"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var resp minutesResponse
	decode(t, rec, &resp)
	if resp.Message != "Process complete!" || resp.Minutes != proc.minutes || resp.Transcript != "Alice: hello" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Documents) != 1 || resp.Documents[0].URL != "/documents/meeting_minutes_abc.pdf" {
		t.Errorf("documents = %+v", resp.Documents)
	}

	if !proc.gotExist || !strings.HasSuffix(proc.gotPath, ".mp3") {
		t.Errorf("processor got %q (exists=%v)", proc.gotPath, proc.gotExist)
	}
	if _, err := os.Stat(proc.gotPath); !os.IsNotExist(err) {
		t.Error("upload should be removed after processing")
	}
}

func TestCreateMinutesProviderError(t *testing.T) {
	proc := &fakeProcessor{err: &processor.StageError{Stage: processor.StageTranscription, Err: errors.New("quota exceeded")}}
	s := newTestServer(t, proc)

	rec := s.do(uploadRequest(t, "/api/v1/minutes", "a.mp3"))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	var resp minutesResponse
	decode(t, rec, &resp)
	if resp.Message != "Error during transcription: quota exceeded" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestCreateMinutesTooLarge(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{minutes: "m"})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("audio", "big.mp3")
	_, _ = part.Write(bytes.Repeat([]byte{0}, 2<<20))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/minutes", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := s.do(req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestCreateMinutesForm(t *testing.T) {
	proc := &fakeProcessor{minutes: "# Weekly Sync\n\n<script>alert(1)</script>\n\n- **Owner:** Bob"}
	s := newTestServer(t, proc)

	rec := s.do(uploadRequest(t, "/minutes", "sync.mp3"))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"<h1>Weekly Sync</h1>", "<strong>Owner:</strong>", `href="/documents/meeting_minutes_abc.pdf"`, "Process complete!"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("raw HTML from the minutes must not be rendered")
	}
	if strings.Contains(body, "alert(1)") {
		t.Error("raw HTML from the minutes should be dropped, not escaped")
	}
}

func TestCreateMinutesFormValidation(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})

	rec := s.do(uploadRequest(t, "/minutes", "notes.m4a"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Please upload an MP3 file.") {
		t.Error("validation message not shown on the page")
	}
}

func TestDownloadDocument(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})

	if err := os.MkdirAll(s.cfg.Paths.Output, 0755); err != nil {
		t.Fatal(err)
	}
	name := "meeting_minutes_0123456789abcdef.pdf"
	if err := os.WriteFile(filepath.Join(s.cfg.Paths.Output, name), []byte("%PDF-1.3"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.cfg.Paths.Output, "secret.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/documents/" + name, http.StatusOK},
		{"/documents/secret.txt", http.StatusNotFound},
		{"/documents/meeting_minutes_missing.pdf", http.StatusNotFound},
		{"/documents/..%2F..%2Fetc%2Fpasswd", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := s.do(httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
					t.Errorf("Content-Type = %q", ct)
				}
				if !strings.Contains(rec.Header().Get("Content-Disposition"), name) {
					t.Error("missing attachment disposition")
				}
			}
		})
	}
}

func TestJobsFlow(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{minutes: "# Minutes"})

	rec := s.do(uploadRequest(t, "/api/v1/jobs", "standup.mp3"))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}

	var job jobResponse
	decode(t, rec, &job)
	if job.JobRecord == nil || job.ID == "" || job.Filename != "standup.mp3" {
		t.Fatalf("job = %+v", job)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/v1/jobs/"+job.ID {
		t.Errorf("Location = %q", loc)
	}

	var got jobResponse
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+job.ID, nil))
		got = jobResponse{}
		decode(t, rec, &got)
		if got.Status == sqlite.StatusDone {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if got.Status != sqlite.StatusDone {
		t.Fatalf("job did not complete: %+v", got.JobRecord)
	}
	if len(got.Links) != 1 || got.Links[0].Format != "pdf" {
		t.Errorf("links = %+v", got.Links)
	}

	rec = s.do(httptest.NewRequest(http.MethodGet, "/api/v1/jobs?limit=10", nil))
	var list []jobResponse
	decode(t, rec, &list)
	if len(list) != 1 {
		t.Errorf("list returned %d jobs", len(list))
	}
}

func TestJobsErrors(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})

	tests := []struct {
		name     string
		req      *http.Request
		wantCode int
	}{
		{"unknown job", httptest.NewRequest(http.MethodGet, "/api/v1/jobs/nope", nil), http.StatusNotFound},
		{"bad limit", httptest.NewRequest(http.MethodGet, "/api/v1/jobs?limit=-1", nil), http.StatusBadRequest},
		{"not mp3", uploadRequest(t, "/api/v1/jobs", "a.ogg"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := s.do(tt.req); rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})

	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	var resp map[string]interface{}
	decode(t, rec, &resp)
	if resp["status"] != "ok" || resp["transcription"] != "gemini" {
		t.Errorf("health = %v", resp)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, &fakeProcessor{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/minutes", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rec := s.do(req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("missing allow-origin header")
	}
}
