package executor

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX tools")
	}
	exec := New()
	ctx := context.Background()

	out, err := exec.Execute(ctx, "echo", "minutes")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "minutes" {
		t.Errorf("Execute() = %q, want %q", out, "minutes")
	}

	dir := t.TempDir()
	out, err = exec.ExecuteInDir(ctx, dir, "pwd")
	if err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if !strings.Contains(out, "/") {
		t.Errorf("ExecuteInDir() = %q, want a path", out)
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX tools")
	}
	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should include stderr", err)
	}
}

func TestAvailable(t *testing.T) {
	exec := New()
	if exec.Available("definitely-not-a-real-binary-xyz") {
		t.Error("Available() = true for a missing binary")
	}
}
