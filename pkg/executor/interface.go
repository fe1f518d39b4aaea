package executor

import "context"

// Executor runs external tools (ffmpeg, whisper.cpp) on behalf of the pipeline.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// Available reports whether name resolves to an executable.
	Available(name string) bool
}
