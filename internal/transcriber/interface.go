// Package transcriber turns meeting recordings into plain text.
package transcriber

import (
	"context"
	"errors"
)

// ErrEmptyTranscript is returned when a provider answers with no text.
var ErrEmptyTranscript = errors.New("empty transcript")

// Transcriber converts an audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
	// Name returns the provider name ("gemini", "openai", "whisper").
	Name() string
}
