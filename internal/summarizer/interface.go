package summarizer

import (
	"context"
	"errors"
)

// ErrEmptyMinutes is returned when the model answers with no text.
var ErrEmptyMinutes = errors.New("empty minutes")

// Summarizer turns a meeting transcript into markdown minutes.
type Summarizer interface {
	Generate(ctx context.Context, transcript string) (string, error)
	// Name returns the provider name ("gemini", "local", "anthropic").
	Name() string
}
