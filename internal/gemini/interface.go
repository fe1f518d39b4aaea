package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Client sends content to Gemini and returns the concatenated response text.
// Implementations rotate through their API keys when a key is rate limited.
type Client interface {
	Generate(ctx context.Context, model string, contents []*genai.Content) (string, error)
}
