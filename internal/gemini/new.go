package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"google.golang.org/genai"
)

// generateFunc performs one GenerateContent call with a single key.
type generateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)

type implClient struct {
	apiKeys    []string
	currentKey int
	mu         sync.Mutex
	logger     logger.Logger

	clients  map[string]*genai.Client
	generate generateFunc
}

// New creates a Client that rotates through the supplied Gemini API keys.
func New(apiKeys []string, log logger.Logger) (Client, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("google API key not set")
	}

	c := &implClient{
		apiKeys: apiKeys,
		logger:  log,
		clients: make(map[string]*genai.Client),
	}
	c.generate = c.generateWithSDK
	return c, nil
}
