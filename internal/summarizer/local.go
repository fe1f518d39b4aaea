package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	openai "github.com/sashabaranov/go-openai"
)

// localSummarizer talks to a locally hosted quantized model through an
// OpenAI-compatible chat completion endpoint.
type localSummarizer struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    logger.Logger
}

func newLocalSummarizer(cfg config.LocalConfig, maxTokens int, log logger.Logger) *localSummarizer {
	// Local servers usually ignore the key but the client requires one
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = "not-needed"
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = normalizeBaseURL(cfg.BaseURL)

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 600
	}
	clientCfg.HTTPClient = &http.Client{Timeout: time.Duration(timeout) * time.Second}

	return &localSummarizer{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    log,
	}
}

// normalizeBaseURL makes sure the URL ends with /v1.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(baseURL, "/v1") {
		baseURL += "/v1"
	}
	return baseURL
}

func (s *localSummarizer) Generate(ctx context.Context, transcript string) (string, error) {
	s.logger.Info(ctx, "Generating minutes with local model (%s), transcript %d characters", s.model, len(transcript))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(transcript)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("local completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyMinutes
	}

	return finish(resp.Choices[0].Message.Content)
}

func (s *localSummarizer) Name() string {
	return "local"
}
