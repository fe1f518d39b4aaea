package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

type anthropicSummarizer struct {
	client    anthropic.Client
	model     string
	maxTokens int
	logger    logger.Logger
}

func newAnthropicSummarizer(cfg config.AnthropicConfig, maxTokens int, log logger.Logger, extra ...option.RequestOption) *anthropicSummarizer {
	opts := append([]option.RequestOption{option.WithAPIKey(cfg.APIKey)}, extra...)

	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &anthropicSummarizer{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    log,
	}
}

func (s *anthropicSummarizer) Generate(ctx context.Context, transcript string) (string, error) {
	s.logger.Info(ctx, "Generating minutes with Anthropic (%s), transcript %d characters", s.model, len(transcript))

	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: int64(s.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildPrompt(transcript))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic message: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			text.WriteString(variant.Text)
		}
	}

	return finish(text.String())
}

func (s *anthropicSummarizer) Name() string {
	return "anthropic"
}
