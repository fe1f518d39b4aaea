package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/gemini"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"google.golang.org/genai"
)

type geminiSummarizer struct {
	client gemini.Client
	model  string
	logger logger.Logger
}

// Generate sends the transcript to Gemini and returns the minutes text.
func (s *geminiSummarizer) Generate(ctx context.Context, transcript string) (string, error) {
	s.logger.Info(ctx, "Generating minutes with Gemini (%s), transcript %d characters", s.model, len(transcript))

	minutes, err := s.client.Generate(ctx, s.model, genai.Text(BuildPrompt(transcript)))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return finish(minutes)
}

func (s *geminiSummarizer) Name() string {
	return "gemini"
}

// finish trims the completion and rejects empty answers.
func finish(minutes string) (string, error) {
	minutes = strings.TrimSpace(minutes)
	if minutes == "" {
		return "", ErrEmptyMinutes
	}
	return minutes, nil
}
