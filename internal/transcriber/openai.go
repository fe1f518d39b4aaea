package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openaiTranscriber uses the OpenAI audio transcription endpoint. A base URL
// lets it talk to any vendor exposing the same API.
type openaiTranscriber struct {
	client   openai.Client
	model    string
	language string
	logger   logger.Logger
}

func newOpenAITranscriber(cfg config.OpenAIConfig, language string, log logger.Logger, extra ...option.RequestOption) *openaiTranscriber {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	model := cfg.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}

	return &openaiTranscriber{
		client:   openai.NewClient(opts...),
		model:    model,
		language: language,
		logger:   log,
	}
}

func (t *openaiTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	t.logger.Info(ctx, "Transcribing with OpenAI (%s): %s", t.model, audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:  file,
		Model: openai.AudioModel(t.model),
	}
	if t.language != "" {
		params.Language = openai.String(t.language)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", ErrEmptyTranscript
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

func (t *openaiTranscriber) Name() string {
	return "openai"
}
