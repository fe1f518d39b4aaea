package transcriber

import (
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/gemini"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

// New creates the Transcriber selected by transcription.provider.
// geminiClient may be nil unless the gemini provider is selected.
func New(cfg *config.Config, geminiClient gemini.Client, exec executor.Executor, log logger.Logger) (Transcriber, error) {
	switch cfg.Transcription.Provider {
	case config.ProviderGemini:
		if geminiClient == nil {
			return nil, fmt.Errorf("transcriber: gemini client not configured")
		}
		return &geminiTranscriber{
			client:   geminiClient,
			model:    cfg.Gemini.TranscriptionModel,
			language: cfg.Transcription.Language,
			logger:   log,
		}, nil
	case config.ProviderOpenAI:
		return newOpenAITranscriber(cfg.OpenAI, cfg.Transcription.Language, log), nil
	case config.ProviderWhisper:
		wcfg := cfg.Whisper
		if cfg.Transcription.Language != "" {
			wcfg.Language = cfg.Transcription.Language
		}
		return &whisperTranscriber{
			cfg:        wcfg,
			ffmpegPath: cfg.FFmpeg.BinaryPath,
			tempRoot:   cfg.Paths.Temp,
			executor:   exec,
			logger:     log,
		}, nil
	default:
		return nil, fmt.Errorf("transcriber: unknown provider %q", cfg.Transcription.Provider)
	}
}
