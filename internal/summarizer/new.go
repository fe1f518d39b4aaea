package summarizer

import (
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/gemini"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// New creates the Summarizer selected by minutes.provider.
// geminiClient may be nil unless the gemini provider is selected.
func New(cfg *config.Config, geminiClient gemini.Client, log logger.Logger) (Summarizer, error) {
	switch cfg.Minutes.Provider {
	case config.ProviderGemini:
		if geminiClient == nil {
			return nil, fmt.Errorf("summarizer: gemini client not configured")
		}
		return &geminiSummarizer{
			client: geminiClient,
			model:  cfg.Gemini.Model,
			logger: log,
		}, nil
	case config.ProviderLocal:
		return newLocalSummarizer(cfg.Local, cfg.Minutes.MaxTokens, log), nil
	case config.ProviderAnthropic:
		return newAnthropicSummarizer(cfg.Anthropic, cfg.Minutes.MaxTokens, log), nil
	default:
		return nil, fmt.Errorf("summarizer: unknown provider %q", cfg.Minutes.Provider)
	}
}
