package config

import (
	"fmt"
	"strings"
)

// Provider names accepted in configuration.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderWhisper   = "whisper"
	ProviderLocal     = "local"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Server        ServerConfig        `yaml:"server" toml:"server"`
	Paths         PathsConfig         `yaml:"paths" toml:"paths"`
	Transcription TranscriptionConfig `yaml:"transcription" toml:"transcription"`
	Minutes       MinutesConfig       `yaml:"minutes" toml:"minutes"`
	Gemini        GeminiConfig        `yaml:"gemini" toml:"gemini"`
	OpenAI        OpenAIConfig        `yaml:"openai" toml:"openai"`
	Whisper       WhisperConfig       `yaml:"whisper" toml:"whisper"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg" toml:"ffmpeg"`
	Local         LocalConfig         `yaml:"local" toml:"local"`
	Anthropic     AnthropicConfig     `yaml:"anthropic" toml:"anthropic"`
	Document      DocumentConfig      `yaml:"document" toml:"document"`
	Database      DatabaseConfig      `yaml:"database" toml:"database"`
	Logging       LoggingConfig       `yaml:"logging" toml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance" toml:"performance"`
}

type ServerConfig struct {
	Listen             string   `yaml:"listen" toml:"listen"`
	MaxUploadMB        int      `yaml:"max_upload_mb" toml:"max_upload_mb"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" toml:"cors_allowed_origins"`
	WatchInbox         bool     `yaml:"watch_inbox" toml:"watch_inbox"`
}

type PathsConfig struct {
	Uploads  string `yaml:"uploads" toml:"uploads"`
	Output   string `yaml:"output" toml:"output"`
	Inbox    string `yaml:"inbox" toml:"inbox"`
	Archived string `yaml:"archived" toml:"archived"`
	Temp     string `yaml:"temp" toml:"temp"`
}

// TranscriptionConfig selects the speech-to-text backend.
type TranscriptionConfig struct {
	Provider string `yaml:"provider" toml:"provider"`
	Language string `yaml:"language" toml:"language"`
}

// MinutesConfig selects the backend that turns a transcript into minutes.
type MinutesConfig struct {
	Provider  string `yaml:"provider" toml:"provider"`
	MaxTokens int    `yaml:"max_tokens" toml:"max_tokens"`
	Title     string `yaml:"title" toml:"title"`
}

type GeminiConfig struct {
	APIKeys            []string `yaml:"api_keys" toml:"api_keys"`
	Model              string   `yaml:"model" toml:"model"`
	TranscriptionModel string   `yaml:"transcription_model" toml:"transcription_model"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" toml:"api_key"`
	BaseURL string `yaml:"base_url" toml:"base_url"`
	Model   string `yaml:"model" toml:"model"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path" toml:"model_path"`
	BinaryPath string `yaml:"binary_path" toml:"binary_path"`
	Language   string `yaml:"language" toml:"language"`
	Prompt     string `yaml:"prompt" toml:"prompt"`
	Threads    int    `yaml:"threads" toml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path" toml:"binary_path"`
}

// LocalConfig points at an OpenAI-compatible server hosting a local model
// (llama.cpp server, LM Studio, Ollama).
type LocalConfig struct {
	BaseURL        string `yaml:"base_url" toml:"base_url"`
	Model          string `yaml:"model" toml:"model"`
	APIKey         string `yaml:"api_key" toml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key" toml:"api_key"`
	Model  string `yaml:"model" toml:"model"`
}

type DocumentConfig struct {
	Formats    []string `yaml:"formats" toml:"formats"`
	FontFamily string   `yaml:"font_family" toml:"font_family"`
	FontSize   float64  `yaml:"font_size" toml:"font_size"`
	LineHeight float64  `yaml:"line_height" toml:"line_height"`
	Margin     float64  `yaml:"margin" toml:"margin"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" toml:"max_concurrent"`
}

// Validate checks that the selected providers have what they need.
func (c *Config) Validate() error {
	switch c.Transcription.Provider {
	case ProviderGemini:
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("google API key not set")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" && c.OpenAI.BaseURL == "" {
			return fmt.Errorf("openai.api_key is required")
		}
	case ProviderWhisper:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	default:
		return fmt.Errorf("unknown transcription.provider %q", c.Transcription.Provider)
	}

	switch c.Minutes.Provider {
	case ProviderGemini:
		if len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("google API key not set")
		}
	case ProviderLocal:
		if c.Local.BaseURL == "" {
			return fmt.Errorf("local.base_url is required")
		}
		if c.Local.Model == "" {
			return fmt.Errorf("local.model is required")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("anthropic.api_key is required")
		}
	default:
		return fmt.Errorf("unknown minutes.provider %q", c.Minutes.Provider)
	}

	if len(c.Document.Formats) == 0 {
		return fmt.Errorf("document.formats is required")
	}
	for _, f := range c.Document.Formats {
		switch strings.ToLower(f) {
		case "pdf", "docx", "md":
		default:
			return fmt.Errorf("unsupported document format %q", f)
		}
	}

	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Paths.Uploads == "" {
		return fmt.Errorf("paths.uploads is required")
	}
	if c.Performance.MaxConcurrent < 1 {
		return fmt.Errorf("performance.max_concurrent must be positive")
	}

	return nil
}
