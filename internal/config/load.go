package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default returns a Config with sensible default values: Gemini for both
// transcription and minutes, PDF output.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:      ":7860",
			MaxUploadMB: 200,
		},
		Paths: PathsConfig{
			Uploads:  "data/uploads",
			Output:   "data/output",
			Inbox:    "data/inbox",
			Archived: "data/archived",
			Temp:     "data/temp",
		},
		Transcription: TranscriptionConfig{
			Provider: ProviderGemini,
		},
		Minutes: MinutesConfig{
			Provider:  ProviderGemini,
			MaxTokens: 4096,
			Title:     "Meeting Minutes",
		},
		Gemini: GeminiConfig{
			Model:              "gemini-1.5-pro",
			TranscriptionModel: "gemini-1.5-pro",
		},
		OpenAI: OpenAIConfig{
			Model: "whisper-1",
		},
		Whisper: WhisperConfig{
			BinaryPath: "whisper-cli",
			Language:   "en",
			Threads:    8,
		},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
		},
		Local: LocalConfig{
			BaseURL:        "http://localhost:8080/v1",
			TimeoutSeconds: 600,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-5",
		},
		Document: DocumentConfig{
			Formats:    []string{"pdf"},
			FontFamily: "Arial",
			FontSize:   12,
			LineHeight: 10,
			Margin:     15,
		},
		Database: DatabaseConfig{
			Path: "data/minutes.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Performance: PerformanceConfig{
			MaxConcurrent: 2,
		},
	}
}

// Load reads a YAML or TOML config file (picked by extension), fills the
// gaps from Default, pulls secrets from the environment (including a .env
// file next to the working directory) and validates the result.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, fmt.Errorf("merge defaults: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

// applyEnv fills secrets that the file left empty.
func applyEnv(cfg *Config) {
	if len(cfg.Gemini.APIKeys) == 0 {
		cfg.Gemini.APIKeys = splitKeys(os.Getenv("GOOGLE_API_KEY"))
	}
	if cfg.OpenAI.APIKey == "" {
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Anthropic.APIKey == "" {
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.Local.APIKey == "" {
		cfg.Local.APIKey = os.Getenv("LOCAL_LLM_API_KEY")
	}
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
