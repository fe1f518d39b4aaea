package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/document"
	"github.com/nguyentantai21042004/meeting-minutes/internal/gemini"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

// app holds the dependencies shared by all commands
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	processor processor.Processor
}

// newApp loads configuration and wires the pipeline
func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Minutes Generator")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Transcription: %s, minutes: %s, formats: %v",
		cfg.Transcription.Provider, cfg.Minutes.Provider, cfg.Document.Formats)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()
	if cfg.Transcription.Provider == config.ProviderWhisper {
		for _, bin := range []string{cfg.FFmpeg.BinaryPath, cfg.Whisper.BinaryPath} {
			if !exec.Available(bin) {
				return nil, fmt.Errorf("%s not found in PATH", bin)
			}
		}
	}

	var geminiClient gemini.Client
	if cfg.Transcription.Provider == config.ProviderGemini || cfg.Minutes.Provider == config.ProviderGemini {
		geminiClient, err = gemini.New(cfg.Gemini.APIKeys, log)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
	}

	t, err := transcriber.New(cfg, geminiClient, exec, log)
	if err != nil {
		return nil, fmt.Errorf("create transcriber: %w", err)
	}

	s, err := summarizer.New(cfg, geminiClient, log)
	if err != nil {
		return nil, fmt.Errorf("create summarizer: %w", err)
	}

	renderer, err := document.New(cfg.Document, cfg.Paths.Output, cfg.Minutes.Title, log)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    log,
		processor: processor.New(t, s, renderer, log),
	}, nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Uploads,
		cfg.Paths.Output,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
