package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
)

// NewArchiveHandler processes each recording and moves it to archivedDir
// once its minutes are written. Failed recordings stay in the inbox.
func NewArchiveHandler(proc processor.Processor, archivedDir string, log logger.Logger) EventHandler {
	return func(ctx context.Context, filePath string) error {
		result, err := proc.Process(ctx, filePath, nil)
		if err != nil {
			return errors.New(processor.UserMessage(err))
		}

		for _, d := range result.Documents {
			log.Info(ctx, "Minutes for %s: %s", filepath.Base(filePath), d.Path)
		}

		return moveToArchived(ctx, filePath, archivedDir, log)
	}
}

// moveToArchived moves the processed recording out of the inbox
func moveToArchived(ctx context.Context, filePath, archivedDir string, log logger.Logger) error {
	if err := os.MkdirAll(archivedDir, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(archivedDir, filepath.Base(filePath))
	log.Info(ctx, "Moving to archived folder: %s -> %s", filePath, destPath)

	if err := os.Rename(filePath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}

	return nil
}
