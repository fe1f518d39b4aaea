package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/meeting-minutes/internal/watcher"
)

type WatchCmd struct{}

func (c *WatchCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}
	log := a.logger

	handler := watcher.NewArchiveHandler(a.processor, a.cfg.Paths.Archived, log)
	w, err := watcher.New(a.cfg.Paths.Inbox, handler, log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Inbox)
	log.Info(ctx, "Archived: %s", a.cfg.Paths.Archived)
	log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	log.Info(context.Background(), "Inbox watcher stopped")
	return nil
}
