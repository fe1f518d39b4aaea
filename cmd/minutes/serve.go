package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/api"
	"github.com/nguyentantai21042004/meeting-minutes/internal/jobs"
	"github.com/nguyentantai21042004/meeting-minutes/internal/storage/sqlite"
	"github.com/nguyentantai21042004/meeting-minutes/internal/watcher"
)

type ServeCmd struct {
	Listen string `help:"Override server.listen."`
	Watch  bool   `help:"Also watch the inbox folder (same as server.watch_inbox)."`
}

func (c *ServeCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}
	log := a.logger

	if c.Listen != "" {
		a.cfg.Server.Listen = c.Listen
	}

	db, err := sqlite.Open(a.cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := sqlite.NewJobStorage(ctx, db, log)
	if err != nil {
		return err
	}
	if _, err := store.FailUnfinished(ctx, "Interrupted by server restart."); err != nil {
		log.Warn(ctx, "Failed to clean up interrupted jobs: %v", err)
	}

	queue := jobs.New(a.processor, store, log, a.cfg.Performance.MaxConcurrent)

	router, err := api.NewRouter(a.processor, queue, a.cfg, log)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              a.cfg.Server.Listen,
		Handler:           router.Routes(),
		ReadHeaderTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 2)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	if c.Watch || a.cfg.Server.WatchInbox {
		handler := watcher.NewArchiveHandler(a.processor, a.cfg.Paths.Archived, log)
		w, err := watcher.New(a.cfg.Paths.Inbox, handler, log, a.cfg.Performance.MaxConcurrent)
		if err != nil {
			return err
		}
		defer w.Stop()

		go func() {
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- err
			}
		}()
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Listening on %s", a.cfg.Server.Listen)
	log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "Shutdown signal received")
	case err = <-errChan:
		log.Error(context.Background(), "Server error: %v", err)
	}

	// Graceful shutdown
	log.Info(context.Background(), "Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn(shutdownCtx, "HTTP shutdown: %v", shutdownErr)
	}
	queue.Close()
	stop()

	log.Info(context.Background(), "Meeting minutes server stopped")
	return err
}
