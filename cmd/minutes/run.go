package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/meeting-minutes/internal/processor"
)

type RunCmd struct {
	File string `arg:"" help:"MP3 recording to process."`
}

func (c *RunCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Reject bad input before loading providers
	if err := processor.Validate(c.File); err != nil {
		return errors.New(processor.UserMessage(err))
	}

	a, err := newApp(ctx, g.Config)
	if err != nil {
		return err
	}

	result, err := a.processor.Process(ctx, c.File, func(fraction float64, status string) {
		fmt.Fprintf(os.Stderr, "[%3.0f%%] %s\n", fraction*100, status)
	})
	if err != nil {
		return errors.New(processor.UserMessage(err))
	}

	fmt.Println(result.Minutes)
	fmt.Println()
	for _, d := range result.Documents {
		fmt.Printf("%s: %s\n", d.Format, d.Path)
	}

	return nil
}
