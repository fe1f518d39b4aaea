package processor

import (
	"context"
	"time"
)

// Progress status lines, in pipeline order.
const (
	StatusStarting     = "Starting process..."
	StatusTranscribing = "Transcribing audio..."
	StatusTranscribed  = "Audio transcribed. Generating meeting minutes..."
	StatusGenerating   = "Generating meeting minutes..."
	StatusFinalizing   = "Finalizing minutes..."
	StatusComplete     = "Process complete!"
)

// Process orchestrates the entire minutes pipeline
func (p *implProcessor) Process(ctx context.Context, audioPath string, progress ProgressFunc) (*Result, error) {
	if err := Validate(audioPath); err != nil {
		p.logger.Warn(ctx, "Rejected upload %q: %v", audioPath, err)
		return nil, err
	}

	report := func(fraction float64, status string) {
		p.logger.Debug(ctx, "Progress %.0f%%: %s", fraction*100, status)
		if progress != nil {
			progress(fraction, status)
		}
	}

	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting minutes generation: %s", displayName(audioPath))
	p.logger.Info(ctx, "Providers: transcription=%s minutes=%s", p.transcriber.Name(), p.summarizer.Name())
	p.logger.Info(ctx, "========================================")

	report(0.1, StatusStarting)

	// Step 1: Transcribe
	report(0.3, StatusTranscribing)
	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		p.logger.Error(ctx, "Transcription failed: %v", err)
		return nil, &StageError{Stage: StageTranscription, Err: err}
	}
	report(0.5, StatusTranscribed)

	// Step 2: Generate minutes
	report(0.6, StatusGenerating)
	minutes, err := p.summarizer.Generate(ctx, transcript)
	if err != nil {
		p.logger.Error(ctx, "Minutes generation failed: %v", err)
		return nil, &StageError{Stage: StageMinutes, Err: err}
	}
	report(0.9, StatusFinalizing)

	// Step 3: Render documents
	documents, err := p.renderer.Render(ctx, minutes)
	if err != nil {
		p.logger.Error(ctx, "Document rendering failed: %v", err)
		return nil, &StageError{Stage: StageDocument, Err: err}
	}
	report(1.0, StatusComplete)

	result := &Result{
		Transcript: transcript,
		Minutes:    minutes,
		Documents:  documents,
		Duration:   time.Since(startTime),
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	for _, d := range documents {
		p.logger.Info(ctx, "Output %s: %s", d.Format, d.Path)
	}
	p.logger.Info(ctx, "Processing time: %s", result.Duration)
	p.logger.Info(ctx, "========================================")

	return result, nil
}
