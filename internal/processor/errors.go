package processor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrNoAudio = errors.New("no audio file")
	ErrNotMP3  = errors.New("audio file is not an mp3")
)

// Stage names a pipeline step that talks to an external provider.
type Stage string

const (
	StageTranscription Stage = "transcription"
	StageMinutes       Stage = "minutes"
	StageDocument      Stage = "document"
)

// StageError reports which step of the pipeline failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Validate checks the upload name before anything is sent to a provider.
func Validate(audioPath string) error {
	if strings.TrimSpace(audioPath) == "" {
		return ErrNoAudio
	}
	if !strings.HasSuffix(strings.ToLower(audioPath), ".mp3") {
		return ErrNotMP3
	}
	return nil
}

// IsValidation reports whether err was caused by a bad upload rather than
// a provider failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoAudio) || errors.Is(err, ErrNotMP3)
}

// UserMessage turns a pipeline error into the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNoAudio):
		return "Please upload an audio file."
	case errors.Is(err, ErrNotMP3):
		return "Please upload an MP3 file."
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		switch stageErr.Stage {
		case StageTranscription:
			return "Error during transcription: " + stageErr.Err.Error()
		case StageMinutes:
			return "Error generating minutes: " + stageErr.Err.Error()
		case StageDocument:
			return "Error creating document: " + stageErr.Err.Error()
		}
	}

	return err.Error()
}

// displayName is used in logs only.
func displayName(audioPath string) string {
	return filepath.Base(audioPath)
}
