package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/gemini"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"google.golang.org/genai"
)

const geminiInstruction = `Transcribe this meeting recording.
Return only the spoken words as plain text, one speaker turn per paragraph.
Prefix each turn with the speaker's name when it is said, otherwise "Speaker 1", "Speaker 2" and so on.
Do not summarise and do not add commentary.`

type geminiTranscriber struct {
	client   gemini.Client
	model    string
	language string
	logger   logger.Logger
}

// Transcribe sends the recording inline to the Gemini multimodal model.
// TODO: switch to the Files API for recordings above the 20 MB inline request limit.
func (t *geminiTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	mime := audioMIME(audioPath, data)
	t.logger.Info(ctx, "Transcribing with Gemini (%s, %s, %d bytes): %s", t.model, mime, len(data), audioPath)

	instruction := geminiInstruction
	if t.language != "" {
		instruction += "\nThe recording is in language: " + t.language + "."
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(data, mime),
		}, genai.RoleUser),
	}

	text, err := t.client.Generate(ctx, t.model, contents)
	if err != nil {
		return "", fmt.Errorf("gemini transcribe: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyTranscript
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

func (t *geminiTranscriber) Name() string {
	return "gemini"
}
