package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

const transcriptPrefix = "transcript"

// whisperTranscriber runs a local whisper.cpp binary. The MP3 is first
// converted to the 16kHz mono WAV whisper.cpp expects.
type whisperTranscriber struct {
	cfg        config.WhisperConfig
	ffmpegPath string
	tempRoot   string
	executor   executor.Executor
	logger     logger.Logger
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if t.tempRoot != "" {
		if err := os.MkdirAll(t.tempRoot, 0755); err != nil {
			return "", fmt.Errorf("create temp root: %w", err)
		}
	}

	// Isolated temp dir per recording so concurrent jobs never collide
	tempDir, err := os.MkdirTemp(t.tempRoot, "whisper-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	wavPath, err := t.convertAudio(ctx, audioPath, tempDir)
	if err != nil {
		return "", err
	}

	// whisper.cpp runs inside tempDir so its relative paths resolve there
	modelPath, err := filepath.Abs(t.cfg.ModelPath)
	if err != nil {
		return "", fmt.Errorf("resolve model path: %w", err)
	}
	binary := t.cfg.BinaryPath
	if strings.ContainsRune(binary, filepath.Separator) && !filepath.IsAbs(binary) {
		if binary, err = filepath.Abs(binary); err != nil {
			return "", fmt.Errorf("resolve whisper binary: %w", err)
		}
	}

	t.logger.Info(ctx, "Starting whisper.cpp transcription with %d threads: %s", t.cfg.Threads, audioPath)

	// -otxt: plain text output
	// -l: force language (prevents hallucinated translations)
	// -bo 5: best of 5 for better accuracy
	// whisper.cpp appends .txt to the output prefix
	args := []string{
		"-m", modelPath,
		"-f", filepath.Base(wavPath),
		"-otxt",
		"-l", t.cfg.Language,
		"-t", strconv.Itoa(t.cfg.Threads),
		"-bo", "5",
		"--output-file", transcriptPrefix,
	}
	if t.cfg.Prompt != "" {
		args = append(args, "--prompt", t.cfg.Prompt)
	}

	if _, err := t.executor.ExecuteInDir(ctx, tempDir, binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, transcriptPrefix+".txt"))
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrEmptyTranscript
	}

	t.logger.Info(ctx, "Transcription completed: %d characters", len(text))
	return text, nil
}

// convertAudio converts the recording to 16kHz mono PCM WAV inside dir.
func (t *whisperTranscriber) convertAudio(ctx context.Context, audioPath, dir string) (string, error) {
	wavPath := filepath.Join(dir, "audio.wav")

	t.logger.Debug(ctx, "Converting audio for whisper.cpp: %s -> %s", audioPath, wavPath)

	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpegPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	return wavPath, nil
}

func (t *whisperTranscriber) Name() string {
	return "whisper"
}
