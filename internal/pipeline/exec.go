package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// YTDLPExtractor downloads audio with the yt-dlp CLI into a scratch
// directory created per call.
type YTDLPExtractor struct{}

func NewYTDLPExtractor() *YTDLPExtractor {
	return &YTDLPExtractor{}
}

func (e *YTDLPExtractor) Extract(ctx context.Context, videoURL string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "quizly_")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}

	outTemplate := filepath.Join(tmpDir, "temp_audio.%(ext)s")
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"--format", "bestaudio/best",
		"--no-playlist",
		"--quiet",
		"--output", outTemplate,
		videoURL,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("yt-dlp: %w: %s", err, strings.TrimSpace(string(out)))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil || len(entries) == 0 {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("yt-dlp produced no audio file in %s", tmpDir)
	}
	return filepath.Join(tmpDir, entries[0].Name()), nil
}

// WhisperTranscriber runs the whisper CLI against a downloaded audio file.
// The model tier is fixed at construction; quizly always uses "base".
type WhisperTranscriber struct {
	model string
}

func NewWhisperTranscriber(model string) *WhisperTranscriber {
	return &WhisperTranscriber{model: model}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	outDir := filepath.Dir(audioPath)
	cmd := exec.CommandContext(ctx, "whisper", audioPath,
		"--model", t.model,
		"--output_format", "json",
		"--output_dir", outDir,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("whisper: %w: %s", err, strings.TrimSpace(string(out)))
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	resultPath := filepath.Join(outDir, stem+".json")
	defer os.Remove(resultPath)

	data, err := os.ReadFile(resultPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("parse whisper output: %w", err)
	}
	return result.Text, nil
}
