package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/SusanneRenken/quizly/internal/models"
)

// Extractor downloads the best available audio track for a video into a
// freshly created scratch directory and returns the audio file path.
type Extractor interface {
	Extract(ctx context.Context, videoURL string) (string, error)
}

// Transcriber produces the full transcript of an audio file.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Generator runs a single prompt against a generative model and returns its
// raw text response. The response may be wrapped in markdown fences or be
// outright malformed; Prod.Build is responsible for parsing it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Prod is the production pipeline: extract -> transcribe -> generate, with
// guaranteed best-effort cleanup of the scratch audio directory.
type Prod struct {
	extractor   Extractor
	transcriber Transcriber
	generator   Generator
}

func NewProd(extractor Extractor, transcriber Transcriber, generator Generator) *Prod {
	return &Prod{
		extractor:   extractor,
		transcriber: transcriber,
		generator:   generator,
	}
}

func (p *Prod) Build(ctx context.Context, videoURL string) (*models.QuizPayload, error) {
	audioPath, err := p.extractor.Extract(ctx, videoURL)
	if err != nil {
		return nil, NewError("audio extraction failed", err)
	}

	// Cleanup must run on every exit path, including transcription failure
	// and caller cancellation. Removal errors are advisory and swallowed.
	defer func() {
		os.Remove(audioPath)
		os.Remove(filepath.Dir(audioPath))
	}()

	transcript, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, NewError("audio transcription failed", err)
	}

	return p.generateQuiz(ctx, transcript)
}

func (p *Prod) generateQuiz(ctx context.Context, transcript string) (*models.QuizPayload, error) {
	content, err := p.generator.Generate(ctx, quizPrompt(transcript))
	if err != nil {
		return nil, classifyGenerationError(err)
	}

	var payload models.QuizPayload
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, NewError("invalid JSON output", err)
	}
	return &payload, nil
}

// classifyGenerationError distinguishes retry-worthy overload failures from
// everything else. A structured googleapi error code is preferred; matching
// on the message text is kept as a fallback for providers that only surface
// strings.
func classifyGenerationError(err error) *Error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 503 {
		return NewError("model overloaded, try again later", err)
	}

	message := err.Error()
	if strings.Contains(message, "503") || strings.Contains(message, "model is overloaded") {
		return NewError("model overloaded, try again later", err)
	}

	return NewError("invalid JSON output", err)
}

// stripCodeFence removes a surrounding triple-backtick block, with or without
// a language tag on the opening fence.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	lines := strings.Split(content, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(lines[len(lines)-1], "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func quizPrompt(transcript string) string {
	return fmt.Sprintf("Based on the following transcript, generate a quiz in valid JSON format.\n\n"+
		"The quiz must follow this exact structure:\n\n"+
		"{\n"+
		"  \"title\": \"Create a concise quiz title based on the topic of the transcript.\",\n"+
		"  \"description\": \"Summarize the transcript in no more than 150 characters. Do not include any quiz questions or answers.\",\n"+
		"  \"questions\": [\n"+
		"    {\n"+
		"      \"question_title\": \"The question goes here.\",\n"+
		"      \"question_options\": [\"Option A\", \"Option B\", \"Option C\", \"Option D\"],\n"+
		"      \"answer\": \"The correct answer from the above options\"\n"+
		"    }\n"+
		"    ...(exactly 10 questions)\n"+
		"  ]\n"+
		"}\n\n"+
		"Requirements:\n"+
		"- Each question must have exactly 4 distinct answer options.\n"+
		"- Only one correct answer is allowed per question, and it must be present in 'question_options'.\n"+
		"- The output must be valid JSON and parsable as-is.\n"+
		"- Do not include explanations, comments, or any text outside the JSON.\n\n"+
		"Transcript below:\n\n%s", transcript)
}
