package pipeline

import (
	"context"

	"github.com/SusanneRenken/quizly/internal/models"
)

// Builder turns a canonical YouTube URL into a quiz payload. The stub
// implementation is deterministic and offline; the prod implementation runs
// the real extract/transcribe/generate chain.
type Builder interface {
	Build(ctx context.Context, videoURL string) (*models.QuizPayload, error)
}

// Error is a failure inside the quiz generation pipeline. Handlers map it to
// a 502 response.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return "AI pipeline failed: " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(reason string, err error) *Error {
	return &Error{Reason: reason, Err: err}
}
