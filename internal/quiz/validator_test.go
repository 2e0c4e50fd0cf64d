package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/SusanneRenken/quizly/internal/models"
	"github.com/SusanneRenken/quizly/internal/pipeline"
)

func validPayload(t *testing.T) *models.QuizPayload {
	t.Helper()
	payload, err := pipeline.NewStub().Build(context.Background(), "https://www.youtube.com/watch?v=abcdefghijk")
	if err != nil {
		t.Fatalf("stub build failed: %v", err)
	}
	return payload
}

func TestValidatePayloadAcceptsStubPayload(t *testing.T) {
	if err := ValidatePayload(validPayload(t)); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestValidatePayloadRejectsWrongQuestionCount(t *testing.T) {
	for _, count := range []int{0, 1, 9, 11} {
		payload := &models.QuizPayload{Title: "T"}
		for i := 0; i < count; i++ {
			payload.Questions = append(payload.Questions, models.QuestionDraft{
				QuestionTitle:   fmt.Sprintf("Q%d", i+1),
				QuestionOptions: []string{"A", "B", "C", "D"},
				Answer:          "A",
			})
		}

		err := ValidatePayload(payload)
		if err == nil {
			t.Fatalf("payload with %d questions accepted", count)
		}

		var pipeErr *pipeline.Error
		if !errors.As(err, &pipeErr) {
			t.Fatalf("error is not a pipeline error: %v", err)
		}
		want := fmt.Sprintf("expected 10 questions, got %d", count)
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestValidatePayloadRejectsAnswerOutsideOptions(t *testing.T) {
	payload := validPayload(t)
	payload.Questions[6].Answer = "not one of the options"

	err := ValidatePayload(payload)
	if err == nil {
		t.Fatal("payload with foreign answer accepted")
	}
	if !strings.Contains(err.Error(), "invalid answer") {
		t.Errorf("error %q does not mention the invalid answer", err.Error())
	}
	if !strings.Contains(err.Error(), "question 7") {
		t.Errorf("error %q does not identify the offending question", err.Error())
	}
}

func TestValidatePayloadRejectsWrongOptionCount(t *testing.T) {
	payload := validPayload(t)
	payload.Questions[0].QuestionOptions = payload.Questions[0].QuestionOptions[:3]

	err := ValidatePayload(payload)
	if err == nil {
		t.Fatal("payload with 3 options accepted")
	}
	if !strings.Contains(err.Error(), "invalid answer") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}
