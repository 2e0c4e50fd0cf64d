package quiz

import (
	"fmt"

	"github.com/SusanneRenken/quizly/internal/models"
	"github.com/SusanneRenken/quizly/internal/pipeline"
)

// ValidatePayload gates generated payloads before persistence. The upstream
// generator is untrusted free text, so even syntactically valid JSON may
// violate the quiz structure. No malformed payload may reach the store.
func ValidatePayload(payload *models.QuizPayload) error {
	if len(payload.Questions) != 10 {
		return pipeline.NewError(fmt.Sprintf("expected 10 questions, got %d", len(payload.Questions)), nil)
	}

	for i, question := range payload.Questions {
		if len(question.QuestionOptions) != 4 || !containsOption(question.QuestionOptions, question.Answer) {
			return pipeline.NewError(fmt.Sprintf("invalid answer in question %d", i+1), nil)
		}
	}

	return nil
}

func containsOption(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}
