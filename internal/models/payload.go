package models

// QuizPayload is the transient output of a pipeline builder. It is the
// contract surface between generation and persistence; ValidatePayload is the
// gate between them.
type QuizPayload struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionDraft `json:"questions"`
}

type QuestionDraft struct {
	QuestionTitle   string   `json:"question_title"`
	QuestionOptions []string `json:"question_options"`
	Answer          string   `json:"answer"`
}
