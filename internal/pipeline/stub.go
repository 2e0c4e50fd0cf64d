package pipeline

import (
	"context"

	"github.com/SusanneRenken/quizly/internal/models"
)

// Stub is a deterministic builder used for fast end-to-end testing without
// yt-dlp, whisper, or a generative model. The video URL is ignored and the
// returned payload is always structurally valid.
type Stub struct{}

func NewStub() *Stub {
	return &Stub{}
}

func (s *Stub) Build(ctx context.Context, videoURL string) (*models.QuizPayload, error) {
	return &models.QuizPayload{
		Title:       "Stub vs. Prod: Understand & Apply",
		Description: "Test your knowledge of stub and production pipelines: purpose, differences, usage, and common pitfalls.",
		Questions: []models.QuestionDraft{
			{
				QuestionTitle: "What is the purpose of a stub pipeline in projects?",
				QuestionOptions: []string{
					"Fast end-to-end testing without real AI/infrastructure",
					"Permanent production logic",
					"Optimizing frontend styles",
					"Creating a database backup",
				},
				Answer: "Fast end-to-end testing without real AI/infrastructure",
			},
			{
				QuestionTitle: "What best describes a production pipeline?",
				QuestionOptions: []string{
					"Returns dummy data",
					"Runs actual processing using real services",
					"Disables all validations",
					"Produces only random results",
				},
				Answer: "Runs actual processing using real services",
			},
			{
				QuestionTitle: "When is a stub pipeline particularly useful?",
				QuestionOptions: []string{
					"When external services are not yet available",
					"Only during UI deployments",
					"Only after go-live",
					"When production is already stable",
				},
				Answer: "When external services are not yet available",
			},
			{
				QuestionTitle: "What is a key difference between stub and production?",
				QuestionOptions: []string{
					"Stub is deterministic; production can vary",
					"Both produce identical outputs",
					"Production has no dependencies",
					"Stub always requires a GPU",
				},
				Answer: "Stub is deterministic; production can vary",
			},
			{
				QuestionTitle: "What is a risk of testing with stub data for too long?",
				QuestionOptions: []string{
					"Too many costs from real API calls",
					"The UI becomes too fast",
					"Lack of coverage for real-world error cases",
					"Too few unit tests are possible",
				},
				Answer: "Lack of coverage for real-world error cases",
			},
			{
				QuestionTitle: "What is typically required for a production pipeline?",
				QuestionOptions: []string{
					"No credentials needed",
					"External tools like ffmpeg/yt-dlp/Whisper properly installed",
					"Offline-only operation",
					"No logging required",
				},
				Answer: "External tools like ffmpeg/yt-dlp/Whisper properly installed",
			},
			{
				QuestionTitle: "Why is a transaction useful during persistence?",
				QuestionOptions: []string{
					"Enables dark mode in the admin panel",
					"All-or-nothing saving for Quiz + Questions",
					"Boosts GPU performance",
					"Allows GET requests without authentication",
				},
				Answer: "All-or-nothing saving for Quiz + Questions",
			},
			{
				QuestionTitle: "What does NOT belong in a stub pipeline?",
				QuestionOptions: []string{
					"Fixed test data",
					"Real API calls to Gemini",
					"Deterministic responses",
					"Fast execution",
				},
				Answer: "Real API calls to Gemini",
			},
			{
				QuestionTitle: "How does a stub pipeline help during testing?",
				QuestionOptions: []string{
					"Reduces flakiness through stable outputs",
					"Disables all tests",
					"Forces timeouts",
					"Prevents logging",
				},
				Answer: "Reduces flakiness through stable outputs",
			},
			{
				QuestionTitle: "When should you switch from stub to production?",
				QuestionOptions: []string{
					"When the basic end-to-end path works and dependencies are ready",
					"Never; stub is always enough",
					"Immediately at project start",
					"Only after release",
				},
				Answer: "When the basic end-to-end path works and dependencies are ready",
			},
		},
	}, nil
}
