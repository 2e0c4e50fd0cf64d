package quiz

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/SusanneRenken/quizly/internal/models"
	"github.com/SusanneRenken/quizly/internal/pipeline"
)

var (
	ErrNotFound   = errors.New("quiz not found")
	ErrForbidden  = errors.New("not the quiz owner")
	ErrEmptyTitle = errors.New("title must not be empty")
)

type Service struct {
	repo    *Repository
	builder pipeline.Builder
}

// NewService wires the repository with a pipeline builder. The stub/prod
// choice is made once at startup and injected here, which keeps the service
// testable with either builder.
func NewService(repo *Repository, builder pipeline.Builder) *Service {
	return &Service{
		repo:    repo,
		builder: builder,
	}
}

// Create runs the whole creation flow: normalize the URL, build a payload,
// validate it, persist it. Nothing touches the store until the payload has
// passed validation, and persistence itself is atomic.
func (s *Service) Create(ctx context.Context, ownerID uint, rawURL string) (*models.Quiz, error) {
	videoURL, err := NormalizeVideoURL(rawURL)
	if err != nil {
		return nil, err
	}

	payload, err := s.builder.Build(ctx, videoURL)
	if err != nil {
		log.Printf("Pipeline failed for %s: %v", videoURL, err)
		return nil, err
	}

	if err := ValidatePayload(payload); err != nil {
		log.Printf("Generated payload rejected for %s: %v", videoURL, err)
		return nil, err
	}

	quiz, err := s.repo.CreateQuizFromPayload(ownerID, videoURL, payload)
	if err != nil {
		log.Printf("Error persisting quiz for %s: %v", videoURL, err)
		return nil, err
	}

	return quiz, nil
}

func (s *Service) List(ownerID uint) ([]models.QuizSummary, error) {
	quizzes, err := s.repo.GetQuizzesByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, quiz.ToSummary())
	}
	return summaries, nil
}

func (s *Service) Get(id, userID uint) (*models.Quiz, error) {
	return s.ownedQuiz(id, userID)
}

// Update applies an owner-initiated partial update. Only the title is
// mutable; description, video URL, owner and questions are fixed at creation.
func (s *Service) Update(id, userID uint, title *string) (*models.Quiz, error) {
	quiz, err := s.ownedQuiz(id, userID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		if strings.TrimSpace(*title) == "" {
			return nil, ErrEmptyTitle
		}
		quiz.Title = *title
		if err := s.repo.UpdateQuiz(quiz); err != nil {
			return nil, err
		}
	}

	return quiz, nil
}

func (s *Service) Delete(id, userID uint) error {
	quiz, err := s.ownedQuiz(id, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteQuiz(quiz)
}

func (s *Service) ownedQuiz(id, userID uint) (*models.Quiz, error) {
	quiz, err := s.repo.GetQuizWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if quiz.OwnerID != userID {
		return nil, ErrForbidden
	}
	return quiz, nil
}
