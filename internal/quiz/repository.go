package quiz

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SusanneRenken/quizly/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateQuizFromPayload writes one Quiz row and all of its questions in a
// single transaction. The payload is trusted here; validation happens in the
// service before this is called. A failure partway leaves nothing visible.
func (r *Repository) CreateQuizFromPayload(ownerID uint, videoURL string, payload *models.QuizPayload) (*models.Quiz, error) {
	quiz := &models.Quiz{
		Title:       payload.Title,
		Description: payload.Description,
		VideoURL:    videoURL,
		OwnerID:     ownerID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}

		questions := make([]models.Question, 0, len(payload.Questions))
		for _, draft := range payload.Questions {
			questions = append(questions, models.Question{
				QuizID:          quiz.ID,
				QuestionTitle:   draft.QuestionTitle,
				QuestionOptions: datatypes.NewJSONSlice(draft.QuestionOptions),
				Answer:          draft.Answer,
			})
		}

		if err := tx.Create(&questions).Error; err != nil {
			return err
		}

		quiz.Questions = questions
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quiz, nil
}

func (r *Repository) GetQuizWithQuestions(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.Preload("Questions").First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetQuizzesByOwner returns the owner's quizzes newest-first, without the
// nested questions.
func (r *Repository) GetQuizzesByOwner(ownerID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *Repository) UpdateQuiz(quiz *models.Quiz) error {
	return r.db.Save(quiz).Error
}

// DeleteQuiz removes the quiz and cascades to its questions.
func (r *Repository) DeleteQuiz(quiz *models.Quiz) error {
	return r.db.Select("Questions").Delete(quiz).Error
}

func (r *Repository) CountQuestions(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
