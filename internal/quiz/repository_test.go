package quiz

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SusanneRenken/quizly/internal/models"
	"github.com/SusanneRenken/quizly/internal/pipeline"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "quizly_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.Question{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func stubPayload(t *testing.T) *models.QuizPayload {
	t.Helper()
	payload, err := pipeline.NewStub().Build(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("stub build failed: %v", err)
	}
	return payload
}

const testVideoURL = "https://www.youtube.com/watch?v=abcdefghijk"

func TestCreateQuizFromPayloadPersistsQuizAndQuestions(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := createTestUser(t, db, "susanne")

	quiz, err := repo.CreateQuizFromPayload(owner.ID, testVideoURL, stubPayload(t))
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	if quiz.ID == 0 {
		t.Error("quiz was not assigned an id")
	}
	if quiz.VideoURL != testVideoURL {
		t.Errorf("video URL = %q, want %q", quiz.VideoURL, testVideoURL)
	}
	if quiz.OwnerID != owner.ID {
		t.Errorf("owner = %d, want %d", quiz.OwnerID, owner.ID)
	}

	count, err := repo.CountQuestions(quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 10 {
		t.Errorf("persisted %d questions, want 10", count)
	}

	reloaded, err := repo.GetQuizWithQuestions(quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	for i, question := range reloaded.Questions {
		if len(question.QuestionOptions) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(question.QuestionOptions))
		}
	}
}

func TestCreateQuizFromPayloadIsAtomic(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := createTestUser(t, db, "susanne")

	// Inject a storage fault into the question bulk insert, after the quiz
	// row has already been written inside the transaction.
	err := db.Callback().Create().Before("gorm:create").Register("fail_question_insert", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Name == "Question" {
			tx.AddError(errors.New("injected storage fault"))
		}
	})
	if err != nil {
		t.Fatalf("register fault callback: %v", err)
	}

	payload := stubPayload(t)
	if _, err := repo.CreateQuizFromPayload(owner.ID, testVideoURL, payload); err == nil {
		t.Fatal("persist succeeded despite injected fault")
	}

	var quizCount int64
	if err := db.Model(&models.Quiz{}).Where("title = ? AND owner_id = ?", payload.Title, owner.ID).Count(&quizCount).Error; err != nil {
		t.Fatal(err)
	}
	if quizCount != 0 {
		t.Errorf("found %d quiz rows after failed persist, want 0", quizCount)
	}

	var questionCount int64
	if err := db.Model(&models.Question{}).Count(&questionCount).Error; err != nil {
		t.Fatal(err)
	}
	if questionCount != 0 {
		t.Errorf("found %d question rows after failed persist, want 0", questionCount)
	}
}

func TestGetQuizzesByOwnerOrdersNewestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := createTestUser(t, db, "susanne")

	first, err := repo.CreateQuizFromPayload(owner.ID, testVideoURL, stubPayload(t))
	if err != nil {
		t.Fatal(err)
	}
	second := &models.Quiz{Title: "Newer", VideoURL: testVideoURL, OwnerID: owner.ID}
	if err := db.Create(second).Error; err != nil {
		t.Fatal(err)
	}
	// Force a strictly later creation timestamp; sqlite timestamps can
	// otherwise collide within one test run.
	if err := db.Model(second).Update("created_at", first.CreatedAt.Add(time.Second)).Error; err != nil {
		t.Fatal(err)
	}

	quizzes, err := repo.GetQuizzesByOwner(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("got %d quizzes, want 2", len(quizzes))
	}
	if quizzes[0].ID != second.ID {
		t.Errorf("first listed quiz = %d, want the newer quiz %d", quizzes[0].ID, second.ID)
	}
}

func TestDeleteQuizCascadesToQuestions(t *testing.T) {
	db := testDB(t)
	repo := NewRepository(db)
	owner := createTestUser(t, db, "susanne")

	quiz, err := repo.CreateQuizFromPayload(owner.ID, testVideoURL, stubPayload(t))
	if err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteQuiz(quiz); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := repo.GetQuizWithQuestions(quiz.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("quiz still readable after delete, err = %v", err)
	}

	count, err := repo.CountQuestions(quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("%d questions survived the cascade delete", count)
	}
}
