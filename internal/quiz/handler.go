package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/SusanneRenken/quizly/internal/models"
	"github.com/SusanneRenken/quizly/internal/pipeline"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type CreateQuizRequest struct {
	URL string `json:"url"`
}

type UpdateQuizRequest struct {
	Title *string `json:"title"`
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quiz, err := h.service.Create(r.Context(), userID, req.URL)
	if err != nil {
		var pipeErr *pipeline.Error
		switch {
		case errors.Is(err, ErrNotYouTube):
			writeDetail(w, http.StatusBadRequest, "URL must be a YouTube link.")
		case errors.Is(err, ErrInvalidVideoID):
			writeDetail(w, http.StatusBadRequest, "Invalid YouTube video ID.")
		case errors.As(err, &pipeErr):
			writeDetail(w, http.StatusBadGateway, pipeErr.Error())
		default:
			writeDetail(w, http.StatusInternalServerError, "Unexpected error while creating quiz")
		}
		return
	}

	writeJSON(w, http.StatusCreated, quiz)
}

// ListQuizzes runs behind optional authentication: an anonymous caller gets
// an empty collection, not an error.
func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(uint)
	if !ok {
		writeJSON(w, http.StatusOK, []models.QuizSummary{})
		return
	}

	summaries, err := h.service.List(userID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "Unexpected error while listing quizzes")
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	userID, quizID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	quiz, err := h.service.Get(quizID, userID)
	if err != nil {
		h.writeAccessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, quizID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	var req UpdateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	quiz, err := h.service.Update(quizID, userID, req.Title)
	if err != nil {
		if errors.Is(err, ErrEmptyTitle) {
			writeDetail(w, http.StatusBadRequest, "Title must not be empty")
			return
		}
		h.writeAccessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	userID, quizID, ok := h.requestIDs(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(quizID, userID); err != nil {
		h.writeAccessError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) requestIDs(w http.ResponseWriter, r *http.Request) (userID, quizID uint, ok bool) {
	userID, authed := r.Context().Value("user_id").(uint)
	if !authed {
		writeDetail(w, http.StatusUnauthorized, "Authentication required")
		return 0, 0, false
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Quiz not found")
		return 0, 0, false
	}

	return userID, uint(id), true
}

func (h *Handler) writeAccessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Quiz not found")
	case errors.Is(err, ErrForbidden):
		writeDetail(w, http.StatusForbidden, "You do not have permission to access this quiz")
	default:
		writeDetail(w, http.StatusInternalServerError, "Unexpected error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
