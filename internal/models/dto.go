package models

import "time"

// QuizSummary is the list-view shape: same fields as Quiz without the
// nested questions.
type QuizSummary struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
}

func (q Quiz) ToSummary() QuizSummary {
	return QuizSummary{
		ID:          q.ID,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
		Title:       q.Title,
		Description: q.Description,
		VideoURL:    q.VideoURL,
	}
}

type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u User) ToInfo() UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}
}
