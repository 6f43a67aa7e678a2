package domain

import "time"

// Question is a post that answers attach to.
type Question struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Answer is a reply to a question, owned by the user who posted it.
type Answer struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	OwnerID    string    `json:"owner_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
