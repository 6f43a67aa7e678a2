package ports

import (
	"context"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// Every method taking a token runs the authorization predicate first.

type QuestionService interface {
	CreateQuestion(ctx context.Context, token, content string) (*domain.Question, error)
	GetQuestion(ctx context.Context, id string) (*domain.Question, error)
}

type AnswerService interface {
	CreateAnswer(ctx context.Context, token, questionID, content string) (*domain.Answer, error)
	EditAnswer(ctx context.Context, token, answerID, content string) (*domain.Answer, error)
	DeleteAnswer(ctx context.Context, token, answerID string) (*domain.Answer, error)
	ListAnswers(ctx context.Context, token, questionID string) ([]*domain.Answer, error)
}

type AdminService interface {
	DeleteUser(ctx context.Context, token, userID string) (*domain.User, error)
}
