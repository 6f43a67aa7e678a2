package ports

import (
	"context"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// QuestionRepository defines question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) (*domain.Question, error)
	FindByID(ctx context.Context, id string) (*domain.Question, error)
}

// AnswerRepository defines answer persistence. ListByQuestion returns answers
// oldest first.
type AnswerRepository interface {
	Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error)
	FindByID(ctx context.Context, id string) (*domain.Answer, error)
	Update(ctx context.Context, a *domain.Answer) (*domain.Answer, error)
	Delete(ctx context.Context, a *domain.Answer) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error)
}
