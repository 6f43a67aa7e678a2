package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

type QuestionService struct {
	guard     *Guard
	questions ports.QuestionRepository
	now       func() time.Time
	log       zerolog.Logger
}

func NewQuestionService(guard *Guard, questions ports.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{guard: guard, questions: questions, now: time.Now, log: log}
}

// CreateQuestion posts a question owned by the signed-in user.
func (s *QuestionService) CreateQuestion(ctx context.Context, token, content string) (*domain.Question, error) {
	p, err := s.guard.Principal(ctx, token, ActionCreateQuestion)
	if err != nil {
		return nil, err
	}

	q, err := s.questions.Create(ctx, &domain.Question{
		ID:        uuid.NewString(),
		OwnerID:   p.ID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	s.log.Info().Str("question_id", q.ID).Str("user_id", p.ID).Msg("question created")
	return q, nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvalidQuestion
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}
