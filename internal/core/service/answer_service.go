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

// AnswerService implements the answer use cases. Every operation resolves
// the principal first and mutates nothing until all checks pass.
type AnswerService struct {
	guard     *Guard
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	now       func() time.Time
	log       zerolog.Logger
}

func NewAnswerService(
	guard *Guard,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	log zerolog.Logger,
) *AnswerService {
	return &AnswerService{
		guard:     guard,
		questions: questions,
		answers:   answers,
		now:       time.Now,
		log:       log,
	}
}

func (s *AnswerService) CreateAnswer(ctx context.Context, token, questionID, content string) (*domain.Answer, error) {
	p, err := s.guard.Principal(ctx, token, ActionCreateAnswer)
	if err != nil {
		return nil, err
	}
	if _, err := s.question(ctx, questionID, domain.ErrInvalidQuestion); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	a, err := s.answers.Create(ctx, &domain.Answer{
		ID:         uuid.NewString(),
		QuestionID: questionID,
		OwnerID:    p.ID,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}

	s.log.Info().Str("answer_id", a.ID).Str("question_id", questionID).Str("user_id", p.ID).Msg("answer created")
	return a, nil
}

// EditAnswer replaces the answer content. Only the owner may edit.
func (s *AnswerService) EditAnswer(ctx context.Context, token, answerID, content string) (*domain.Answer, error) {
	p, err := s.guard.Principal(ctx, token, ActionEditAnswer)
	if err != nil {
		return nil, err
	}
	a, err := s.answer(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireOwner(p, a.OwnerID, ActionEditAnswer); err != nil {
		return nil, err
	}

	a.Content = content
	a.UpdatedAt = s.now().UTC()
	updated, err := s.answers.Update(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("edit answer: %w", err)
	}

	s.log.Info().Str("answer_id", a.ID).Str("user_id", p.ID).Msg("answer edited")
	return updated, nil
}

// DeleteAnswer removes the answer. The owner or any admin may delete.
func (s *AnswerService) DeleteAnswer(ctx context.Context, token, answerID string) (*domain.Answer, error) {
	p, err := s.guard.Principal(ctx, token, ActionDeleteAnswer)
	if err != nil {
		return nil, err
	}
	a, err := s.answer(ctx, answerID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.RequireOwnerOrAdmin(p, a.OwnerID, ActionDeleteAnswer); err != nil {
		return nil, err
	}

	deleted, err := s.answers.Delete(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("delete answer: %w", err)
	}

	s.log.Info().Str("answer_id", a.ID).Str("user_id", p.ID).Bool("by_admin", p.ID != a.OwnerID).Msg("answer deleted")
	return deleted, nil
}

func (s *AnswerService) ListAnswers(ctx context.Context, token, questionID string) ([]*domain.Answer, error) {
	if _, err := s.guard.Principal(ctx, token, ActionListAnswers); err != nil {
		return nil, err
	}
	notFound := domain.ErrInvalidQuestion.WithMessage("The question with entered uuid whose details are to be seen does not exist")
	if _, err := s.question(ctx, questionID, notFound); err != nil {
		return nil, err
	}

	answers, err := s.answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

func (s *AnswerService) question(ctx context.Context, id string, notFound error) (*domain.Question, error) {
	q, err := s.questions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return q, nil
}

func (s *AnswerService) answer(ctx context.Context, id string) (*domain.Answer, error) {
	a, err := s.answers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("find answer: %w", err)
	}
	return a, nil
}
