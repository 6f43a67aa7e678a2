package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// QuestionRepository implements ports.QuestionRepository.
type QuestionRepository struct {
	db *sql.DB
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO questions (id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
		q.ID, q.OwnerID, q.Content, toUnix(q.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	var (
		q       domain.Question
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, content, created_at FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.OwnerID, &q.Content, &created)
	if err != nil {
		return nil, noRows(err, "question")
	}
	q.CreatedAt = fromUnix(created)
	return &q, nil
}

// AnswerRepository implements ports.AnswerRepository.
type AnswerRepository struct {
	db *sql.DB
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	query := `
		INSERT INTO answers (id, question_id, user_id, ans, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.QuestionID,
		a.OwnerID,
		a.Content,
		toUnix(a.CreatedAt),
		toUnix(a.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert answer: %w", err)
	}
	return a, nil
}

func (r *AnswerRepository) FindByID(ctx context.Context, id string) (*domain.Answer, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, question_id, user_id, ans, created_at, updated_at FROM answers WHERE id = ?`, id,
	)
	a, err := scanAnswer(row)
	if err != nil {
		return nil, noRows(err, "answer")
	}
	return a, nil
}

func (r *AnswerRepository) Update(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE answers SET ans = ?, updated_at = ? WHERE id = ?`,
		a.Content, toUnix(a.UpdatedAt), a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update answer: %w", err)
	}
	if err := rowsAffected(res, "update answer"); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AnswerRepository) Delete(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE id = ?`, a.ID)
	if err != nil {
		return nil, fmt.Errorf("delete answer: %w", err)
	}
	if err := rowsAffected(res, "delete answer"); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByQuestion returns the answers of a question, oldest first.
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question_id, user_id, ans, created_at, updated_at
		FROM answers
		WHERE question_id = ?
		ORDER BY created_at ASC, id ASC
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Answer
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate answers: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnswer(s scanner) (*domain.Answer, error) {
	var (
		a                domain.Answer
		created, updated int64
	)
	if err := s.Scan(&a.ID, &a.QuestionID, &a.OwnerID, &a.Content, &created, &updated); err != nil {
		return nil, err
	}
	a.CreatedAt = fromUnix(created)
	a.UpdatedAt = fromUnix(updated)
	return &a, nil
}
