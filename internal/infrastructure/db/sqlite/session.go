package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// ErrDuplicateToken is returned when a session with the same token exists.
var ErrDuplicateToken = errors.New("sqlite: duplicate access token")

// SessionRepository implements ports.SessionRepository on the user_auth table.
type SessionRepository struct {
	db *sql.DB
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	query := `
		INSERT INTO user_auth (id, user_id, access_token, login_at, expires_at, logout_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	var logout sql.NullInt64
	if s.LogoutAt != nil {
		logout = sql.NullInt64{Int64: toUnix(*s.LogoutAt), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.AccessToken,
		toUnix(s.LoginAt),
		toUnix(s.ExpiresAt),
		logout,
	)
	if err != nil {
		if uniqueViolation(err) != "" {
			return nil, ErrDuplicateToken
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}

	created := *s
	return &created, nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	query := `
		SELECT id, user_id, access_token, login_at, expires_at, logout_at
		FROM user_auth
		WHERE access_token = ?
	`

	var (
		s              domain.Session
		login, expires int64
		logout         sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&s.ID,
		&s.UserID,
		&s.AccessToken,
		&login,
		&expires,
		&logout,
	)
	if err != nil {
		return nil, noRows(err, "session")
	}

	s.LoginAt = fromUnix(login)
	s.ExpiresAt = fromUnix(expires)
	if logout.Valid {
		t := fromUnix(logout.Int64)
		s.LogoutAt = &t
	}
	return &s, nil
}

// Update writes the logout timestamp while none is stored. Other columns are
// never changed.
func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	var logout sql.NullInt64
	if s.LogoutAt != nil {
		logout = sql.NullInt64{Int64: toUnix(*s.LogoutAt), Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE user_auth SET logout_at = ? WHERE access_token = ? AND logout_at IS NULL`,
		logout, s.AccessToken,
	)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	if err := rowsAffected(res, "update session"); err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err
		}
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM user_auth WHERE access_token = ?)`,
			s.AccessToken,
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("update session: %w", err)
		}
		if exists {
			return nil, domain.ErrSessionClosed
		}
		return nil, domain.ErrRecordNotFound
	}

	updated := *s
	return &updated, nil
}
