package ports

import (
	"context"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// UserRepository defines user persistence. Lookups return
// domain.ErrRecordNotFound when nothing matches; Create returns
// domain.ErrDuplicateUsername or domain.ErrDuplicateEmail when a unique
// index rejects the insert.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, user *domain.User) (*domain.User, error)
}

// SessionRepository stores sessions keyed by their access token. Sessions
// are never deleted or listed through this interface.
type SessionRepository interface {
	// Create fails if a session with the same token already exists.
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
	// Update records the logout timestamp only while none is stored. It
	// returns domain.ErrSessionClosed, leaving the stored value untouched,
	// when another logout won.
	Update(ctx context.Context, session *domain.Session) (*domain.Session, error)
}
