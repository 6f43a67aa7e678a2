package ports

import (
	"context"
	"time"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, candidate domain.SignupCandidate) (*domain.User, error)
	Signin(ctx context.Context, username, password string) (*domain.Session, error)
	Signout(ctx context.Context, token string) (*domain.Session, error)
}

// Authenticator resolves the principal behind an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// PasswordHasher derives a salted one-way hash. An empty salt asks for a
// freshly generated one; the salt actually used is always returned.
type PasswordHasher interface {
	Derive(password, salt string) (usedSalt, hash string)
}

// TokenCodec issues and parses signed, time-bound session tokens.
type TokenCodec interface {
	Issue(userID string, issuedAt, expiresAt time.Time) (string, error)
	Parse(token string) (*domain.TokenClaims, error)
}
