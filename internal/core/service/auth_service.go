package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

// DefaultSessionTTL is the validity window of a session token.
const DefaultSessionTTL = 8 * time.Hour

// AuthService implements signup, signin, signout and the authorization
// predicate shared by every protected operation.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionRepository
	hasher     ports.PasswordHasher
	tokens     ports.TokenCodec
	sessionTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	sessionTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		hasher:     hasher,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		now:        time.Now,
		log:        log,
	}
}

// Signup registers a new user. The username is checked before the email.
// Storage unique indexes back both checks, so a racing duplicate still
// fails with the same error kinds.
func (s *AuthService) Signup(ctx context.Context, c domain.SignupCandidate) (*domain.User, error) {
	created, err := s.register(ctx, c, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user signed up")
	return created, nil
}

// EnsureAdmin creates the bootstrap admin account unless an admin with that
// username already exists. A non-admin holding the username is an error.
func (s *AuthService) EnsureAdmin(ctx context.Context, c domain.SignupCandidate) (*domain.User, error) {
	existing, err := s.users.FindByUsername(ctx, c.Username)
	taken, err := found(err)
	if err != nil {
		return nil, fmt.Errorf("ensure admin: find by username: %w", err)
	}
	if taken {
		if !existing.IsAdmin() {
			return nil, domain.ErrDuplicateUsername
		}
		return existing, nil
	}

	created, err := s.register(ctx, c, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.log.Warn().Str("user_id", created.ID).Str("username", created.Username).Msg("admin provisioned")
	return created, nil
}

func (s *AuthService) register(ctx context.Context, c domain.SignupCandidate, role domain.Role) (*domain.User, error) {
	_, err := s.users.FindByUsername(ctx, c.Username)
	taken, err := found(err)
	if err != nil {
		return nil, fmt.Errorf("signup: find by username: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateUsername
	}

	_, err = s.users.FindByEmail(ctx, c.Email)
	taken, err = found(err)
	if err != nil {
		return nil, fmt.Errorf("signup: find by email: %w", err)
	}
	if taken {
		return nil, domain.ErrDuplicateEmail
	}

	salt, hash := s.hasher.Derive(c.Password, "")
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		Profile:      c.Profile,
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("signup: create user: %w", err)
	}
	return created, nil
}

// Signin verifies the credentials and opens a session valid for sessionTTL.
func (s *AuthService) Signin(ctx context.Context, username, password string) (*domain.Session, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, fmt.Errorf("signin: find user: %w", err)
	}

	_, hash := s.hasher.Derive(password, user.Salt)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(user.PasswordHash)) != 1 {
		s.log.Info().Str("user_id", user.ID).Msg("signin rejected: bad credentials")
		return nil, domain.ErrBadCredentials
	}

	// Token claims have second precision; keep the session fields identical.
	now := s.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.sessionTTL)

	token, err := s.tokens.Issue(user.ID, now, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("signin: issue token: %w", err)
	}

	session, err := s.sessions.Create(ctx, &domain.Session{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		AccessToken: token,
		LoginAt:     now,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("signin: create session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Time("expires_at", expiresAt).Msg("user signed in")
	return session, nil
}

// Signout records the logout time of the session behind token. A session
// that is already signed out is left untouched.
func (s *AuthService) Signout(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("signout: find session: %w", err)
	}
	if session.SignedOut() {
		return nil, domain.ErrAlreadySignedOut
	}

	now := s.now().UTC()
	session.LogoutAt = &now

	updated, err := s.sessions.Update(ctx, session)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionClosed):
			return nil, domain.ErrAlreadySignedOut
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("signout: update session: %w", err)
	}

	s.log.Info().Str("user_id", updated.UserID).Msg("user signed out")
	return updated, nil
}

// Authenticate resolves the principal behind token:
//  1. no session for the token: ErrNotSignedIn
//  2. session signed out: ErrSignedOut
//  3. token or session past expiry: ErrSessionExpired
//  4. the session's user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrNotSignedIn
	}

	session, err := s.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrNotSignedIn
		}
		return nil, fmt.Errorf("authenticate: find session: %w", err)
	}
	if session.SignedOut() {
		return nil, domain.ErrSignedOut
	}

	claims, err := s.tokens.Parse(token)
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return nil, domain.ErrSessionExpired
	case err != nil:
		s.log.Warn().Err(err).Str("session_id", session.ID).Msg("stored session token failed to parse")
		return nil, domain.ErrNotSignedIn
	}
	if session.Expired(s.now()) {
		return nil, domain.ErrSessionExpired
	}
	if claims.UserID != session.UserID {
		s.log.Warn().Str("session_id", session.ID).Msg("token subject does not match session user")
		return nil, domain.ErrNotSignedIn
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			// The user was deleted after signing in.
			return nil, domain.ErrNotSignedIn
		}
		return nil, fmt.Errorf("authenticate: find user: %w", err)
	}
	return user, nil
}

// found turns a repository lookup error into an existence check.
func found(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrRecordNotFound):
		return false, nil
	default:
		return false, err
	}
}
