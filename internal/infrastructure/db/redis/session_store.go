package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// Retention keeps a session record readable after it expires so that requests
// carrying the old token get SessionExpired rather than NotSignedIn.
const Retention = 24 * time.Hour

// ErrDuplicateToken is returned when a session with the same token exists.
var ErrDuplicateToken = errors.New("redis: duplicate access token")

// SessionStore implements ports.SessionRepository on Redis.
// Key format: session:<access_token>
type SessionStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, now: time.Now}
}

type sessionRecord struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	LoginAt   time.Time  `json:"login_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	LogoutAt  *time.Time `json:"logout_at,omitempty"`
}

func (s *SessionStore) Create(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	raw, err := encodeSession(sess)
	if err != nil {
		return nil, err
	}

	ok, err := s.client.SetNX(ctx, sessionKey(sess.AccessToken), raw, s.ttl(sess)).Result()
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	if !ok {
		return nil, ErrDuplicateToken
	}

	created := *sess
	return &created, nil
}

func (s *SessionStore) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(token, raw)
}

// Update records the logout of an open session and keeps its TTL. The key is
// watched so a concurrent logout aborts the write.
func (s *SessionStore) Update(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	raw, err := encodeSession(sess)
	if err != nil {
		return nil, err
	}

	key := sessionKey(sess.AccessToken)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domain.ErrRecordNotFound
			}
			return fmt.Errorf("get session: %w", err)
		}
		stored, err := decodeSession(sess.AccessToken, cur)
		if err != nil {
			return err
		}
		if stored.SignedOut() {
			return domain.ErrSessionClosed
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetXX(ctx, key, raw, redis.KeepTTL)
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
	case errors.Is(err, redis.TxFailedErr):
		return nil, domain.ErrSessionClosed
	case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrSessionClosed):
		return nil, err
	default:
		return nil, fmt.Errorf("update session: %w", err)
	}

	updated := *sess
	return &updated, nil
}

// ttl is the remaining validity of sess plus Retention, never below Retention.
func (s *SessionStore) ttl(sess *domain.Session) time.Duration {
	remaining := sess.ExpiresAt.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining + Retention
}

func sessionKey(token string) string {
	return "session:" + token
}

func encodeSession(sess *domain.Session) ([]byte, error) {
	raw, err := json.Marshal(sessionRecord{
		ID:        sess.ID,
		UserID:    sess.UserID,
		LoginAt:   sess.LoginAt.UTC(),
		ExpiresAt: sess.ExpiresAt.UTC(),
		LogoutAt:  sess.LogoutAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return raw, nil
}

func decodeSession(token string, raw []byte) (*domain.Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &domain.Session{
		ID:          rec.ID,
		UserID:      rec.UserID,
		AccessToken: token,
		LoginAt:     rec.LoginAt,
		ExpiresAt:   rec.ExpiresAt,
		LogoutAt:    rec.LogoutAt,
	}, nil
}
