package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// ErrDuplicateToken is returned when a session with the same token exists.
var ErrDuplicateToken = errors.New("mongo: duplicate access token")

// SessionRepository implements ports.SessionRepository on the user_auth collection.
type SessionRepository struct {
	coll *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(collectionSessions)}
}

type mongoSession struct {
	ID          string     `bson:"_id"`
	UserID      string     `bson:"user_id"`
	AccessToken string     `bson:"access_token"`
	LoginAt     time.Time  `bson:"login_at"`
	ExpiresAt   time.Time  `bson:"expires_at"`
	LogoutAt    *time.Time `bson:"logout_at,omitempty"`
}

func (m mongoSession) toDomain() *domain.Session {
	return &domain.Session{
		ID:          m.ID,
		UserID:      m.UserID,
		AccessToken: m.AccessToken,
		LoginAt:     m.LoginAt,
		ExpiresAt:   m.ExpiresAt,
		LogoutAt:    m.LogoutAt,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSession{
		ID:          s.ID,
		UserID:      s.UserID,
		AccessToken: s.AccessToken,
		LoginAt:     s.LoginAt.UTC(),
		ExpiresAt:   s.ExpiresAt.UTC(),
		LogoutAt:    s.LogoutAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if duplicateIndex(err) != "" {
			return nil, ErrDuplicateToken
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}
	created := *s
	return &created, nil
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"access_token": token}).Decode(&ms); err != nil {
		return nil, notFound(err, "session")
	}
	return ms.toDomain(), nil
}

// openSession matches the session only while no logout is stored. A nil
// logout_at matches both null and a missing field.
func openSession(token string) bson.M {
	return bson.M{"access_token": token, "logout_at": nil}
}

// Update writes the logout timestamp while none is stored. Other fields are
// never changed.
func (r *SessionRepository) Update(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		openSession(s.AccessToken),
		bson.M{"$set": bson.M{"logout_at": s.LogoutAt}},
	)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"access_token": s.AccessToken})
		if err != nil {
			return nil, fmt.Errorf("update session: %w", err)
		}
		if n > 0 {
			return nil, domain.ErrSessionClosed
		}
		return nil, domain.ErrRecordNotFound
	}
	updated := *s
	return &updated, nil
}
