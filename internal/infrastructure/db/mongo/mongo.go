package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

const (
	collectionUsers     = "users"
	collectionSessions  = "user_auth"
	collectionQuestions = "questions"
	collectionAnswers   = "answers"

	indexUsername = "users_username_unique"
	indexEmail    = "users_email_unique"
	indexToken    = "user_auth_access_token_unique"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the unique indexes the auth core relies on for
// username, email and token uniqueness, plus the answer lookup index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := func(field, name string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(name),
		}
	}

	if _, err := db.Collection(collectionUsers).Indexes().CreateMany(ctx, []mongo.IndexModel{
		unique("username", indexUsername),
		unique("email", indexEmail),
	}); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if _, err := db.Collection(collectionSessions).Indexes().CreateOne(ctx, unique("access_token", indexToken)); err != nil {
		return fmt.Errorf("user_auth indexes: %w", err)
	}
	if _, err := db.Collection(collectionAnswers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "question_id", Value: 1}, {Key: "created_at", Value: 1}},
	}); err != nil {
		return fmt.Errorf("answers indexes: %w", err)
	}
	return nil
}

// notFound maps the driver's empty result to domain.ErrRecordNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrRecordNotFound
	}
	return fmt.Errorf("find %s: %w", what, err)
}

// duplicateIndex returns the name of the unique index a write violated, or "".
func duplicateIndex(err error) string {
	if !mongo.IsDuplicateKeyError(err) {
		return ""
	}
	msg := err.Error()
	for _, name := range []string{indexUsername, indexEmail, indexToken} {
		if strings.Contains(msg, name) {
			return name
		}
	}
	return "unknown"
}
