package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

type mongoQuestion struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"user_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

type mongoAnswer struct {
	ID         string    `bson:"_id"`
	QuestionID string    `bson:"question_id"`
	OwnerID    string    `bson:"user_id"`
	Content    string    `bson:"ans"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"date"`
}

func (m mongoAnswer) toDomain() *domain.Answer {
	return &domain.Answer{
		ID:         m.ID,
		QuestionID: m.QuestionID,
		OwnerID:    m.OwnerID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// QuestionRepository implements ports.QuestionRepository.
type QuestionRepository struct {
	coll *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{coll: db.Collection(collectionQuestions)}
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) (*domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoQuestion{ID: q.ID, OwnerID: q.OwnerID, Content: q.Content, CreatedAt: q.CreatedAt.UTC()}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert question: %w", err)
	}
	return q, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mq mongoQuestion
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mq); err != nil {
		return nil, notFound(err, "question")
	}
	return &domain.Question{ID: mq.ID, OwnerID: mq.OwnerID, Content: mq.Content, CreatedAt: mq.CreatedAt}, nil
}

// AnswerRepository implements ports.AnswerRepository.
type AnswerRepository struct {
	coll *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{coll: db.Collection(collectionAnswers)}
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAnswer{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		OwnerID:    a.OwnerID,
		Content:    a.Content,
		CreatedAt:  a.CreatedAt.UTC(),
		UpdatedAt:  a.UpdatedAt.UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert answer: %w", err)
	}
	return a, nil
}

func (r *AnswerRepository) FindByID(ctx context.Context, id string) (*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoAnswer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ma); err != nil {
		return nil, notFound(err, "answer")
	}
	return ma.toDomain(), nil
}

func (r *AnswerRepository) Update(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": a.ID},
		bson.M{"$set": bson.M{"ans": a.Content, "date": a.UpdatedAt.UTC()}},
	)
	if err != nil {
		return nil, fmt.Errorf("update answer: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return a, nil
}

func (r *AnswerRepository) Delete(ctx context.Context, a *domain.Answer) (*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": a.ID})
	if err != nil {
		return nil, fmt.Errorf("delete answer: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return a, nil
}

func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"question_id": questionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []mongoAnswer
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	out := make([]*domain.Answer, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
