package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// UserRepository implements ports.UserRepository on the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID            string    `bson:"_id"`
	Username      string    `bson:"username"`
	Email         string    `bson:"email"`
	PasswordHash  string    `bson:"password"`
	Salt          string    `bson:"salt"`
	Role          string    `bson:"role"`
	FirstName     string    `bson:"first_name"`
	LastName      string    `bson:"last_name"`
	Country       string    `bson:"country,omitempty"`
	AboutMe       string    `bson:"about_me,omitempty"`
	DOB           string    `bson:"dob,omitempty"`
	ContactNumber string    `bson:"contact_number,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Salt:          u.Salt,
		Role:          string(u.Role),
		FirstName:     u.Profile.FirstName,
		LastName:      u.Profile.LastName,
		Country:       u.Profile.Country,
		AboutMe:       u.Profile.AboutMe,
		DOB:           u.Profile.DOB,
		ContactNumber: u.Profile.ContactNumber,
		CreatedAt:     u.CreatedAt.UTC(),
	}
}

func (m mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Salt:         m.Salt,
		Role:         domain.Role(m.Role),
		Profile: domain.Profile{
			FirstName:     m.FirstName,
			LastName:      m.LastName,
			Country:       m.Country,
			AboutMe:       m.AboutMe,
			DOB:           m.DOB,
			ContactNumber: m.ContactNumber,
		},
		CreatedAt: m.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, toMongoUser(user)); err != nil {
		switch duplicateIndex(err) {
		case "":
			return nil, fmt.Errorf("insert user: %w", err)
		case indexEmail:
			return nil, domain.ErrDuplicateEmail
		default:
			return nil, domain.ErrDuplicateUsername
		}
	}
	created := *user
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) Delete(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": user.ID})
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return user, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		return nil, notFound(err, "user")
	}
	u := mu.toDomain()
	if !u.Role.Valid() {
		return nil, fmt.Errorf("user %s: unknown role %q", u.ID, mu.Role)
	}
	return u, nil
}
