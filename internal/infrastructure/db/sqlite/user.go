package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// UserRepository implements ports.UserRepository on the users table.
type UserRepository struct {
	db *sql.DB
}

const userColumns = `id, username, email, password, salt, role,
	first_name, last_name, country, about_me, dob, contact_number, created_at`

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Salt,
		string(u.Role),
		u.Profile.FirstName,
		u.Profile.LastName,
		u.Profile.Country,
		u.Profile.AboutMe,
		u.Profile.DOB,
		u.Profile.ContactNumber,
		toUnix(u.CreatedAt),
	)
	if err != nil {
		switch uniqueViolation(err) {
		case "users.username":
			return nil, domain.ErrDuplicateUsername
		case "users.email":
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *u
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) Delete(ctx context.Context, u *domain.User) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, u.ID)
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if err := rowsAffected(res, "delete user"); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	var (
		u       domain.User
		role    string
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Salt,
		&role,
		&u.Profile.FirstName,
		&u.Profile.LastName,
		&u.Profile.Country,
		&u.Profile.AboutMe,
		&u.Profile.DOB,
		&u.Profile.ContactNumber,
		&created,
	)
	if err != nil {
		return nil, noRows(err, "user")
	}

	u.Role = domain.Role(role)
	if !u.Role.Valid() {
		return nil, fmt.Errorf("user %s: unknown role %q", u.ID, role)
	}
	u.CreatedAt = fromUnix(created)
	return &u, nil
}
