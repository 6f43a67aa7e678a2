package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Storage holds the SQLite connection shared by every repository in this
// package. Use ":memory:" as the path for an ephemeral database.
type Storage struct {
	db *sql.DB
}

// New opens the database, applies pragmas and runs the embedded migrations.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	s := &Storage{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Storage) migrate() error {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) Users() *UserRepository {
	return &UserRepository{db: s.db}
}

func (s *Storage) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

func (s *Storage) Questions() *QuestionRepository {
	return &QuestionRepository{db: s.db}
}

func (s *Storage) Answers() *AnswerRepository {
	return &AnswerRepository{db: s.db}
}

// Timestamps are stored as unix nanoseconds in UTC.
func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func noRows(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRecordNotFound
	}
	return fmt.Errorf("get %s: %w", what, err)
}

// uniqueViolation reports the "table.column" named by a UNIQUE constraint
// failure, or "" when err is something else.
func uniqueViolation(err error) string {
	const marker = "UNIQUE constraint failed: "
	msg := err.Error()
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	col := msg[i+len(marker):]
	if j := strings.IndexAny(col, " ,("); j >= 0 {
		col = col[:j]
	}
	return col
}

// rowsAffected turns a zero-row write into domain.ErrRecordNotFound.
func rowsAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", what, err)
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
