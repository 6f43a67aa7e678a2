package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/infrastructure/token"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	createErr error
	creates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) find(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.byID {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.creates++
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.byID[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, user *domain.User) (*domain.User, error) {
	delete(r.byID, user.ID)
	return cloneUser(user), nil
}

// seed stores a user whose password hashes with stubHasher.
func (r *stubUserRepo) seed(id, username string, role domain.Role, password string) *domain.User {
	salt, hash := stubHasher{}.Derive(password, "salt-"+id)
	u := &domain.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
	}
	r.byID[id] = cloneUser(u)
	return u
}

// ---------------------------------------------------------------------------
// Sessions
// ---------------------------------------------------------------------------

type stubSessionRepo struct {
	byToken map[string]*domain.Session
	updates int
	// staleReads hides stored logouts from FindByToken, as a concurrent
	// reader that loaded the session before another signout would see it.
	staleReads bool
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byToken: make(map[string]*domain.Session)}
}

func cloneSession(s *domain.Session) *domain.Session {
	clone := *s
	if s.LogoutAt != nil {
		at := *s.LogoutAt
		clone.LogoutAt = &at
	}
	return &clone
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	r.byToken[s.AccessToken] = cloneSession(s)
	return cloneSession(s), nil
}

func (r *stubSessionRepo) FindByToken(_ context.Context, tok string) (*domain.Session, error) {
	s, ok := r.byToken[tok]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	out := cloneSession(s)
	if r.staleReads {
		out.LogoutAt = nil
	}
	return out, nil
}

func (r *stubSessionRepo) Update(_ context.Context, s *domain.Session) (*domain.Session, error) {
	stored, ok := r.byToken[s.AccessToken]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if stored.SignedOut() {
		return nil, domain.ErrSessionClosed
	}
	r.updates++
	r.byToken[s.AccessToken] = cloneSession(s)
	return cloneSession(s), nil
}

// ---------------------------------------------------------------------------
// Questions and answers
// ---------------------------------------------------------------------------

type stubQuestionRepo struct {
	byID map[string]*domain.Question
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{byID: make(map[string]*domain.Question)}
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) (*domain.Question, error) {
	c := *q
	r.byID[q.ID] = &c
	return q, nil
}

func (r *stubQuestionRepo) FindByID(_ context.Context, id string) (*domain.Question, error) {
	q, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	c := *q
	return &c, nil
}

type stubAnswerRepo struct {
	byID    map[string]*domain.Answer
	updates int
	deletes int
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{byID: make(map[string]*domain.Answer)}
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.Answer) (*domain.Answer, error) {
	c := *a
	r.byID[a.ID] = &c
	return a, nil
}

func (r *stubAnswerRepo) FindByID(_ context.Context, id string) (*domain.Answer, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	c := *a
	return &c, nil
}

func (r *stubAnswerRepo) Update(_ context.Context, a *domain.Answer) (*domain.Answer, error) {
	r.updates++
	c := *a
	r.byID[a.ID] = &c
	return a, nil
}

func (r *stubAnswerRepo) Delete(_ context.Context, a *domain.Answer) (*domain.Answer, error) {
	r.deletes++
	delete(r.byID, a.ID)
	return a, nil
}

func (r *stubAnswerRepo) ListByQuestion(_ context.Context, questionID string) ([]*domain.Answer, error) {
	var out []*domain.Answer
	for _, a := range r.byID {
		if a.QuestionID == questionID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// ---------------------------------------------------------------------------
// Hasher, clock and wiring
// ---------------------------------------------------------------------------

// stubHasher is reversible on purpose; the real scheme is tested in
// infrastructure/crypto.
type stubHasher struct{}

func (stubHasher) Derive(password, salt string) (string, string) {
	if salt == "" {
		salt = "generated"
	}
	return salt, "h(" + salt + "|" + strings.ToUpper(password) + ")"
}

type clock struct{ t time.Time }

func newClock() *clock {
	return &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	clock     *clock
	users     *stubUserRepo
	sessions  *stubSessionRepo
	questions *stubQuestionRepo
	answers   *stubAnswerRepo
	codec     *token.JWTCodec
	auth      *AuthService
	guard     *Guard
	answerSvc *AnswerService
	admin     *AdminService
	question  *QuestionService
}

func newFixture() *fixture {
	f := &fixture{
		clock:     newClock(),
		users:     newStubUserRepo(),
		sessions:  newStubSessionRepo(),
		questions: newStubQuestionRepo(),
		answers:   newStubAnswerRepo(),
	}
	f.codec = token.NewJWTCodec("test-secret", token.WithClock(f.clock.now))
	f.auth = NewAuthService(f.users, f.sessions, stubHasher{}, f.codec, 0, zerolog.Nop())
	f.auth.now = f.clock.now
	f.guard = NewGuard(f.auth, zerolog.Nop())
	f.answerSvc = NewAnswerService(f.guard, f.questions, f.answers, zerolog.Nop())
	f.answerSvc.now = f.clock.now
	f.admin = NewAdminService(f.guard, f.users, zerolog.Nop())
	f.question = NewQuestionService(f.guard, f.questions, zerolog.Nop())
	f.question.now = f.clock.now
	return f
}

// signin opens a session for a seeded user and returns its token.
func (f *fixture) signin(username, password string) string {
	s, err := f.auth.Signin(context.Background(), username, password)
	if err != nil {
		panic("signin " + username + ": " + err.Error())
	}
	return s.AccessToken
}
