package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// seedQA creates a question owned by "author" and an answer owned by "bob".
func seedQA(f *fixture) (questionID, answerID string) {
	f.users.seed("author", "author", domain.RoleUser, "pw")
	f.users.seed("bob", "bob", domain.RoleUser, "pw")
	f.users.seed("alice", "alice", domain.RoleUser, "pw")
	f.users.seed("root", "root", domain.RoleAdmin, "pw")

	f.questions.byID["q1"] = &domain.Question{ID: "q1", OwnerID: "author", Content: "How?"}
	f.answers.byID["a1"] = &domain.Answer{ID: "a1", QuestionID: "q1", OwnerID: "bob", Content: "Like this."}
	return "q1", "a1"
}

func TestAnswerService_Create(t *testing.T) {
	f := newFixture()
	qID, _ := seedQA(f)
	tok := f.signin("alice", "pw")

	a, err := f.answerSvc.CreateAnswer(context.Background(), tok, qID, "Try that.")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.OwnerID != "alice" || a.QuestionID != qID || a.ID == "" {
		t.Fatalf("unexpected answer %+v", a)
	}
	if !a.CreatedAt.Equal(f.clock.now()) {
		t.Fatalf("created_at not set from clock")
	}
}

func TestAnswerService_Create_InvalidQuestion(t *testing.T) {
	f := newFixture()
	seedQA(f)
	tok := f.signin("alice", "pw")

	if _, err := f.answerSvc.CreateAnswer(context.Background(), tok, "missing", "x"); !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestAnswerService_Create_NotSignedIn(t *testing.T) {
	f := newFixture()
	qID, _ := seedQA(f)

	if _, err := f.answerSvc.CreateAnswer(context.Background(), "bogus", qID, "x"); !errors.Is(err, domain.ErrNotSignedIn) {
		t.Fatalf("expected ErrNotSignedIn, got %v", err)
	}
	if len(f.answers.byID) != 1 {
		t.Fatalf("no answer may be created")
	}
}

func TestAnswerService_Edit_Owner(t *testing.T) {
	f := newFixture()
	_, aID := seedQA(f)
	tok := f.signin("bob", "pw")

	f.clock.advance(time.Minute)
	a, err := f.answerSvc.EditAnswer(context.Background(), tok, aID, "Updated.")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if a.Content != "Updated." || !a.UpdatedAt.Equal(f.clock.now()) {
		t.Fatalf("unexpected answer %+v", a)
	}
}

func TestAnswerService_Edit_AdminIsForbidden(t *testing.T) {
	f := newFixture()
	_, aID := seedQA(f)
	tok := f.signin("root", "pw")

	if _, err := f.answerSvc.EditAnswer(context.Background(), tok, aID, "hijack"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin edit, got %v", err)
	}
	if f.answers.updates != 0 || f.answers.byID[aID].Content != "Like this." {
		t.Fatalf("answer must be untouched")
	}
}

func TestAnswerService_Edit_NotFound(t *testing.T) {
	f := newFixture()
	seedQA(f)
	tok := f.signin("bob", "pw")

	if _, err := f.answerSvc.EditAnswer(context.Background(), tok, "nope", "x"); !errors.Is(err, domain.ErrAnswerNotFound) {
		t.Fatalf("expected ErrAnswerNotFound, got %v", err)
	}
}

func TestAnswerService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  error
	}{
		{"owner", "bob", nil},
		{"admin", "root", nil},
		{"stranger", "alice", domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, aID := seedQA(f)
			tok := f.signin(tt.username, "pw")

			_, err := f.answerSvc.DeleteAnswer(context.Background(), tok, aID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("delete: %v", err)
				}
				if _, ok := f.answers.byID[aID]; ok {
					t.Fatalf("answer still present")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if f.answers.deletes != 0 {
				t.Fatalf("no delete may be attempted")
			}
		})
	}
}

func TestAnswerService_List(t *testing.T) {
	f := newFixture()
	qID, _ := seedQA(f)
	tok := f.signin("alice", "pw")

	f.clock.advance(time.Second)
	if _, err := f.answerSvc.CreateAnswer(context.Background(), tok, qID, "second"); err != nil {
		t.Fatalf("create: %v", err)
	}

	answers, err := f.answerSvc.ListAnswers(context.Background(), tok, qID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(answers) != 2 || answers[0].ID != "a1" || answers[1].Content != "second" {
		t.Fatalf("unexpected answers %+v", answers)
	}

	if _, err := f.answerSvc.ListAnswers(context.Background(), tok, "missing"); !errors.Is(err, domain.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

// alice signs up, signs in, tries to edit someone else's answer, signs out,
// and tries again.
func TestScenario_EditAfterSignout(t *testing.T) {
	f := newFixture()
	_, aID := seedQA(f)
	ctx := context.Background()

	if _, err := f.auth.Signup(ctx, candidate("alice2", "alice2@example.com")); err != nil {
		t.Fatalf("signup: %v", err)
	}
	session, err := f.auth.Signin(ctx, "alice2", "pass123")
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if session.ExpiresAt.Sub(session.LoginAt) != 8*time.Hour {
		t.Fatalf("expected 8h session")
	}

	if _, err := f.answerSvc.EditAnswer(ctx, session.AccessToken, aID, "mine now"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := f.auth.Signout(ctx, session.AccessToken); err != nil {
		t.Fatalf("signout: %v", err)
	}

	_, err = f.answerSvc.EditAnswer(ctx, session.AccessToken, aID, "mine now")
	if !errors.Is(err, domain.ErrSignedOut) {
		t.Fatalf("expected ErrSignedOut after signout, got %v", err)
	}
	if errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("signed-out caller must not reach the ownership check")
	}
}
