package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/service"
)

type authorizerFunc func(ctx context.Context, token string, act service.Action) (*domain.User, error)

func (f authorizerFunc) Principal(ctx context.Context, token string, act service.Action) (*domain.User, error) {
	return f(ctx, token, act)
}

func TestAuthorize(t *testing.T) {
	allow := authorizerFunc(func(_ context.Context, token string, _ service.Action) (*domain.User, error) {
		if token != "good" {
			return nil, domain.ErrNotSignedIn
		}
		return &domain.User{ID: "u1"}, nil
	})

	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{name: "signed in", header: "Bearer good"},
		{name: "unknown token", header: "Bearer bad", wantErr: domain.ErrNotSignedIn},
		{name: "no token", wantErr: domain.ErrNotSignedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			h := AccessToken()(Authorize(allow, service.ActionCreateQuestion)(func(c echo.Context) error {
				called = true
				return nil
			}))

			err := h(c)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if called != (tt.wantErr == nil) {
				t.Fatalf("next called = %v", called)
			}
		})
	}
}

func TestAuthorize_PassesAction(t *testing.T) {
	var got service.Action
	auth := authorizerFunc(func(_ context.Context, _ string, act service.Action) (*domain.User, error) {
		got = act
		return nil, domain.ErrSignedOut.WithMessage(act.SignedOutMsg)
	})

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
	err := Authorize(auth, service.ActionEditAnswer)(func(echo.Context) error { return nil })(c)

	var de *domain.Error
	if !errors.As(err, &de) || de.Message != service.ActionEditAnswer.SignedOutMsg {
		t.Fatalf("expected signed-out error for edit, got %v", err)
	}
	if got.Name != service.ActionEditAnswer.Name {
		t.Fatalf("action = %q", got.Name)
	}
}
