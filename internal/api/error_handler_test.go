package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"duplicate username", domain.ErrDuplicateUsername, http.StatusConflict, "SGR-001", domain.ErrDuplicateUsername.Message},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "SGR-002", domain.ErrDuplicateEmail.Message},
		{"already signed out shares SGR-001", domain.ErrAlreadySignedOut, http.StatusUnauthorized, "SGR-001", "User is not Signed in"},
		{"missing token shares SGR-002", domain.ErrMissingToken, http.StatusUnauthorized, "SGR-002", "Authorization Access Token is null"},
		{"bad credentials", domain.ErrBadCredentials, http.StatusUnauthorized, "ATH-002", "Password Failed"},
		{"not signed in", domain.ErrNotSignedIn, http.StatusUnauthorized, "ATHR-001", "User has not signed in"},
		{"expired", domain.ErrSessionExpired, http.StatusUnauthorized, "ATHR-004", domain.ErrSessionExpired.Message},
		{"forbidden custom message", domain.ErrForbidden.WithMessage("Only the answer owner can edit the answer"),
			http.StatusForbidden, "ATHR-003", "Only the answer owner can edit the answer"},
		{"wrapped", fmt.Errorf("ctx: %w", domain.ErrAnswerNotFound), http.StatusNotFound, "ANS-001", domain.ErrAnswerNotFound.Message},
		{"invalid question", domain.ErrInvalidQuestion, http.StatusNotFound, "QUES-001", domain.ErrInvalidQuestion.Message},
		{"echo error", echo.NewHTTPError(http.StatusUnprocessableEntity, "username is required"),
			http.StatusUnprocessableEntity, "HTTP-422", "username is required"},
		{"unexpected", errors.New("mongo exploded"), http.StatusInternalServerError, "GEN-001", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Code != tt.wantCode || body.Message != tt.wantMsg {
				t.Fatalf("unexpected envelope: %+v", body)
			}
		})
	}
}
