package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAccessToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase bearer", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "bare token", header: "abc.def.ghi", want: "abc.def.ghi"},
		{name: "padded", header: "  Bearer   abc  ", want: "abc"},
		{name: "missing", header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			handler := AccessToken()(func(c echo.Context) error {
				called = true
				if got := Token(c); got != tt.want {
					t.Fatalf("token = %q, want %q", got, tt.want)
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatalf("next not called")
			}
		})
	}
}

func TestToken_NotSet(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := Token(c); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
