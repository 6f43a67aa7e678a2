package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// TokenKey is the echo context key holding the caller's access token.
const TokenKey = "access_token"

// AccessToken reads the Authorization header and stores the token under
// TokenKey. Both "Bearer <token>" and a bare token are accepted. A missing
// header stores "" and the request continues: the service decides which
// failure applies.
func AccessToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(TokenKey, extractToken(c.Request().Header.Get(echo.HeaderAuthorization)))
			return next(c)
		}
	}
}

// Token returns the token stored by AccessToken, or "".
func Token(c echo.Context) string {
	tok, _ := c.Get(TokenKey).(string)
	return tok
}

func extractToken(header string) string {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}
