package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/service"
)

// Authorizer runs the authorization predicate for an action.
type Authorizer interface {
	Principal(ctx context.Context, token string, act service.Action) (*domain.User, error)
}

// Authorize rejects the request before the handler reads its body when the
// token stored by AccessToken does not pass the predicate for act. The service
// still performs its own checks.
func Authorize(auth Authorizer, act service.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := auth.Principal(c.Request().Context(), Token(c), act); err != nil {
				return err
			}
			return next(c)
		}
	}
}
