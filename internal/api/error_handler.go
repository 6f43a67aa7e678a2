package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/api/metrics"
	"github.com/upgrad/stackoverflow/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps *domain.Error values to their HTTP status, keeping code and message.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"code": "...", "message": "..."}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		metrics.ErrorResponsesTotal.WithLabelValues(body.Code, strconv.Itoa(status)).Inc()
		_ = c.JSON(status, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	var de *domain.Error
	if errors.As(err, &de) {
		return statusFor(de.Kind), errorResponse{Code: de.Code, Message: de.Message}
	}

	// Echo's own errors (bind failures, 404 from router, validation, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{
			Code:    "HTTP-" + strconv.Itoa(he.Code),
			Message: fmt.Sprintf("%v", he.Message),
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{
		Code:    "GEN-001",
		Message: "internal server error",
	}
}

// statusFor maps an error kind to its HTTP status. Signup and signout share
// SGR- codes, so the kind decides, not the code.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindDuplicateUsername, domain.KindDuplicateEmail:
		return http.StatusConflict
	case domain.KindUnknownUser,
		domain.KindBadCredentials,
		domain.KindMissingToken,
		domain.KindInvalidToken,
		domain.KindAlreadySignedOut,
		domain.KindNotSignedIn,
		domain.KindSignedOut,
		domain.KindSessionExpired:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUserNotFound, domain.KindAnswerNotFound, domain.KindInvalidQuestion:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
