package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/upgrad/stackoverflow/internal/api/metrics"
	"github.com/upgrad/stackoverflow/internal/api/middleware"
	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/ports"
)

// HeaderAccessToken carries the session token on a successful signin.
const HeaderAccessToken = "access-token"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	FirstName     string `json:"firstName" validate:"required,max=30"`
	LastName      string `json:"lastName" validate:"required,max=30"`
	UserName      string `json:"userName" validate:"required,max=30"`
	EmailAddress  string `json:"emailAddress" validate:"required,email,max=50"`
	Password      string `json:"password" validate:"required,min=1"`
	Country       string `json:"country" validate:"max=30"`
	AboutMe       string `json:"aboutMe" validate:"max=50"`
	DOB           string `json:"dob" validate:"max=30"`
	ContactNumber string `json:"contactNumber" validate:"max=30"`
}

type signupResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type sessionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Signup registers a new user.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      201   {object}  signupResponse
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /user/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), domain.SignupCandidate{
		Username: req.UserName,
		Email:    req.EmailAddress,
		Password: req.Password,
		Profile: domain.Profile{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Country:       req.Country,
			AboutMe:       req.AboutMe,
			DOB:           req.DOB,
			ContactNumber: req.ContactNumber,
		},
	})
	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			result = "duplicate"
		}
		metrics.SignupsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, signupResponse{ID: user.ID, Status: "USER SUCCESSFULLY REGISTERED"})
}

// Signin opens a session from Basic credentials.
//
// @Summary      Sign in
// @Tags         user
// @Produce      json
// @Param        Authorization  header    string  true  "Basic base64(username:password)"
// @Success      200            {object}  sessionResponse
// @Header       200            {string}  access-token  "Session token"
// @Failure      401            {object}  map[string]string
// @Router       /user/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must carry Basic credentials")
	}

	session, err := h.authService.Signin(c.Request().Context(), username, password)
	if err != nil {
		result := "error"
		switch {
		case errors.Is(err, domain.ErrUnknownUser):
			result = "unknown_user"
		case errors.Is(err, domain.ErrBadCredentials):
			result = "bad_credentials"
		}
		metrics.SigninsTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.SigninsTotal.WithLabelValues("success").Inc()
	c.Response().Header().Set(HeaderAccessToken, session.AccessToken)
	return c.JSON(http.StatusOK, sessionResponse{ID: session.UserID, Message: "Signed In Successfully"})
}

// Signout closes the session behind the Authorization token.
//
// @Summary      Sign out
// @Tags         user
// @Produce      json
// @Param        Authorization  header    string  true  "Access token"
// @Success      200            {object}  sessionResponse
// @Failure      401            {object}  map[string]string
// @Router       /user/signout [post]
func (h *AuthHandler) Signout(c echo.Context) error {
	session, err := h.authService.Signout(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return err
	}

	metrics.SignoutsTotal.Inc()
	return c.JSON(http.StatusOK, sessionResponse{ID: session.UserID, Message: "SIGNED OUT SUCCESSFULLY"})
}
