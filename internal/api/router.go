package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/upgrad/stackoverflow/docs" // swagger docs
	"github.com/upgrad/stackoverflow/internal/api/handler"
	"github.com/upgrad/stackoverflow/internal/api/middleware"
	"github.com/upgrad/stackoverflow/internal/core/ports"
	"github.com/upgrad/stackoverflow/internal/core/service"
)

// Services are the core use cases the router exposes.
type Services struct {
	Auth      ports.AuthService
	Questions ports.QuestionService
	Answers   ports.AnswerService
	Admin     ports.AdminService
	// Guard authorizes routes that carry a body before it is validated.
	Guard middleware.Authorizer
}

// RouterConfig carries everything NewRouter needs besides the services.
type RouterConfig struct {
	Log zerolog.Logger
	// Readiness lists the dependencies GET /health/ready pings.
	Readiness map[string]handler.Pinger
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, cfg RouterConfig) *echo.Echo {
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(cfg.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "stackoverflow",
		Registerer: cfg.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	questionHandler := handler.NewQuestionHandler(svc.Questions)
	answerHandler := handler.NewAnswerHandler(svc.Answers, svc.Questions)
	adminHandler := handler.NewAdminHandler(svc.Admin)
	token := middleware.AccessToken()

	// --- User routes ---
	e.POST("/user/signup", authHandler.Signup)
	e.POST("/user/signin", authHandler.Signin)
	e.POST("/user/signout", authHandler.Signout, token)

	// --- Q&A routes ---
	e.POST("/question/create", questionHandler.Create,
		token, middleware.Authorize(svc.Guard, service.ActionCreateQuestion))
	e.POST("/question/:questionId/answer/create", answerHandler.Create,
		token, middleware.Authorize(svc.Guard, service.ActionCreateAnswer))
	e.PUT("/answer/edit/:answerId", answerHandler.Edit,
		token, middleware.Authorize(svc.Guard, service.ActionEditAnswer))
	e.DELETE("/answer/delete/:answerId", answerHandler.Delete, token)
	e.GET("/answer/all/:questionId", answerHandler.List, token)

	// --- Admin routes ---
	e.DELETE("/admin/user/:userId", adminHandler.DeleteUser, token)

	// --- Health checks (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: cfg.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
