// @title        Q&A API
// @version      1.0
// @description  User accounts, sessions and answer management for the Q&A service.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/upgrad/stackoverflow/internal/api"
	"github.com/upgrad/stackoverflow/internal/api/handler"
	"github.com/upgrad/stackoverflow/internal/core/domain"
	"github.com/upgrad/stackoverflow/internal/core/ports"
	"github.com/upgrad/stackoverflow/internal/core/service"
	"github.com/upgrad/stackoverflow/internal/infrastructure/crypto"
	mongostore "github.com/upgrad/stackoverflow/internal/infrastructure/db/mongo"
	redisstore "github.com/upgrad/stackoverflow/internal/infrastructure/db/redis"
	"github.com/upgrad/stackoverflow/internal/infrastructure/db/sqlite"
	"github.com/upgrad/stackoverflow/internal/infrastructure/token"
	"github.com/upgrad/stackoverflow/internal/pkg/config"
	"github.com/upgrad/stackoverflow/pkg/logger"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	GitCommit = "unknown"
)

const shutdownTimeout = 15 * time.Second

// repositories is the storage a backend provides.
type repositories struct {
	users     ports.UserRepository
	sessions  ports.SessionRepository
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	readiness map[string]handler.Pinger
	closers   []func(context.Context) error
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()
	if *showVersion {
		fmt.Printf("Q&A API %s (%s)\n", Version, GitCommit)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "stackoverflow-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repos.close(); err != nil {
			log.Warn().Err(err).Msg("close storage")
		}
	}()

	auth := service.NewAuthService(
		repos.users,
		repos.sessions,
		crypto.NewArgon2Hasher(),
		token.NewJWTCodec(cfg.JWTSecret),
		cfg.SessionTTL,
		logger.Component("auth"),
	)
	if cfg.Admin.Username != "" {
		if _, err := auth.EnsureAdmin(ctx, domain.SignupCandidate{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		}); err != nil {
			return fmt.Errorf("provision admin: %w", err)
		}
	}

	guard := service.NewGuard(auth, logger.Component("guard"))
	questions := service.NewQuestionService(guard, repos.questions, logger.Component("questions"))

	e := api.NewRouter(api.Services{
		Auth:      auth,
		Questions: questions,
		Answers:   service.NewAnswerService(guard, repos.questions, repos.answers, logger.Component("answers")),
		Admin:     service.NewAdminService(guard, repos.users, logger.Component("admin")),
		Guard:     guard,
	}, api.RouterConfig{
		Log:       logger.Component("http"),
		Readiness: repos.readiness,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreBackend).
			Str("sessions", cfg.SessionBackend).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// close releases every opened backend, last opened first.
func (r *repositories) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// openRepositories connects the configured backends. Anything already opened is
// closed again when a later backend fails.
func openRepositories(ctx context.Context, cfg *config.Config) (_ *repositories, err error) {
	repos := &repositories{readiness: map[string]handler.Pinger{}}
	defer func() {
		if err != nil {
			_ = repos.close()
		}
	}()

	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		repos.users = mongostore.NewUserRepository(db)
		repos.sessions = mongostore.NewSessionRepository(db)
		repos.questions = mongostore.NewQuestionRepository(db)
		repos.answers = mongostore.NewAnswerRepository(db)
		repos.readiness["mongodb"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})
		repos.closers = append(repos.closers, client.Disconnect)

	case config.StoreSQLite:
		st, err := sqlite.New(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		repos.users = st.Users()
		repos.sessions = st.Sessions()
		repos.questions = st.Questions()
		repos.answers = st.Answers()
		repos.readiness["sqlite"] = st
		repos.closers = append(repos.closers, func(context.Context) error { return st.Close() })
	}

	if cfg.SessionBackend == config.SessionsInRedis {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Timeout:  cfg.Redis.Timeout,
		})
		if err != nil {
			return nil, err
		}
		store := redisstore.NewSessionStore(rdb)
		repos.sessions = store
		repos.readiness["redis"] = store
		repos.closers = append(repos.closers, store.Close)
	}

	return repos, nil
}
