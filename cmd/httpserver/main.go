package main

import (
	"context"
	"errors"
	"fmt"
	"movieapi/actor"
	"movieapi/auth"
	"movieapi/httpserver"
	"movieapi/movie"
	"movieapi/pkg/config"
	"movieapi/pkg/hasher"
	"movieapi/pkg/jwt"
	"movieapi/pkg/logger"
	"movieapi/pkg/sentry"
	"movieapi/rating"
	"movieapi/user"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err == nil {
		err = cfg.ValidateServer()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Fatalw("Cannot init sentry", "error", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatalw("Cannot open store", "driver", cfg.DB.Driver, "error", err)
	}
	defer func() {
		if err := repos.close(context.Background()); err != nil {
			log.Errorw("close store", "error", err)
		}
	}()

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
	)
	if err != nil {
		log.Fatalw("Cannot create server", "error", err)
	}

	server.MovieService = movie.NewUsecase(repos.movies).WithLogger(log)
	server.ActorService = actor.NewUsecase(repos.actors).WithLogger(log)
	server.RatingService = rating.NewUsecase(repos.ratings).WithLogger(log)
	server.UserService = user.NewUsecase(repos.users)
	server.AuthService = auth.NewUsecase(
		repos.users,
		repos.attempts,
		hasher.NewBcrypt(),
		jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	).WithLockout(cfg.Auth.MaxLoginRetries, cfg.Auth.LockDuration).WithLogger(log)

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started!", "addr", server.Addr, "driver", cfg.DB.Driver)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
		}
	case <-ctx.Done():
		log.Infow("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Errorw("graceful shutdown failed", "error", err)
		}
	}
}
