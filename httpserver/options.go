package httpserver

import (
	"errors"
	"fmt"
	"movieapi/pkg/config"
	"movieapi/pkg/jwt"
	"time"

	"go.uber.org/zap"
)

type Options func(s *Server) error

// WithConfig applies listen address, CORS origins, error verbosity and the
// auth settings from cfg.
func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		if cfg == nil {
			return errors.New("httpserver: nil config")
		}

		if cfg.Port > 0 {
			s.Addr = fmt.Sprintf(":%d", cfg.Port)
		}
		s.AllowOrigins = cfg.Origins()
		s.Production = cfg.IsProduction()
		s.Tokens = jwt.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

		if cfg.Auth.RateLimit > 0 {
			s.AuthRateLimit = cfg.Auth.RateLimit
		}
		if cfg.Auth.RateWindow > 0 {
			s.AuthRateWindow = cfg.Auth.RateWindow
		}
		return nil
	}
}

func WithLogger(log *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if log == nil {
			return errors.New("httpserver: nil logger")
		}
		s.Logger = log.With("component", "httpserver")
		return nil
	}
}

// WithAuthRateLimit overrides how many /users requests a client IP may make
// per window.
func WithAuthRateLimit(limit int, window time.Duration) Options {
	return func(s *Server) error {
		if limit <= 0 || window <= 0 {
			return fmt.Errorf("httpserver: invalid auth rate limit %d per %s", limit, window)
		}
		s.AuthRateLimit = limit
		s.AuthRateWindow = window
		return nil
	}
}
