package httpserver

import (
	"movieapi/errs"
	"movieapi/pkg/jwt"
	"strings"
	"sync"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const claimsContextKey = "user"

var (
	ErrMissingToken = errs.Errorf(errs.EUNAUTHORIZED, "Authorization header missing or malformed")
	ErrInvalidToken = errs.Errorf(errs.EFORBIDDEN, "Invalid or expired token")
	ErrAuthThrottle = errs.Errorf(errs.ETOOMANYREQUESTS, "Too many login/register attempts. Try again later.")
)

// requireAuth verifies the bearer token and stores its claims under
// claimsContextKey.
func (s *Server) requireAuth() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return s.Tokens.ParseAccessToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if !hasBearerToken(c) {
				return ErrMissingToken
			}
			return ErrInvalidToken
		},
	})
}

func hasBearerToken(c echo.Context) bool {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	return ok && strings.EqualFold(scheme, "Bearer") && strings.TrimSpace(token) != ""
}

func claimsFrom(c echo.Context) (*jwt.Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*jwt.Claims)
	return claims, ok
}

// authRateLimiter throttles /users per client IP to AuthRateLimit requests
// in each fixed AuthRateWindow.
func (s *Server) authRateLimiter() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: newFixedWindowStore(s.AuthRateLimit, s.AuthRateWindow, time.Now),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return ErrAuthThrottle
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return ErrAuthThrottle
		},
	})
}

// fixedWindowStore is a [middleware.RateLimiterStore] that grants limit
// requests per identifier, then nothing until the identifier's window, opened
// by its first request, ends. Each window holds a non-refilling limiter.
type fixedWindowStore struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	now       func() time.Time
	windows   map[string]*clientWindow
	nextSweep time.Time
}

type clientWindow struct {
	limiter *rate.Limiter
	endsAt  time.Time
}

func newFixedWindowStore(limit int, window time.Duration, now func() time.Time) *fixedWindowStore {
	return &fixedWindowStore{
		limit:   limit,
		window:  window,
		now:     now,
		windows: make(map[string]*clientWindow),
	}
}

func (s *fixedWindowStore) Allow(identifier string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !now.Before(s.nextSweep) {
		for id, w := range s.windows {
			if !now.Before(w.endsAt) {
				delete(s.windows, id)
			}
		}
		s.nextSweep = now.Add(s.window)
	}

	w, ok := s.windows[identifier]
	if !ok || !now.Before(w.endsAt) {
		w = &clientWindow{
			limiter: rate.NewLimiter(0, s.limit),
			endsAt:  now.Add(s.window),
		}
		s.windows[identifier] = w
	}
	return w.limiter.AllowN(now, 1), nil
}
