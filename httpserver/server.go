package httpserver

import (
	"context"
	"movieapi/actor"
	"movieapi/auth"
	"movieapi/movie"
	"movieapi/pkg/config"
	"movieapi/pkg/jwt"
	"movieapi/pkg/logger"
	"movieapi/pkg/metrics"
	"movieapi/rating"
	"movieapi/user"
	"net/http"
	"time"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const (
	defaultAuthRateLimit  = 5
	defaultAuthRateWindow = 15 * time.Minute
)

// TokenParser verifies bearer tokens for protected routes.
type TokenParser interface {
	ParseAccessToken(token string) (*jwt.Claims, error)
}

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// Production hides internal error detail from responses
	Production bool

	Logger *zap.SugaredLogger

	Tokens TokenParser

	// AuthRateLimit requests per AuthRateWindow are allowed on /users per client IP
	AuthRateLimit  int
	AuthRateWindow time.Duration

	MovieService  movie.Service
	ActorService  actor.Service
	RatingService rating.Service
	AuthService   auth.Service
	UserService   user.Service
}

func New(options ...Options) (*Server, error) {
	s := Server{
		Router:         echo.New(),
		Addr:           ":3000",
		AllowOrigins:   []string{"*"},
		Logger:         logger.NOOPLogger,
		Tokens:         jwt.NewJWTProvider("", time.Hour),
		AuthRateLimit:  defaultAuthRateLimit,
		AuthRateWindow: defaultAuthRateWindow,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}

	s.Router.HideBanner = true
	s.Router.HidePort = true
	s.Router.HTTPErrorHandler = s.handleHTTPError
	s.Router.Validator = NewValidator()
	s.Router.JSONSerializer = JSONSerializer{}

	s.RegisterGlobalMiddlewares()

	s.RegisterHomeRoutes()
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	s.RegisterSwaggerRoutes()
	s.RegisterMovieRoutes(s.Router.Group("/movies"))
	s.RegisterActorRoutes(s.Router.Group("/actors"))
	s.RegisterRatingRoutes(s.Router.Group("/ratings"))
	s.RegisterUserRoutes(s.Router.Group("/users", s.authRateLimiter()))

	return &s, nil
}

// Default builds a server from cfg and panics if cfg is nil.
func Default(cfg *config.Config) *Server {
	s, err := New(WithConfig(cfg))
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(metrics.Middleware())
	s.Router.Use(s.requestLogger())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Status >= http.StatusInternalServerError {
				s.Logger.Errorw("request failed", append(fields, "error", v.Error)...)
				return nil
			}
			s.Logger.Infow("request", fields...)
			return nil
		},
	})
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
