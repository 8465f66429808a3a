package auth

import (
	"context"
	"errors"
	"movieapi/errs"
	"movieapi/pkg/logger"
	"movieapi/user"
	"time"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errs.Errorf(errs.EUNAUTHORIZED, "Invalid email or password.")
	ErrAccountLocked      = errs.Errorf(errs.ETOOMANYREQUESTS, "Account temporarily locked. Try again later.")
)

const (
	DefaultMaxRetries   = 5
	DefaultJailDuration = 15 * time.Minute
)

type Service interface {
	Register(ctx context.Context, email, password string) (user.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	CreateUser(ctx context.Context, u user.User) (user.User, error)
}

type LoginAttempt struct {
	FailedCount int
	JailedUntil time.Time
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, email string) (LoginAttempt, error)
	Save(ctx context.Context, email string, attempt LoginAttempt) error
	Reset(ctx context.Context, email string) error
}

type PasswordHasher interface {
	Compare(hashed, plain string) error
	Hash(password string) (string, error)
}

type TokenProvider interface {
	GenerateAccessToken(u user.User) (string, error)
}

type Usecase struct {
	userRepo       UserRepository
	attemptsRepo   LoginAttemptRepository
	passwordHasher PasswordHasher
	tokenProvider  TokenProvider
	maxRetries     int
	jailDuration   time.Duration
	now            func() time.Time
	log            *zap.SugaredLogger
}

func NewUsecase(
	userRepo UserRepository,
	attemptsRepo LoginAttemptRepository,
	passwordHasher PasswordHasher,
	tokenProvider TokenProvider,
) *Usecase {
	return &Usecase{
		userRepo:       userRepo,
		attemptsRepo:   attemptsRepo,
		passwordHasher: passwordHasher,
		tokenProvider:  tokenProvider,
		maxRetries:     DefaultMaxRetries,
		jailDuration:   DefaultJailDuration,
		now: func() time.Time {
			return time.Now().UTC()
		},
		log: logger.NOOPLogger,
	}
}

// WithLockout overrides how many consecutive failures jail an email and for how long.
func (uc *Usecase) WithLockout(maxRetries int, jailDuration time.Duration) *Usecase {
	if maxRetries > 0 {
		uc.maxRetries = maxRetries
	}
	if jailDuration > 0 {
		uc.jailDuration = jailDuration
	}
	return uc
}

func (uc *Usecase) WithLogger(log *zap.SugaredLogger) *Usecase {
	uc.log = log.With("usecase", "auth")
	return uc
}

// WithClock replaces the time source, for tests.
func (uc *Usecase) WithClock(now func() time.Time) *Usecase {
	uc.now = now
	return uc
}

// Register creates an account. The returned user carries no password hash.
func (uc *Usecase) Register(ctx context.Context, email, password string) (user.User, error) {
	email = user.NormalizeEmail(email)
	if err := user.ValidateEmail(email); err != nil {
		return user.User{}, err
	}
	if err := user.ValidatePassword(password); err != nil {
		return user.User{}, err
	}

	_, err := uc.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return user.User{}, user.ErrEmailAlreadyExists
	case !errors.Is(err, user.ErrUserNotFound):
		return user.User{}, err
	}

	hashed, err := uc.passwordHasher.Hash(password)
	if err != nil {
		return user.User{}, err
	}

	created, err := uc.userRepo.CreateUser(ctx, user.User{
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		return user.User{}, err
	}

	uc.log.Infow("user registered", "user_id", created.ID)
	created.PasswordHash = ""
	return created, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// wrong passwords fail with the same ErrInvalidCredentials.
func (uc *Usecase) Login(ctx context.Context, email, password string) (string, error) {
	email = user.NormalizeEmail(email)

	attempt, err := uc.attemptsRepo.Get(ctx, email)
	if err != nil {
		return "", err
	}

	if !attempt.JailedUntil.IsZero() {
		if attempt.JailedUntil.After(uc.now()) {
			return "", ErrAccountLocked
		}
		attempt.JailedUntil = time.Time{}
		attempt.FailedCount = 0
		if err := uc.attemptsRepo.Save(ctx, email, attempt); err != nil {
			return "", err
		}
	}

	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return "", err
		}
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return "", err
		}
		return "", ErrInvalidCredentials
	}

	if err := uc.passwordHasher.Compare(u.PasswordHash, password); err != nil {
		if err := uc.recordFailure(ctx, email, attempt); err != nil {
			return "", err
		}
		return "", ErrInvalidCredentials
	}

	if err := uc.attemptsRepo.Reset(ctx, email); err != nil {
		return "", err
	}

	return uc.tokenProvider.GenerateAccessToken(u)
}

func (uc *Usecase) recordFailure(ctx context.Context, email string, attempt LoginAttempt) error {
	attempt.FailedCount++
	if attempt.FailedCount >= uc.maxRetries {
		attempt.FailedCount = 0
		attempt.JailedUntil = uc.now().Add(uc.jailDuration)
		uc.log.Warnw("login jailed", "email", email, "until", attempt.JailedUntil)
	}
	return uc.attemptsRepo.Save(ctx, email, attempt)
}
