package user

import (
	"movieapi/errs"
	"regexp"
	"strings"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 256
)

var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

var (
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "Invalid email format")
	ErrInvalidPassword    = errs.Errorf(errs.EINVALID, "Password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "Email is already registered.")
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "User not found")
	ErrUserIDRequired     = errs.Errorf(errs.EINVALID, "user id is required")
)

// User is an account. PasswordHash is never exposed outside the store and
// the auth use case.
type User struct {
	ID           string
	Email        string
	PasswordHash string
}

// NormalizeEmail trims and lowercases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func ValidatePassword(password string) error {
	if n := len(password); n < MinPasswordLength || n > MaxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
