package httpserver

import (
	"fmt"
	"movieapi/errs"
	"movieapi/movie"
	"movieapi/pagination"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("genre", validateGenre)
	_ = v.RegisterValidation("year", validateYear)
	_ = v.RegisterValidation("posint", validatePositiveInt)
	_ = v.RegisterValidation("maxpage", validateMaxPage)
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return errs.Invalid("Validation failed", formatValidationError(err)...)
	}
	return nil
}

func validateGenre(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return movie.GenrePattern.MatchString(fl.Field().String())
}

// validateYear rejects integers outside the release year range. Values that
// are not integers pass and are ignored by the movie filter.
func validateYear(fl validator.FieldLevel) bool {
	n, ok := parseInt(fl)
	return !ok || (n >= movie.MinReleaseYear && n <= movie.MaxReleaseYear)
}

// validatePositiveInt rejects integers below 1. Values that are not integers
// pass and fall back to the pagination defaults.
func validatePositiveInt(fl validator.FieldLevel) bool {
	n, ok := parseInt(fl)
	return !ok || n >= 1
}

// validateMaxPage rejects page numbers whose offset would not fit an int.
func validateMaxPage(fl validator.FieldLevel) bool {
	n, ok := parseInt(fl)
	return !ok || n <= pagination.MaxPage
}

func parseInt(fl validator.FieldLevel) (int, bool) {
	if fl.Field().Kind() != reflect.String {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
	return n, err == nil
}

func formatValidationError(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		details = append(details, fieldMessage(field, fe))
	}
	return details
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "genre":
		return field + " must contain only letters, spaces, or hyphens"
	case "year":
		return fmt.Sprintf("%s must be between %d and %d", field, movie.MinReleaseYear, movie.MaxReleaseYear)
	case "posint":
		return field + " must be a positive integer"
	case "maxpage":
		return fmt.Sprintf("%s must be at most %d", field, pagination.MaxPage)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	default:
		return field + " failed on " + fe.Tag()
	}
}
