package movie

import (
	"movieapi/errs"
	"movieapi/pagination"
	"regexp"
	"strconv"
	"strings"
)

const (
	MinReleaseYear = 1800
	MaxReleaseYear = 2100
)

var GenrePattern = regexp.MustCompile(`^[a-zA-Z\s-]+$`)

var (
	ErrMovieNotFound = errs.Errorf(errs.ENOTFOUND, "Movie not found")
	ErrInvalidTitle  = errs.Errorf(errs.EINVALID, "Title cannot be empty")
	ErrInvalidYear   = errs.Errorf(errs.EINVALID, "Release year must be between %d and %d", MinReleaseYear, MaxReleaseYear)
	ErrInvalidGenre  = errs.Errorf(errs.EINVALID, "Genre must contain only letters, spaces, or hyphens")
)

type Movie struct {
	ID          string
	Title       string
	ReleaseYear int
	Genre       string
	Description string
}

func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrInvalidTitle
	}

	if m.ReleaseYear < MinReleaseYear || m.ReleaseYear > MaxReleaseYear {
		return ErrInvalidYear
	}

	if !GenrePattern.MatchString(m.Genre) {
		return ErrInvalidGenre
	}

	return nil
}

// Filter is the storage-neutral movie predicate. Genre is a case-insensitive
// substring match; Year, when set, is an exact match on the release year.
type Filter struct {
	Genre string
	Year  *int
}

type Query struct {
	Genre  string
	Year   *int
	Window pagination.Window
}

// ParseQuery builds a typed list query from raw query values. A year that is
// not an integer is dropped.
func ParseQuery(genre, year, page, limit string) Query {
	q := Query{
		Genre:  strings.TrimSpace(genre),
		Window: pagination.ParseWindow(page, limit),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
		q.Year = &y
	}
	return q
}

func (q Query) Filter() Filter {
	return Filter{Genre: q.Genre, Year: q.Year}
}

func (q Query) PageWindow() pagination.Window {
	return q.Window
}
