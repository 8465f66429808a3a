package httpserver

import (
	"movieapi/actor"
	"movieapi/movie"
	"movieapi/pagination"
	"movieapi/pkg/metrics"
	"movieapi/rating"
	"movieapi/user"
	"net/http"

	"github.com/labstack/echo/v4"
)

type selfLink struct {
	Self string `json:"self"`
}

type ListResponse[T any] struct {
	Data  []T      `json:"data"`
	Total int64    `json:"total"`
	Page  int      `json:"page"`
	Pages int      `json:"pages"`
	Links selfLink `json:"links"`
}

type ItemResponse[T any] struct {
	Data  T        `json:"data"`
	Links selfLink `json:"links"`
}

type movieLinks struct {
	Self    string `json:"self"`
	Ratings string `json:"ratings"`
}

type MovieResource struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	ReleaseYear int        `json:"release_year"`
	Genre       string     `json:"genre"`
	Description string     `json:"description"`
	Links       movieLinks `json:"links"`
}

type ActorResource struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Movies []string `json:"movies"`
}

type RatingResource struct {
	ID     string  `json:"id"`
	Rating float64 `json:"rating"`
	Movie  string  `json:"movie"`
}

type UserResource struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func moviePath(id string) string {
	return "/movies/" + id
}

func projectMovie(m movie.Movie) MovieResource {
	return MovieResource{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Description: m.Description,
		Links: movieLinks{
			Self:    moviePath(m.ID),
			Ratings: moviePath(m.ID) + "/ratings",
		},
	}
}

func projectActor(a actor.Actor) ActorResource {
	movies := make([]string, len(a.MoviesPlayed))
	for i, id := range a.MoviesPlayed {
		movies[i] = moviePath(id)
	}
	return ActorResource{
		ID:     a.ID,
		Name:   a.Name,
		Movies: movies,
	}
}

func projectRating(r rating.Rating) RatingResource {
	return RatingResource{
		ID:     r.ID,
		Rating: r.Rating,
		Movie:  moviePath(r.MovieID),
	}
}

// projectUser never exposes the password hash.
func projectUser(u user.User) UserResource {
	return UserResource{
		ID:    u.ID,
		Email: u.Email,
	}
}

// writePage projects a page and writes the list envelope. The self link is the
// request URI as received.
func writePage[T, R any](c echo.Context, resource string, page pagination.Page[T], project func(T) R) error {
	metrics.CatalogListTotal.WithLabelValues(resource).Inc()

	projected := pagination.Map(page, project)
	return c.JSON(http.StatusOK, ListResponse[R]{
		Data:  projected.Items,
		Total: projected.Total,
		Page:  projected.Page,
		Pages: projected.Pages,
		Links: selfLink{Self: requestURI(c)},
	})
}

func writeItem[R any](c echo.Context, status int, self string, data R) error {
	return c.JSON(status, ItemResponse[R]{
		Data:  data,
		Links: selfLink{Self: self},
	})
}

func requestURI(c echo.Context) string {
	if uri := c.Request().RequestURI; uri != "" {
		return uri
	}
	return c.Request().URL.RequestURI()
}
