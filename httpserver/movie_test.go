// nolint: funlen
package httpserver_test

import (
	"errors"
	"movieapi/httpserver"
	"movieapi/movie"
	"movieapi/pagination"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type movieList = httpserver.ListResponse[httpserver.MovieResource]
type movieItem = httpserver.ItemResponse[httpserver.MovieResource]

func newMovieServer() (*httpserver.Server, *MockMovieService) {
	svc := new(MockMovieService)
	server := httpserver.Default(testConfig())
	server.MovieService = svc
	return server, svc
}

var shawshank = movie.Movie{
	ID:          "m-1",
	Title:       "The Shawshank Redemption",
	ReleaseYear: 1994,
	Genre:       "Drama",
	Description: "Two imprisoned men bond over a number of years.",
}

func TestMovieRoutes_List(t *testing.T) {
	t.Run("projects movies with links and page metadata", func(t *testing.T) {
		// Arrange
		server, svc := newMovieServer()
		q := movie.ParseQuery("drama", "1994", "2", "5")
		svc.On("List", mock.Anything, q).Return(pageOf([]movie.Movie{shawshank}, 6, 2, 5), nil).Once()

		// Act
		rec := makeRequest(server, http.MethodGet, "/movies?genre=drama&year=1994&page=2&limit=5", nil)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[movieList](t, rec)
		assert.Equal(t, int64(6), resp.Total)
		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 2, resp.Pages)
		assert.Equal(t, "/movies?genre=drama&year=1994&page=2&limit=5", resp.Links.Self)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "m-1", resp.Data[0].ID)
		assert.Equal(t, 1994, resp.Data[0].ReleaseYear)
		assert.Equal(t, "/movies/m-1", resp.Data[0].Links.Self)
		assert.Equal(t, "/movies/m-1/ratings", resp.Data[0].Links.Ratings)
		svc.AssertExpectations(t)
	})

	t.Run("empty result keeps an empty data array", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("List", mock.Anything, mock.Anything).Return(pageOf([]movie.Movie{}, 0, 1, 10), nil).Once()

		rec := makeRequest(server, http.MethodGet, "/movies", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
		assert.Contains(t, rec.Body.String(), `"pages":0`)
	})

	t.Run("caps limit at 100", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("List", mock.Anything, mock.MatchedBy(func(q movie.Query) bool {
			return q.Window.Limit == 100 && q.Window.Page == 1
		})).Return(pageOf([]movie.Movie{}, 0, 1, 100), nil).Once()

		rec := makeRequest(server, http.MethodGet, "/movies?limit=500", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("ignores a year that is not a number", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("List", mock.Anything, mock.MatchedBy(func(q movie.Query) bool {
			return q.Year == nil
		})).Return(pageOf([]movie.Movie{}, 0, 1, 10), nil).Once()

		rec := makeRequest(server, http.MethodGet, "/movies?year=abcd&page=x", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("store failure returns 500", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("List", mock.Anything, mock.Anything).Return(pagination.Page[movie.Movie]{}, errors.New("connection reset")).Once()

		rec := makeRequest(server, http.MethodGet, "/movies", nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeError(t, rec).Message)
	})
}

func TestMovieRoutes_List_Validation(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "year below range", query: "year=1500", expected: "year must be between 1800 and 2100"},
		{name: "year above range", query: "year=2200", expected: "year must be between 1800 and 2100"},
		{name: "genre with digits", query: "genre=Sci-Fi2", expected: "genre must contain only letters, spaces, or hyphens"},
		{name: "zero page", query: "page=0", expected: "page must be a positive integer"},
		{name: "page whose offset overflows", query: "page=9223372036854775807", expected: "page must be at most 92233720368547758"},
		{name: "negative limit", query: "limit=-3", expected: "limit must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			server, svc := newMovieServer()

			// Act
			rec := makeRequest(server, http.MethodGet, "/movies?"+tt.query, nil)

			// Assert
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, "Validation failed", resp.Message)
			assert.Equal(t, []string{tt.expected}, resp.Errors)
			svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
		})
	}
}

func TestMovieRoutes_Get(t *testing.T) {
	t.Run("returns the movie with its self link", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("Get", mock.Anything, "m-1").Return(shawshank, nil).Once()

		rec := makeRequest(server, http.MethodGet, "/movies/m-1", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[movieItem](t, rec)
		assert.Equal(t, "The Shawshank Redemption", resp.Data.Title)
		assert.Equal(t, "/movies/m-1", resp.Links.Self)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("Get", mock.Anything, "nope").Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := makeRequest(server, http.MethodGet, "/movies/nope", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Movie not found", decodeError(t, rec).Message)
	})
}

func TestMovieRoutes_Create(t *testing.T) {
	payload := map[string]interface{}{
		"title":        "The Shawshank Redemption",
		"release_year": 1994,
		"genre":        "Drama",
		"description":  "Two imprisoned men bond over a number of years.",
	}

	t.Run("creates a movie", func(t *testing.T) {
		// Arrange
		server, svc := newMovieServer()
		input := shawshank
		input.ID = ""
		svc.On("Create", mock.Anything, input).Return(shawshank, nil).Once()

		// Act
		rec := makeJSONRequest(server, http.MethodPost, "/movies", payload, bearer(signTestToken(t)))

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeBody[movieItem](t, rec)
		assert.Equal(t, "m-1", resp.Data.ID)
		assert.Equal(t, "/movies/m-1", resp.Links.Self)
		svc.AssertExpectations(t)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		server, svc := newMovieServer()

		rec := makeJSONRequest(server, http.MethodPost, "/movies", payload, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Authorization header missing or malformed", decodeError(t, rec).Message)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("invalid token returns 403", func(t *testing.T) {
		server, svc := newMovieServer()

		rec := makeJSONRequest(server, http.MethodPost, "/movies", payload, bearer("not-a-jwt"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "Invalid or expired token", decodeError(t, rec).Message)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects an invalid body", func(t *testing.T) {
		server, svc := newMovieServer()
		body := map[string]interface{}{
			"title":        "  ",
			"release_year": 1500,
			"genre":        "Sci-Fi 2",
		}

		rec := makeJSONRequest(server, http.MethodPost, "/movies", body, bearer(signTestToken(t)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{
			"title is required",
			"release_year must be at least 1800",
			"genre must contain only letters, spaces, or hyphens",
		}, decodeError(t, rec).Errors)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestMovieRoutes_Update(t *testing.T) {
	server, svc := newMovieServer()
	updated := shawshank
	updated.Genre = "Crime"
	input := updated
	input.ID = ""
	svc.On("Get", mock.Anything, "m-1").Return(shawshank, nil).Once()
	svc.On("Update", mock.Anything, "m-1", input).Return(updated, nil).Once()

	rec := makeJSONRequest(server, http.MethodPut, "/movies/m-1", map[string]interface{}{
		"title":        updated.Title,
		"release_year": updated.ReleaseYear,
		"genre":        "Crime",
		"description":  updated.Description,
	}, bearer(signTestToken(t)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Crime", decodeBody[movieItem](t, rec).Data.Genre)
	svc.AssertExpectations(t)
}

func TestMovieRoutes_Delete(t *testing.T) {
	t.Run("deletes an existing movie", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("Get", mock.Anything, "m-1").Return(shawshank, nil).Once()
		svc.On("Delete", mock.Anything, "m-1").Return(true, nil).Once()

		rec := makeRequest(server, http.MethodDelete, "/movies/m-1", bearer(signTestToken(t)))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("Get", mock.Anything, "nope").Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := makeRequest(server, http.MethodDelete, "/movies/nope", bearer(signTestToken(t)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("movie removed between lookup and delete returns 404", func(t *testing.T) {
		server, svc := newMovieServer()
		svc.On("Get", mock.Anything, "m-1").Return(shawshank, nil).Once()
		svc.On("Delete", mock.Anything, "m-1").Return(false, nil).Once()

		rec := makeRequest(server, http.MethodDelete, "/movies/m-1", bearer(signTestToken(t)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("authentication is checked before the lookup", func(t *testing.T) {
		server, svc := newMovieServer()

		rec := makeRequest(server, http.MethodDelete, "/movies/nope", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
