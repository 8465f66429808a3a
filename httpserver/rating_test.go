package httpserver_test

import (
	"movieapi/httpserver"
	"movieapi/movie"
	"movieapi/rating"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ratingList = httpserver.ListResponse[httpserver.RatingResource]

func newRatingServer() (*httpserver.Server, *MockMovieService, *MockRatingService) {
	movies := new(MockMovieService)
	ratings := new(MockRatingService)
	server := httpserver.Default(testConfig())
	server.MovieService = movies
	server.RatingService = ratings
	return server, movies, ratings
}

func TestRatingRoutes_List(t *testing.T) {
	// Arrange
	server, _, ratings := newRatingServer()
	ratings.On("List", mock.Anything, rating.ParseQuery("2", "1")).
		Return(pageOf([]rating.Rating{{ID: "r-2", Rating: 3.5, MovieID: "m-1"}}, 3, 2, 1), nil).Once()

	// Act
	rec := makeRequest(server, http.MethodGet, "/ratings?page=2&limit=1", nil)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[ratingList](t, rec)
	assert.Equal(t, int64(3), resp.Total)
	assert.Equal(t, 3, resp.Pages)
	assert.Equal(t, "/ratings?page=2&limit=1", resp.Links.Self)
	assert.Equal(t, []httpserver.RatingResource{{ID: "r-2", Rating: 3.5, Movie: "/movies/m-1"}}, resp.Data)
	ratings.AssertExpectations(t)
}

func TestRatingRoutes_ListByMovie(t *testing.T) {
	t.Run("lists ratings of the movie", func(t *testing.T) {
		server, movies, ratings := newRatingServer()
		movies.On("Get", mock.Anything, "m-1").Return(shawshank, nil).Once()
		ratings.On("ListByMovie", mock.Anything, "m-1", rating.ParseQuery("", "")).
			Return(pageOf([]rating.Rating{{ID: "r-1", Rating: 5, MovieID: "m-1"}}, 1, 1, 10), nil).Once()

		rec := makeRequest(server, http.MethodGet, "/movies/m-1/ratings", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[ratingList](t, rec)
		assert.Equal(t, 1, resp.Pages)
		assert.Equal(t, "/movies/m-1/ratings", resp.Links.Self)
		ratings.AssertExpectations(t)
	})

	t.Run("unknown movie returns 404", func(t *testing.T) {
		server, movies, ratings := newRatingServer()
		movies.On("Get", mock.Anything, "nope").Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := makeRequest(server, http.MethodGet, "/movies/nope/ratings", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		ratings.AssertNotCalled(t, "ListByMovie", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRatingRoutes_Create(t *testing.T) {
	t.Run("rates an existing movie", func(t *testing.T) {
		// Arrange
		server, movies, ratings := newRatingServer()
		movies.On("Get", mock.Anything, "m-1").Return(shawshank, nil).Once()
		ratings.On("Create", mock.Anything, rating.Rating{Rating: 0, MovieID: "m-1"}).
			Return(rating.Rating{ID: "r-9", Rating: 0, MovieID: "m-1"}, nil).Once()

		// Act
		rec := makeJSONRequest(server, http.MethodPost, "/movies/m-1/ratings",
			map[string]interface{}{"rating": 0}, bearer(signTestToken(t)))

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeBody[httpserver.ItemResponse[httpserver.RatingResource]](t, rec)
		assert.Equal(t, httpserver.RatingResource{ID: "r-9", Rating: 0, Movie: "/movies/m-1"}, resp.Data)
		assert.Equal(t, "/movies/m-1/ratings", resp.Links.Self)
		ratings.AssertExpectations(t)
	})

	tests := []struct {
		name     string
		body     map[string]interface{}
		expected string
	}{
		{name: "missing rating", body: map[string]interface{}{}, expected: "rating is required"},
		{name: "rating above 5", body: map[string]interface{}{"rating": 7}, expected: "rating must be at most 5"},
		{name: "negative rating", body: map[string]interface{}{"rating": -1}, expected: "rating must be at least 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, movies, ratings := newRatingServer()
			movies.On("Get", mock.Anything, "m-1").Return(shawshank, nil).Once()

			rec := makeJSONRequest(server, http.MethodPost, "/movies/m-1/ratings", tt.body, bearer(signTestToken(t)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, []string{tt.expected}, decodeError(t, rec).Errors)
			ratings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("requires a token", func(t *testing.T) {
		server, movies, _ := newRatingServer()

		rec := makeJSONRequest(server, http.MethodPost, "/movies/m-1/ratings", map[string]interface{}{"rating": 4}, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		movies.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
