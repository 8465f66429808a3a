package httpserver

import (
	"movieapi/errs"
	"movieapi/movie"
	"net/http"

	"github.com/labstack/echo/v4"
)

const movieContextKey = "movie"

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	auth := s.requireAuth()

	g.GET("", s.handleListMovies)
	g.POST("", s.handleCreateMovie, auth)
	g.GET("/:id", s.handleGetMovie, s.loadMovie)
	g.PUT("/:id", s.handleUpdateMovie, auth, s.loadMovie)
	g.DELETE("/:id", s.handleDeleteMovie, auth, s.loadMovie)
	g.GET("/:id/ratings", s.handleListMovieRatings, s.loadMovie)
	g.POST("/:id/ratings", s.handleCreateMovieRating, auth, s.loadMovie)
}

// loadMovie resolves :id to a movie and stores it on the context. Unknown
// ids stop the chain with 404.
func (s *Server) loadMovie(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.MovieService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
		}

		m, err := s.MovieService.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			return err
		}
		c.Set(movieContextKey, m)
		return next(c)
	}
}

func movieFrom(c echo.Context) movie.Movie {
	m, _ := c.Get(movieContextKey).(movie.Movie)
	return m
}

// handleListMovies godoc
// @Summary List Movies
// @Description Paginated movies, optionally filtered by genre substring and release year
// @Tags movies
// @Produce json
// @Param genre query string false "Case-insensitive genre substring"
// @Param year query int false "Exact release year"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} ListResponse[MovieResource]
// @Failure 400 {object} errorResponse
// @Router /movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var q MovieListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	page, err := s.MovieService.List(c.Request().Context(), q.ToQuery())
	if err != nil {
		return err
	}
	return writePage(c, "movies", page, projectMovie)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie id"
// @Success 200 {object} ItemResponse[MovieResource]
// @Failure 404 {object} errorResponse
// @Router /movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	m := movieFrom(c)
	return writeItem(c, http.StatusOK, moviePath(m.ID), projectMovie(m))
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body MovieRequest true "Movie"
// @Success 201 {object} ItemResponse[MovieResource]
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.MovieService.Create(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}
	return writeItem(c, http.StatusCreated, moviePath(created.ID), projectMovie(created))
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie id"
// @Param movie body MovieRequest true "Movie"
// @Success 200 {object} ItemResponse[MovieResource]
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	var req MovieRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := s.MovieService.Update(c.Request().Context(), movieFrom(c).ID, req.ToMovie())
	if err != nil {
		return err
	}
	return writeItem(c, http.StatusOK, moviePath(updated.ID), projectMovie(updated))
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Security BearerAuth
// @Param id path string true "Movie id"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	deleted, err := s.MovieService.Delete(c.Request().Context(), movieFrom(c).ID)
	if err != nil {
		return err
	}
	if !deleted {
		return movie.ErrMovieNotFound
	}
	return c.NoContent(http.StatusNoContent)
}

func bindQuery(c echo.Context, q interface{}) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, q); err != nil {
		return err
	}
	return c.Validate(q)
}
