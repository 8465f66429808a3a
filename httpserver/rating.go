package httpserver

import (
	"movieapi/errs"
	"movieapi/rating"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterRatingRoutes(g *echo.Group) {
	g.GET("", s.handleListRatings)
}

// handleListRatings godoc
// @Summary List Ratings
// @Tags ratings
// @Produce json
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} ListResponse[RatingResource]
// @Failure 400 {object} errorResponse
// @Router /ratings [get]
func (s *Server) handleListRatings(c echo.Context) error {
	if s.RatingService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "rating service not configured")
	}

	var q RatingListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	page, err := s.RatingService.List(c.Request().Context(), q.ToQuery())
	if err != nil {
		return err
	}
	return writePage(c, "ratings", page, projectRating)
}

// handleListMovieRatings godoc
// @Summary List Ratings of a Movie
// @Tags ratings
// @Produce json
// @Param id path string true "Movie id"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} ListResponse[RatingResource]
// @Failure 404 {object} errorResponse
// @Router /movies/{id}/ratings [get]
func (s *Server) handleListMovieRatings(c echo.Context) error {
	if s.RatingService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "rating service not configured")
	}

	var q RatingListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	page, err := s.RatingService.ListByMovie(c.Request().Context(), movieFrom(c).ID, q.ToQuery())
	if err != nil {
		return err
	}
	return writePage(c, "movie_ratings", page, projectRating)
}

// handleCreateMovieRating godoc
// @Summary Rate a Movie
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Movie id"
// @Param rating body RatingRequest true "Rating between 0 and 5"
// @Success 201 {object} ItemResponse[RatingResource]
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /movies/{id}/ratings [post]
func (s *Server) handleCreateMovieRating(c echo.Context) error {
	if s.RatingService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "rating service not configured")
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m := movieFrom(c)
	created, err := s.RatingService.Create(c.Request().Context(), rating.Rating{
		Rating:  *req.Rating,
		MovieID: m.ID,
	})
	if err != nil {
		return err
	}
	return writeItem(c, http.StatusCreated, moviePath(m.ID)+"/ratings", projectRating(created))
}
