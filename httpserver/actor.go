package httpserver

import (
	"movieapi/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterActorRoutes(g *echo.Group) {
	g.GET("", s.handleListActors)
	g.GET("/:id", s.handleGetActor)
}

// handleListActors godoc
// @Summary List Actors
// @Tags actors
// @Produce json
// @Param movie query string false "Only actors who played in this movie"
// @Param page query int false "Page number, default 1"
// @Param limit query int false "Page size, default 10, max 100"
// @Success 200 {object} ListResponse[ActorResource]
// @Failure 400 {object} errorResponse
// @Router /actors [get]
func (s *Server) handleListActors(c echo.Context) error {
	if s.ActorService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "actor service not configured")
	}

	var q ActorListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}

	page, err := s.ActorService.List(c.Request().Context(), q.ToQuery())
	if err != nil {
		return err
	}
	return writePage(c, "actors", page, projectActor)
}

// handleGetActor godoc
// @Summary Get Actor
// @Tags actors
// @Produce json
// @Param id path string true "Actor id"
// @Success 200 {object} ItemResponse[ActorResource]
// @Failure 404 {object} errorResponse
// @Router /actors/{id} [get]
func (s *Server) handleGetActor(c echo.Context) error {
	if s.ActorService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "actor service not configured")
	}

	a, err := s.ActorService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return writeItem(c, http.StatusOK, "/actors/"+a.ID, projectActor(a))
}
