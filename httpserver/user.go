package httpserver

import (
	"movieapi/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes(g *echo.Group) {
	g.POST("/register", s.handleRegister)
	g.POST("/login", s.handleLogin)
	g.GET("/me", s.handleMe, s.requireAuth())
}

// handleMe godoc
// @Summary Current User
// @Description Account behind the bearer token
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ItemResponse[UserResource]
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /users/me [get]
func (s *Server) handleMe(c echo.Context) error {
	if s.UserService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "user service not configured")
	}

	claims, ok := claimsFrom(c)
	if !ok {
		return ErrInvalidToken
	}

	u, err := s.UserService.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return writeItem(c, http.StatusOK, "/users/me", projectUser(u))
}
