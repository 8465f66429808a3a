package httpserver

import (
	"movieapi/pkg/metrics"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHomeRoutes() {
	s.Router.GET("/", s.home)
}

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

func (s *Server) RegisterMetricsRoutes() {
	s.Router.GET("/metrics", metrics.Handler())
}

// home godoc
// @Summary API banner
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (s *Server) home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "API is running!",
		"docs":    "/api-docs",
	})
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive
// @Tags health
// @Success 200 {object} map[string]string
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "OK",
	})
}
