package httpserver

import (
	_ "movieapi/docs"

	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) RegisterSwaggerRoutes() {
	s.Router.GET("/api-docs/*", echoSwagger.WrapHandler)
}
