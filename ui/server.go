// Package ui serves the analysis HTTP API.
package ui

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"epilag/app"
	"epilag/internal"
	"epilag/internal/config"
)

// Server is the analysis API server.
type Server struct {
	router   *gin.Engine
	analysis *app.AnalysisService
	catalog  *app.MetadataService
	logger   *internal.Logger
}

// NewServer creates the API server and registers its routes.
func NewServer(cfg *config.Config, analysis *app.AnalysisService, catalog *app.MetadataService) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:   gin.Default(),
		analysis: analysis,
		catalog:  catalog,
		logger:   internal.DefaultLogger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.router.Group("/api")

	api.GET("/signals", s.handleListSignals)
	api.GET("/signals/shared/geo", s.handleSharedGeoTypes)
	api.GET("/signals/shared/dates", s.handleSharedDates)

	api.GET("/methods", s.handleListMethods)
	api.GET("/methods/:method/info", s.handleMethodInfo)

	api.POST("/sessions", s.handleFetchPair)
	api.GET("/sessions/:id", s.handleGetSession)
	api.DELETE("/sessions/:id", s.handleDeleteSession)
	api.GET("/sessions/:id/correlation", s.handleCorrelationAtLag)
	api.POST("/sessions/:id/sweep", s.handleSweep)
	api.GET("/sessions/:id/sweep/export", s.handleSweepExport)
}

// Handler exposes the router for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving on the configured port.
func (s *Server) Start(port string) error {
	s.logger.Info("analysis API listening on :%s", port)
	return s.router.Run(fmt.Sprintf(":%s", port))
}
