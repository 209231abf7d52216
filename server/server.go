package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/enomcdcdash/enomdash/dashboard"
	"github.com/enomcdcdash/enomdash/logger"
)

// Server is the HTTP shell around one Dashboard.
type Server struct {
	dash       *dashboard.Dashboard
	logger     logger.Logger
	port       int
	router     *gin.Engine
	httpServer *http.Server
}

// New builds the router. The gin mode comes from server.mode.
func New(dash *dashboard.Dashboard, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	cfg := dash.Config()
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		dash:   dash,
		logger: log,
		port:   cfg.Server.Port,
		router: gin.New(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(RequestLogger(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	v1.GET("/views", s.listViews)

	v1.GET("/session", s.getSession)
	v1.POST("/session/reset", s.resetSession)
	v1.PUT("/session/tab", s.setTab)

	v1.POST("/views/:view/render", s.renderView)
	v1.GET("/views/:view/chart.html", s.renderHTML)
	v1.GET("/views/:view/export.xlsx", s.exportXLSX)

	v1.POST("/cache/invalidate", s.invalidateCache)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("dashboard server starting", "port", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down dashboard server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// Handler returns the underlying Gin engine so tests can mount it.
func (s *Server) Handler() http.Handler {
	return s.router
}
