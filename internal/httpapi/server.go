package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"meal-planner/internal/app"
	"meal-planner/internal/logger"
)

// Server exposes the App over a JSON API.
type Server struct {
	app    *app.App
	log    *logger.Logger
	router *gin.Engine
}

// NewServer creates a Server with every route registered.
func NewServer(a *app.App, log *logger.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	s := &Server{app: a, log: log, router: router}
	s.setupRoutes()
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	return s.router
}

// Handle mounts an extra handler, e.g. a bot webhook.
func (s *Server) Handle(method, path string, h http.Handler) {
	s.router.Handle(method, path, gin.WrapH(h))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(s.app.Metrics().Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/status", s.getStatus)

		api.GET("/plan", s.getPlan)
		api.POST("/plan/refresh", s.refreshPlan)
		api.POST("/plan/substitutions", s.applySubstitution)
		api.GET("/recipes/:id", s.getRecipe)

		api.GET("/shopping", s.getShopping)
		api.POST("/shopping/:id/toggle", s.toggleShoppingItem)

		api.POST("/feedback", s.submitFeedback)
		api.GET("/preferences", s.getPreferences)

		api.GET("/profile", s.getProfile)
		api.PUT("/profile", s.updateProfile)

		api.GET("/pantry", s.getPantry)
		api.PUT("/pantry", s.setPantry)

		api.GET("/nutrition/today", s.getTodaysNutrition)
		api.GET("/nutrition/log", s.getMealLog)
		api.POST("/nutrition/log", s.logMeal)

		api.GET("/challenges", s.getChallenges)
		api.POST("/challenges/:id/progress", s.updateChallenge)
	}
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}
