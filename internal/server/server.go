package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"postboard-go/internal/auth"
	"postboard-go/internal/common/response"
	"postboard-go/internal/config"
	"postboard-go/internal/dashboard"
	"postboard-go/internal/database"
	"postboard-go/internal/post"
	"postboard-go/internal/uploader"
	"postboard-go/internal/user"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// HealthChecker reports the state of a backing service
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Server represents the HTTP server and its dependencies
type Server struct {
	config           *config.Config
	health           HealthChecker
	authService      auth.Service
	userHandler      *user.Handler
	postHandler      *post.Handler
	dashboardHandler *dashboard.Handler
	uploadHandler    *uploader.Handler
	pipeline         *uploader.Pipeline
	sweeper          *uploader.SweepWorker
}

// NewServer creates a new server instance storing uploads on fs
func NewServer(cfg *config.Config, db *database.DB, fs afero.Fs) (*Server, error) {
	// Initialize repositories
	userRepo := user.NewRepository(db)
	postRepo := post.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)

	// Initialize services
	authService, err := auth.NewService(cfg.Secret, cfg.TokenExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("creating auth service: %w", err)
	}
	userService := user.NewService(userRepo)
	postService := post.NewService(postRepo)
	dashboardService := dashboard.NewService(dashboardRepo, userService, postService)

	// Initialize the upload pipeline and its sweeper
	pipeline := uploader.NewPipeline(cfg.Upload, fs)
	uploadHandler := uploader.NewHandler(pipeline, cfg.Upload.Field)
	sweeper := uploader.NewSweepWorker(pipeline, cfg.Upload.SweepInterval, uploader.PartialMaxAge(cfg.Upload.Timeout))

	server := &Server{
		config:           cfg,
		authService:      authService,
		userHandler:      user.NewHandler(userService, authService, uploadHandler),
		postHandler:      post.NewHandler(postService),
		dashboardHandler: dashboard.NewHandler(dashboardService),
		uploadHandler:    uploadHandler,
		pipeline:         pipeline,
		sweeper:          sweeper,
	}
	if db != nil {
		server.health = db
	}

	return server, nil
}

// Start starts background workers and returns the configured HTTP server
func (s *Server) Start(ctx context.Context) (*http.Server, error) {
	// Uploads keep failing with 500 until the directory becomes usable
	if err := s.pipeline.CheckStorage(ctx); err != nil {
		log.Warn().
			Err(err).
			Str("dir", s.config.Upload.Dir).
			Msg("Upload storage is unavailable")
	}

	s.sweeper.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.RegisterRoutes(),
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.config.Upload.Timeout + 10*time.Second,
		WriteTimeout:      s.config.Upload.Timeout + 30*time.Second,
	}

	log.Info().
		Int("port", s.config.Port).
		Str("env", s.config.Env).
		Msg("Starting server")

	return srv, nil
}

// Stop halts background workers
func (s *Server) Stop() {
	s.sweeper.Stop()
}

// sendJSON sends a JSON response with consistent formatting
func (s *Server) sendJSON(w http.ResponseWriter, status int, success bool, message string, data interface{}) {
	response.JSON(w, status, APIResponse{
		Success: success,
		Message: message,
		Data:    data,
	})
}
