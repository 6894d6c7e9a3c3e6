package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/logging"
	"github.com/chef-fest/backend/internal/router"
	"github.com/chef-fest/backend/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New builds the services and routes. redisClient and s3Config are
// optional.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3Config *config.S3Config) *Server {
	recipes := service.NewRecipeService(db)
	users := service.NewUserService(db)

	svc := router.Services{
		Tokens:  service.NewTokenService(cfg.JWTSecret, cfg.AdminEmails),
		Recipes: recipes,
		Reviews: service.NewReviewService(db),
		Saved:   service.NewSavedRecipeService(db),
		Users:   users,
		Email:   service.NewEmailService(cfg),
	}
	if s3Config != nil {
		svc.Images = service.NewImageService(service.NewS3ImageStore(s3Config), recipes, users)
	} else {
		logging.Warn().Msg("S3 not configured, image uploads disabled")
	}
	if redisClient == nil {
		logging.Warn().Msg("Redis not configured, rate limiting disabled")
	}

	r := router.SetupRouter(cfg, db, redisClient, svc)
	return &Server{
		cfg:    cfg,
		router: r,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", s.http.Addr).Str("environment", string(s.cfg.Environment)).Msg("server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
