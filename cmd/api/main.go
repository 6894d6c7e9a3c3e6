package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/database"
	"github.com/chef-fest/backend/internal/logging"
	"github.com/chef-fest/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("environment", string(cfg.Environment)).Msg("starting chef fest api")

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(ctx, db); err != nil {
			logging.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Redis only backs rate limiting; run without it if unreachable.
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			logging.Warn().Err(err).Msg("continuing without Redis")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var s3Config *config.S3Config
	if cfg.S3BucketName != "" {
		s3Ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		s3Config, err = config.NewS3Config(s3Ctx, cfg)
		cancel()
		if err != nil {
			logging.Warn().Err(err).Msg("continuing without S3")
			s3Config = nil
		}
	}

	srv := server.New(cfg, db, redisClient, s3Config)
	if err := srv.Run(ctx); err != nil {
		logging.Fatal().Err(err).Msg("server error")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logging.Info().Msg("server stopped")
}
