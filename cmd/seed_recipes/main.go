package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"time"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/database"
	"github.com/chef-fest/backend/internal/logging"
	"github.com/chef-fest/backend/internal/models"
	"github.com/chef-fest/backend/internal/service"
	"github.com/chef-fest/backend/internal/types"
)

//go:embed recipes.json
var catalogJSON []byte

func main() {
	migrate := flag.Bool("migrate", false, "Bring the schema up to date before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: "console"})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *migrate || cfg.AutoMigrate {
		if err := database.RunMigrations(ctx, db); err != nil {
			logging.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	var catalog []types.CreateRecipeRequest
	if err := json.Unmarshal(catalogJSON, &catalog); err != nil {
		logging.Fatal().Err(err).Msg("failed to parse recipe catalog")
	}

	recipes := service.NewRecipeService(db)
	created, skipped := 0, 0
	for i := range catalog {
		req := &catalog[i]

		var existing int64
		if err := db.WithContext(ctx).Model(&models.Recipe{}).Where("title = ?", req.Title).Count(&existing).Error; err != nil {
			logging.Fatal().Err(err).Msg("failed to check existing recipes")
		}
		if existing > 0 {
			skipped++
			continue
		}

		recipe, err := recipes.CreateRecipe(ctx, req)
		if err != nil {
			logging.Error().Err(err).Str("title", req.Title).Msg("failed to seed recipe")
			continue
		}
		created++
		logging.Debug().Str("id", recipe.ID.String()).Str("title", recipe.Title).Msg("seeded recipe")

		// Keep created_at distinct so the newest-first order is stable.
		time.Sleep(10 * time.Millisecond)
	}

	logging.Info().Int("created", created).Int("skipped", skipped).Msg("seeding complete")
}
