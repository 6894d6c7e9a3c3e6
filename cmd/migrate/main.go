package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/chef-fest/backend/config"
	"github.com/chef-fest/backend/internal/database"
	"github.com/chef-fest/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	status := flag.Bool("status", false, "Print the state of every migration")
	flag.Parse()

	logging.Init(logging.Config{Format: "console"})

	// DATABASE_URL wins; otherwise build the DSN from the usual settings.
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to load configuration")
		}
		if cfg.DBDriver != config.DriverPostgres {
			logging.Fatal().Str("driver", cfg.DBDriver).Msg("SQL migrations only apply to postgres")
		}
		dsn = cfg.PostgresDSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}

	switch {
	case *status:
		statuses, err := database.MigrationStatus(ctx, db)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to read migration status")
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%-40s %s\n", s.Source.Path, applied)
		}
	case *rollback:
		if err := database.MigrateDown(ctx, db); err != nil {
			logging.Fatal().Err(err).Msg("rollback failed")
		}
	default:
		if err := database.MigrateUp(ctx, db); err != nil {
			logging.Fatal().Err(err).Msg("migration failed")
		}
		logging.Info().Msg("all migrations applied")
	}
}
