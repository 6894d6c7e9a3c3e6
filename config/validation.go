package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minProductionSecretLength = 32

// ValidateConfig checks cfg against the requirements of its environment and
// reports every problem at once.
func ValidateConfig(cfg *Config) error {
	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		add("SERVER_PORT", "must be a port number")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for postgres")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for postgres")
		}
		if cfg.DBUser == "" {
			add("DB_USER", "is required for postgres")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	}

	switch cfg.Environment {
	case Production:
		if cfg.DBDriver != DriverPostgres {
			add("DB_DRIVER", "production requires postgres")
		}
		if cfg.DBPassword == "" {
			add("DB_PASSWORD", "db_password secret is required")
		}
		if len(cfg.JWTSecret) < minProductionSecretLength {
			add("JWT_SECRET", fmt.Sprintf("must be at least %d characters in production", minProductionSecretLength))
		}
	case CI:
		if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "" {
			add("DB_PASSWORD", "environment variable is required in CI environment")
		}
	}

	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}
