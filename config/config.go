package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string
	AutoMigrate bool

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth configuration
	JWTSecret   string
	AdminEmails []string

	// Email configuration
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	ContactEmail string

	// Object storage
	S3BucketName string
	AWSRegion    string

	// Logging
	LogLevel  string
	LogFormat string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig builds the configuration for the current environment. Values
// come from Docker secrets when present, then environment variables (with a
// local .env file loaded first), then defaults.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	env := GetEnvironment()
	cfg := defaults(env)

	switch env {
	case CI:
		// CI injects everything through the job environment.
		apply(cfg, os.Getenv)
	case Development, Test, Production:
		apply(cfg, secretOrEnv)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func defaults(env Environment) *Config {
	cfg := &Config{
		Environment:  env,
		ServerHost:   "0.0.0.0",
		ServerPort:   "8080",
		CORSOrigins:  []string{"http://localhost:5173"},
		DBDriver:     DriverPostgres,
		DBHost:       "localhost",
		DBPort:       "5432",
		DBUser:       "postgres",
		DBName:       "chef_fest",
		DBSSLMode:    "disable",
		SQLitePath:   "chef_fest.db",
		RedisPort:    "6379",
		SMTPPort:     "587",
		S3BucketName: "chef-fest-images",
		AWSRegion:    "us-east-1",
		LogLevel:     "info",
		LogFormat:    "json",
	}
	if env == Development || env == Test {
		cfg.AutoMigrate = true
		cfg.LogFormat = "console"
		cfg.LogLevel = "debug"
	}
	return cfg
}

// apply overlays every non-empty value returned by get onto cfg.
func apply(cfg *Config, get func(key string) string) {
	str := func(dst *string, key string) {
		if v := get(key); v != "" {
			*dst = v
		}
	}
	list := func(dst *[]string, key string) {
		if v := get(key); v != "" {
			*dst = splitList(v)
		}
	}

	str(&cfg.ServerHost, "SERVER_HOST")
	str(&cfg.ServerPort, "SERVER_PORT")
	list(&cfg.CORSOrigins, "CORS_ORIGINS")

	str(&cfg.DBDriver, "DB_DRIVER")
	str(&cfg.DBHost, "DB_HOST")
	str(&cfg.DBPort, "DB_PORT")
	str(&cfg.DBUser, "DB_USER")
	str(&cfg.DBPassword, "DB_PASSWORD")
	str(&cfg.DBName, "DB_NAME")
	str(&cfg.DBSSLMode, "DB_SSL_MODE")
	str(&cfg.SQLitePath, "SQLITE_PATH")
	if v, err := strconv.ParseBool(get("AUTO_MIGRATE")); err == nil {
		cfg.AutoMigrate = v
	}

	str(&cfg.RedisHost, "REDIS_HOST")
	str(&cfg.RedisPort, "REDIS_PORT")
	str(&cfg.RedisPassword, "REDIS_PASSWORD")
	str(&cfg.RedisURL, "REDIS_URL")
	if v, err := strconv.Atoi(get("REDIS_DB")); err == nil {
		cfg.RedisDB = v
	}

	str(&cfg.JWTSecret, "JWT_SECRET")
	list(&cfg.AdminEmails, "ADMIN_EMAILS")
	for i, e := range cfg.AdminEmails {
		cfg.AdminEmails[i] = strings.ToLower(e)
	}

	str(&cfg.SMTPHost, "SMTP_HOST")
	str(&cfg.SMTPPort, "SMTP_PORT")
	str(&cfg.SMTPUsername, "SMTP_USERNAME")
	str(&cfg.SMTPPassword, "SMTP_PASSWORD")
	str(&cfg.EmailFrom, "EMAIL_FROM")
	str(&cfg.ContactEmail, "CONTACT_EMAIL")

	str(&cfg.S3BucketName, "S3_BUCKET_NAME")
	str(&cfg.AWSRegion, "AWS_REGION")

	str(&cfg.LogLevel, "LOG_LEVEL")
	str(&cfg.LogFormat, "LOG_FORMAT")
}

// PostgresDSN returns the libpq keyword/value connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether any Redis endpoint is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// SMTPEnabled reports whether outbound mail can be delivered.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != ""
}

// secretOrEnv prefers a Docker secret named after the lower-cased key.
func secretOrEnv(key string) string {
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return os.Getenv(key)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
