// Package config reads the server's settings from the environment.
//
// LOADING ORDER:
//  1. A .env file in the working directory, if there is one (godotenv).
//     Variables already set in the real environment win over the file.
//  2. The process environment.
//  3. Defaults for anything still unset.
//
// Every value is checked here, at startup. A typo in STORAGE_DRIVER or a
// non-numeric PORT stops the process with a message naming the variable
// instead of surfacing later as a confusing runtime failure.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const minJWTSecretLength = 16

// Config is the fully validated server configuration.
type Config struct {
	Port int

	StorageDriver string
	DBPath        string // sqlite file; ignored by other drivers
	DatabaseURL   string // postgres DSN; ignored by other drivers

	// JWTSecret signs session tokens. Empty disables login and every route
	// that needs an author.
	JWTSecret string

	CORSAllowedOrigins []string
	SeedDefaults       bool
	LogLevel           slog.Level

	// RateLimitPerMinute caps register, login and waitlist requests per
	// client IP. Zero turns limiting off.
	RateLimitPerMinute int
	RedirectWWW        bool
}

// Load reads the given .env files (default ".env"), then the environment.
// Missing files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}
	return parse(os.LookupEnv)
}

func parse(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", DriverSQLite)),
		DBPath:        get("DB_PATH", "data/blog.db"),
		DatabaseURL:   get("DATABASE_URL", ""),
		JWTSecret:     get("JWT_SECRET", ""),
	}

	var err error
	if cfg.Port, err = intVar("PORT", get("PORT", "8080")); err != nil {
		return Config{}, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("config: PORT must be between 1 and 65535, got %d", cfg.Port)
	}

	switch cfg.StorageDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("config: DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("config: STORAGE_DRIVER must be %q, %q or %q, got %q",
			DriverMemory, DriverSQLite, DriverPostgres, cfg.StorageDriver)
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minJWTSecretLength {
		return Config{}, fmt.Errorf("config: JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}

	cfg.CORSAllowedOrigins = splitList(get("CORS_ALLOWED_ORIGINS", "*"))

	// Seeding defaults on only for the throwaway store.
	seedDefault := strconv.FormatBool(cfg.StorageDriver == DriverMemory)
	if cfg.SeedDefaults, err = boolVar("SEED_DEFAULTS", get("SEED_DEFAULTS", seedDefault)); err != nil {
		return Config{}, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("config: LOG_LEVEL: %w", err)
	}

	if cfg.RateLimitPerMinute, err = intVar("RATE_LIMIT_PER_MINUTE", get("RATE_LIMIT_PER_MINUTE", "30")); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitPerMinute < 0 {
		return Config{}, fmt.Errorf("config: RATE_LIMIT_PER_MINUTE must not be negative, got %d", cfg.RateLimitPerMinute)
	}

	if cfg.RedirectWWW, err = boolVar("REDIRECT_WWW", get("REDIRECT_WWW", "true")); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// AuthEnabled reports whether a JWT secret is configured.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func intVar(key, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, raw)
	}
	return n, nil
}

func boolVar(key, raw string) (bool, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s must be true or false, got %q", key, raw)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
