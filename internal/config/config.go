package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment  string
	HTTPPort     string
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
}

// Load reads env vars and falls back to defaults so the server can boot with zero configuration.
func Load() (Config, error) {
	cfg := Config{
		Environment:  getEnv("UMOJA_ENV", "development"),
		HTTPPort:     getEnv("UMOJA_HTTP_PORT", "8080"),
		DatabasePath: getEnv("UMOJA_DB_PATH", filepath.Join("data", "umoja.db")),
		JWTSecret:    getEnv("UMOJA_JWT_SECRET", ""),
		TokenTTL:     24 * time.Hour,
	}

	if ttl := os.Getenv("UMOJA_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("parse UMOJA_TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}

	// An empty signing key would let anyone mint valid tokens. When no secret
	// is configured, generate a random per-boot one; issued tokens then do not
	// survive a restart, which is the safe default.
	if cfg.JWTSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, fmt.Errorf("generate jwt secret: %w", err)
		}
		cfg.JWTSecret = secret
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
