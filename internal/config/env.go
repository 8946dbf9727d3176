package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables carrying credentials and the environment override.
const (
	EnvSpaceID       = "CONTENTFUL_SPACE_ID"
	EnvAccessToken   = "CONTENTFUL_ACCESS_TOKEN"
	EnvDeliveryToken = "CONTENTFUL_DELIVERY_TOKEN"
	EnvEnvironment   = "CONTENTFUL_ENVIRONMENT"
	EnvBaseURL       = "NEWSBUILD_BASE_URL"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads every present .env file. godotenv never overrides
// variables that are already set in the process environment.
func loadEnvFiles() []string {
	var loaded []string
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	return loaded
}

// applyEnv lets the process environment win over values from the file.
func applyEnv(cfg *Config) {
	if v := lookup(EnvSpaceID); v != "" {
		cfg.Content.SpaceID = v
	}
	if v := lookup(EnvAccessToken); v != "" {
		cfg.Content.AccessToken = v
	} else if v := lookup(EnvDeliveryToken); v != "" && cfg.Content.AccessToken == "" {
		cfg.Content.AccessToken = v
	}
	if v := lookup(EnvEnvironment); v != "" {
		cfg.Content.Environment = v
	}
	if v := lookup(EnvBaseURL); v != "" {
		cfg.Site.BaseURL = v
	}
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
