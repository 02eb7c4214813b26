package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Store drivers selectable via DOCS_STORE.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

// Config is the process-wide startup configuration, read once in main and
// passed down explicitly. Handlers never reach into the environment.
type Config struct {
	ListenAddr     string
	StoreDriver    string
	StorePath      string
	AuthPrivateKey string // JSON-encoded JWK, parsed by the auth package
	Issuer         string
	DemoUserID     string
	ProtectAPI     bool
	LogLevel       string
}

// Load reads configuration from the environment. Call godotenv.Load first if
// a .env file should be honored.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:     getenv("LISTEN_ADDR", ":8080"),
		StoreDriver:    getenv("DOCS_STORE", StoreFile),
		StorePath:      getenv("DOCS_STORE_PATH", "docroom.db.json"),
		AuthPrivateKey: strings.TrimSpace(os.Getenv("AUTH_PRIVATE_KEY")),
		Issuer:         getenv("AUTH_ISSUER", "docroom-auth"),
		DemoUserID:     getenv("AUTH_DEMO_USER", "user1"),
		ProtectAPI:     getenv("API_AUTH", "false") == "true",
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	if cfg.AuthPrivateKey == "" {
		return nil, errors.New("AUTH_PRIVATE_KEY environment variable is required")
	}
	if cfg.StoreDriver != StoreFile && cfg.StoreDriver != StorePostgres {
		return nil, fmt.Errorf("unknown DOCS_STORE driver %q (expected %q or %q)",
			cfg.StoreDriver, StoreFile, StorePostgres)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
