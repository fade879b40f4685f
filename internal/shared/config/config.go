package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends and password hashing schemes selectable via environment.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"

	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv         string
	DataFile       string
	StoreBackend   string
	PasswordHasher string
	DatabaseURL    string
}

// Load loads configuration from environment variables, with an optional
// .env file for local development.
func Load() (*Config, error) {

	// Load .env into the process environment. A missing file is fine in
	// prod; any other error should surface.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Explicitly bind viper keys to env var names.
	bindings := map[string]string{
		"app.env":        "APP_ENV",
		"bank.data_file": "BANK_DATA_FILE",
		"bank.store":     "BANK_STORE_BACKEND",
		"bank.hasher":    "BANK_PASSWORD_HASHER",
		"database.url":   "DATABASE_URL",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	viper.SetDefault("app.env", "dev")
	viper.SetDefault("bank.data_file", "bank_data.json")
	viper.SetDefault("bank.store", StoreFile)
	viper.SetDefault("bank.hasher", HasherSHA256)

	cfg := Config{
		AppEnv:         viper.GetString("app.env"),
		DataFile:       viper.GetString("bank.data_file"),
		StoreBackend:   viper.GetString("bank.store"),
		PasswordHasher: viper.GetString("bank.hasher"),
		DatabaseURL:    viper.GetString("database.url"),
	}

	switch cfg.StoreBackend {
	case StoreFile, StorePostgres:
	default:
		return nil, fmt.Errorf("BANK_STORE_BACKEND must be %q or %q, got %q", StoreFile, StorePostgres, cfg.StoreBackend)
	}
	if cfg.StoreBackend == StorePostgres && cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must be set when BANK_STORE_BACKEND is postgres")
	}
	if cfg.StoreBackend == StoreFile && cfg.DataFile == "" {
		return nil, errors.New("BANK_DATA_FILE must not be empty")
	}

	switch cfg.PasswordHasher {
	case HasherSHA256, HasherBcrypt:
	default:
		return nil, fmt.Errorf("BANK_PASSWORD_HASHER must be %q or %q, got %q", HasherSHA256, HasherBcrypt, cfg.PasswordHasher)
	}

	return &cfg, nil
}
