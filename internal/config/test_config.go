package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the database settings for integration tests from TEST_DB_* variables.
// When any of them is unset the returned Config has an empty Database section and tests fall back to their default DSN.
func LoadTestConfig() (*Config, error) {
	// .env is optional; the second path covers running from test/integration
	_ = godotenv.Load()
	_ = godotenv.Load("./../../.env")

	cfg := &Config{Storage: StorageConfig{Driver: StorageMySQL}}

	values := make(map[string]string, 5)
	for _, key := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME"} {
		v := os.Getenv(key)
		if v == "" {
			return cfg, nil
		}
		values[key] = v
	}

	port, err := strconv.Atoi(values["TEST_DB_PORT"])
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}

	cfg.Database = DatabaseConfig{
		Host:     values["TEST_DB_HOST"],
		Port:     port,
		User:     values["TEST_DB_USER"],
		Password: values["TEST_DB_PASSWORD"],
		DBName:   values["TEST_DB_NAME"],
	}

	return cfg, nil
}
