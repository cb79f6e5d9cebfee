// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageMySQL  = "mysql"
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	Mail      MailConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Scheduler SchedulerConfig
	Delivery  DeliveryConfig
	StaticDir string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port     int
	BasePath string
}

// StorageConfig selects the submission store engine
type StorageConfig struct {
	Driver string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SMTPConfig holds SMTP server configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// MailConfig holds the mailboxes notifications are addressed to
type MailConfig struct {
	AdminAddress   string
	ContactAddress string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// SchedulerConfig holds cron settings for background jobs
type SchedulerConfig struct {
	ReconcileCron string
}

// DeliveryConfig holds notification delivery settings
type DeliveryConfig struct {
	MaxRetry int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", 8080); err != nil {
		return nil, err
	}
	cfg.Server.BasePath = "/" + strings.Trim(stringEnv("BASE_PATH", "/ai-literacy-toolbox"), "/")
	if cfg.Server.BasePath == "/" {
		cfg.Server.BasePath = ""
	}

	// Storage configuration
	cfg.Storage.Driver = strings.ToLower(stringEnv("STORAGE_DRIVER", StorageMySQL))
	switch cfg.Storage.Driver {
	case StorageMySQL:
		if err := loadDatabase(cfg); err != nil {
			return nil, err
		}
	case StorageMongo:
		cfg.Mongo.URI = os.Getenv("MONGO_URI")
		if cfg.Mongo.URI == "" {
			return nil, fmt.Errorf("MONGO_URI is required")
		}
		cfg.Mongo.Database = stringEnv("MONGO_DATABASE", "ai_literacy_toolbox")
		cfg.Mongo.Collection = stringEnv("MONGO_COLLECTION", "submissions")
	case StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: %s", cfg.Storage.Driver)
	}

	// Redis configuration
	cfg.Redis.Host = stringEnv("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// SMTP configuration
	cfg.SMTP.Host = os.Getenv("SMTP_HOST")
	if cfg.SMTP.Port, err = intEnv("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	cfg.SMTP.Username = os.Getenv("SMTP_USERNAME")
	cfg.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	cfg.SMTP.From = stringEnv("SMTP_FROM", cfg.SMTP.Username)

	// Mailboxes fall back to the sending account
	cfg.Mail.AdminAddress = stringEnv("MAIL_ADMIN_ADDRESS", cfg.SMTP.Username)
	if cfg.Mail.AdminAddress == "" {
		cfg.Mail.AdminAddress = cfg.SMTP.From
	}
	cfg.Mail.ContactAddress = stringEnv("MAIL_CONTACT_ADDRESS", cfg.Mail.AdminAddress)

	// Logging configuration
	cfg.Logging.Level = stringEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	// Background jobs
	cfg.Scheduler.ReconcileCron = stringEnv("RECONCILE_CRON", "@every 1h")
	if cfg.Delivery.MaxRetry, err = intEnv("DELIVERY_MAX_RETRY", 5); err != nil {
		return nil, err
	}
	if cfg.Delivery.MaxRetry < 0 {
		return nil, fmt.Errorf("invalid DELIVERY_MAX_RETRY: must not be negative")
	}

	cfg.StaticDir = os.Getenv("STATIC_DIR")

	return cfg, nil
}

// loadDatabase reads the MySQL settings, all of which are required
func loadDatabase(cfg *Config) error {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	return nil
}

// parseOrigins splits a comma-separated origin list, allowing every origin when none is given
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the host:port address of Redis
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
