package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setMySQLEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "toolbox")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "toolbox")
}

func TestLoad_Defaults(t *testing.T) {
	setMySQLEnv(t)
	for _, key := range []string{
		"SERVER_PORT", "BASE_PATH", "REDIS_HOST", "REDIS_PORT", "REDIS_DB", "SMTP_USERNAME", "SMTP_FROM",
		"MAIL_ADMIN_ADDRESS", "MAIL_CONTACT_ADDRESS", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
		"RECONCILE_CRON", "DELIVERY_MAX_RETRY", "STATIC_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/ai-literacy-toolbox", cfg.Server.BasePath)
	assert.Equal(t, StorageMySQL, cfg.Storage.Driver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "@every 1h", cfg.Scheduler.ReconcileCron)
	assert.Equal(t, 5, cfg.Delivery.MaxRetry)
	assert.Equal(t, "toolbox:secret@tcp(localhost:3306)/toolbox?parseTime=true&charset=utf8mb4", cfg.DSN())
}

func TestLoad_MailFallbacks(t *testing.T) {
	setMySQLEnv(t)
	t.Setenv("SMTP_USERNAME", "robot@example.org")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("MAIL_ADMIN_ADDRESS", "")
	t.Setenv("MAIL_CONTACT_ADDRESS", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "robot@example.org", cfg.SMTP.From)
	assert.Equal(t, "robot@example.org", cfg.Mail.AdminAddress)
	assert.Equal(t, "robot@example.org", cfg.Mail.ContactAddress)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		error string
	}{
		{
			name:  "missing db host",
			env:   map[string]string{"DB_HOST": ""},
			error: "DB_HOST is required",
		},
		{
			name:  "invalid server port",
			env:   map[string]string{"SERVER_PORT": "http"},
			error: "invalid SERVER_PORT",
		},
		{
			name:  "unknown storage driver",
			env:   map[string]string{"STORAGE_DRIVER": "sqlite"},
			error: "invalid STORAGE_DRIVER",
		},
		{
			name:  "mongo without uri",
			env:   map[string]string{"STORAGE_DRIVER": "mongo", "MONGO_URI": ""},
			error: "MONGO_URI is required",
		},
		{
			name:  "negative retry",
			env:   map[string]string{"DELIVERY_MAX_RETRY": "-1"},
			error: "invalid DELIVERY_MAX_RETRY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setMySQLEnv(t)
			t.Setenv("SERVER_PORT", "")
			t.Setenv("DELIVERY_MAX_RETRY", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.error)
		})
	}
}

func TestLoad_MemoryDriverNeedsNoDatabase(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("DB_HOST", "")
	t.Setenv("BASE_PATH", "/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "", cfg.Server.BasePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
