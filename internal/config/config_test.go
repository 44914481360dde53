package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, uint(1), cfg.MasterKeyVersion)
				assert.Equal(t, "txvault", cfg.MetricsNamespace)
				assert.Equal(t, 8, cfg.VerifyConcurrency)
				assert.False(t, cfg.UsesKMS())
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":                    "mysql",
				"DB_CONNECTION_STRING":         "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS":      "50",
				"DB_MAX_IDLE_CONNECTIONS":      "10",
				"DB_CONN_MAX_LIFETIME_MINUTES": "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10, cfg.DBMaxIdleConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load master key configuration",
			envVars: map[string]string{
				"MASTER_KEY":         "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff",
				"MASTER_KEY_VERSION": "3",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Len(t, cfg.MasterKey, 64)
				assert.Equal(t, uint(3), cfg.MasterKeyVersion)
			},
		},
		{
			name: "load kms configuration",
			envVars: map[string]string{
				"KMS_PROVIDER": "localsecrets",
				"KMS_KEY_URI":  "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localsecrets", cfg.KMSProvider)
				assert.True(t, cfg.UsesKMS())
			},
		},
		{
			name: "load rate limit and cors configuration",
			envVars: map[string]string{
				"RATE_LIMIT_ENABLED":          "false",
				"RATE_LIMIT_REQUESTS_PER_SEC": "2.5",
				"RATE_LIMIT_BURST":            "4",
				"CORS_ENABLED":                "true",
				"CORS_ALLOW_ORIGINS":          "https://a.example,https://b.example",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimitEnabled)
				assert.Equal(t, 2.5, cfg.RateLimitRequestsPerSec)
				assert.Equal(t, 4, cfg.RateLimitBurst)
				assert.True(t, cfg.CORSEnabled)
				assert.Equal(t, "https://a.example,https://b.example", cfg.CORSAllowOrigins)
			},
		},
		{
			name: "load metrics and verify configuration",
			envVars: map[string]string{
				"METRICS_ENABLED":    "false",
				"METRICS_NAMESPACE":  "vault",
				"METRICS_PORT":       "9191",
				"VERIFY_CONCURRENCY": "2",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.MetricsEnabled)
				assert.Equal(t, "vault", cfg.MetricsNamespace)
				assert.Equal(t, 9191, cfg.MetricsPort)
				assert.Equal(t, 2, cfg.VerifyConcurrency)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}

func validConfig() *Config {
	return &Config{
		ServerPort:              8080,
		DBDriver:                "postgres",
		DBConnectionString:      "postgres://localhost/txvault",
		LogLevel:                "info",
		MasterKey:               "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		MasterKeyVersion:        1,
		RateLimitEnabled:        true,
		RateLimitRequestsPerSec: 10,
		RateLimitBurst:          20,
		MetricsEnabled:          true,
		MetricsPort:             8081,
		VerifyConcurrency:       4,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		errField string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing master key", func(c *Config) { c.MasterKey = "" }, "MasterKey"},
		{"short master key", func(c *Config) { c.MasterKey = c.MasterKey[:62] }, "MasterKey"},
		{"non hex master key", func(c *Config) { c.MasterKey = strings.Repeat("zz", 32) }, "MasterKey"},
		{"kms master key is base64", func(c *Config) {
			c.KMSProvider = "localsecrets"
			c.KMSKeyURI = "base64key://abc"
			c.MasterKey = "a21zLWNpcGhlcnRleHQ="
		}, ""},
		{"kms without uri", func(c *Config) { c.KMSProvider = "awskms" }, "KMSKeyURI"},
		{"unsupported driver", func(c *Config) { c.DBDriver = "sqlite" }, "DBDriver"},
		{"invalid log level", func(c *Config) { c.LogLevel = "trace" }, "LogLevel"},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, "RateLimitBurst"},
		{"zero burst with rate limit disabled", func(c *Config) {
			c.RateLimitEnabled = false
			c.RateLimitBurst = 0
		}, ""},
		{"invalid verify concurrency", func(c *Config) { c.VerifyConcurrency = -1 }, "VerifyConcurrency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errField)
		})
	}
}
