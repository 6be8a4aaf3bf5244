package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func Test_parseEnv(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	parseEnv(&cfg, lookupFrom(map[string]string{
		"PORT":                    "4000",
		"APP_ENV":                 "production",
		"MONGODB_URI":             "mongodb://mongo/cal",
		"JWT_SECRET":              "s3cr3t",
		"TOKEN_TTL":               "48h",
		"BCRYPT_COST":             "11",
		"CORS_ORIGIN":             "https://app.example.com",
		"RATE_LIMIT_WINDOW_MS":    "60000",
		"RATE_LIMIT_MAX_REQUESTS": "5",
		"LOG_BACKEND":             "zap",
	}))

	assert.Equal(t, ":4000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "mongodb://mongo/cal", cfg.DatabaseDSN)
	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.Equal(t, 48*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, 11, cfg.BcryptCost)
	assert.Equal(t, "https://app.example.com", cfg.CORSOrigin)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, "zap", cfg.LogBackend)
}

func Test_parseEnv_Precedence(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	parseEnv(&cfg, lookupFrom(map[string]string{
		"PORT":         "4000",
		"HTTP_ADDR":    "127.0.0.1:5000",
		"MONGODB_URI":  "mongodb://mongo/cal",
		"DATABASE_DSN": "postgres://pg/cal",
	}))

	assert.Equal(t, "127.0.0.1:5000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://pg/cal", cfg.DatabaseDSN)
}

func Test_parseEnv_IgnoresMalformedNumbers(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	parseEnv(&cfg, lookupFrom(map[string]string{
		"BCRYPT_COST":             "high",
		"RATE_LIMIT_MAX_REQUESTS": "",
		"TOKEN_TTL":               "a week",
	}))

	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenValidityDuration)
}
