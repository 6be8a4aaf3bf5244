// Package config handles configuration for the calendar server, including
// defaults, JSON overlay, environment variables and command-line flags.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/flagx"
)

// Environment names.
const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

// MinBcryptCost is the lowest bcrypt cost the server will accept.
const MinBcryptCost = 10

// Config holds runtime settings for the GophCalendar server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - Environment: "development" or "production".
//   - DatabaseDSN: empty for the in-memory store, otherwise a mongodb:// or
//     postgres:// connection string.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenValidityDuration: session token lifetime.
//   - BcryptCost: password hashing cost factor.
//   - CORSOrigin: browser origin allowed to call the API with credentials.
//   - RateLimitWindow / RateLimitMax: per-client request budget.
//   - LogBackend: "slog" or "zap".
type Config struct {
	EndpointAddrHTTP      string
	Environment           string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	CORSOrigin            string
	RateLimitWindow       time.Duration
	RateLimitMax          int
	LogBackend            string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3001"
	c.Environment = EnvironmentDevelopment
	c.DatabaseDSN = ""
	c.SecretKey = "fallback-secret-for-development"
	c.TokenValidityDuration = common.DefaultTokenValidity
	c.BcryptCost = 12
	c.CORSOrigin = "http://localhost:5173"
	c.RateLimitWindow = 15 * time.Minute
	c.RateLimitMax = 100
	c.LogBackend = "slog"
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

// SecureCookies reports whether the auth cookie needs the Secure flag.
// Only development runs over plain HTTP.
func (c *Config) SecureCookies() bool {
	return c.Environment != EnvironmentDevelopment
}

// UsesMemoryStore reports whether no persistent store is configured.
func (c *Config) UsesMemoryStore() bool {
	return c.DatabaseDSN == ""
}

func (c *Config) normalize() {
	if c.BcryptCost < MinBcryptCost {
		c.BcryptCost = MinBcryptCost
	}
	if c.TokenValidityDuration <= 0 {
		c.TokenValidityDuration = common.DefaultTokenValidity
	}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (including .env files in the
// working directory) and finally command-line flags.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, flagx.ConfigPath(args))
	parseEnv(cfg, dotEnvLookup(".", os.LookupEnv))
	parseFlags(cfg, args)
	cfg.normalize()
	return cfg
}
