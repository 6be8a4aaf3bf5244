package config

import (
	"strconv"
	"time"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// parseEnv overlays values from environment variables. Malformed numeric
// values are ignored and the previous value is kept.
//
// Recognised variables:
//
//	PORT                     port only, binds ":<PORT>"
//	HTTP_ADDR                full bind address, wins over PORT
//	APP_ENV                  development | production
//	NODE_ENV                 same as APP_ENV, which wins when both are set
//	DATABASE_DSN             persistent store DSN
//	MONGODB_URI              persistent store DSN (used when DATABASE_DSN is unset)
//	JWT_SECRET               token signing secret
//	TOKEN_TTL                token lifetime, Go duration string
//	BCRYPT_COST              bcrypt cost factor
//	CORS_ORIGIN              allowed browser origin
//	RATE_LIMIT_WINDOW_MS     rate limit window in milliseconds
//	RATE_LIMIT_MAX_REQUESTS  requests allowed per window
//	LOG_BACKEND              slog | zap
func parseEnv(config *Config, lookup LookupFunc) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return "", false
		}
		return v, true
	}

	if v, ok := get("PORT"); ok {
		config.EndpointAddrHTTP = ":" + v
	}
	if v, ok := get("HTTP_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := get("NODE_ENV"); ok {
		config.Environment = v
	}
	if v, ok := get("APP_ENV"); ok {
		config.Environment = v
	}
	if v, ok := get("MONGODB_URI"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := get("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := get("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := get("TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v, ok := get("BCRYPT_COST"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.BcryptCost = n
		}
	}
	if v, ok := get("CORS_ORIGIN"); ok {
		config.CORSOrigin = v
	}
	if v, ok := get("RATE_LIMIT_WINDOW_MS"); ok {
		if ms, err := strconv.Atoi(v); err == nil {
			config.RateLimitWindow = time.Duration(ms) * time.Millisecond
		}
	}
	if v, ok := get("RATE_LIMIT_MAX_REQUESTS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			config.RateLimitMax = n
		}
	}
	if v, ok := get("LOG_BACKEND"); ok {
		config.LogBackend = v
	}
}
