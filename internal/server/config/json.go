package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophcalendar/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Only keys
// present in the file override the current values; durations may be given
// as strings ("15m") or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	Environment           *string         `json:"environment"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	CORSOrigin            *string         `json:"cors_origin"`
	RateLimitWindow       *timex.Duration `json:"rate_limit_window"`
	RateLimitMax          *int            `json:"rate_limit_max"`
	LogBackend            *string         `json:"log_backend"`
}

// parseJson overlays values from the JSON file at path onto config. An
// empty path loads nothing. Unreadable files or invalid JSON panic, since
// the server cannot start with a configuration it was told to use.
func parseJson(config *Config, path string) {
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.Environment, c.Environment)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.CORSOrigin, c.CORSOrigin)
	setString(&config.LogBackend, c.LogBackend)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	if c.RateLimitMax != nil {
		config.RateLimitMax = *c.RateLimitMax
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
