package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestDotEnvLookup(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, DotEnvFile, "JWT_SECRET=from-dotenv\nCORS_ORIGIN=https://dotenv.example.com\n")
	writeEnvFile(t, dir, DevelopmentEnvFile, "JWT_SECRET=from-development\nPORT=4100\n")

	t.Run("live environment wins", func(t *testing.T) {
		get := dotEnvLookup(dir, lookupFrom(map[string]string{"JWT_SECRET": "from-env"}))
		v, ok := get("JWT_SECRET")
		require.True(t, ok)
		assert.Equal(t, "from-env", v)
	})

	t.Run("dotenv before development", func(t *testing.T) {
		var cfg Config
		cfg.LoadDefaults()
		parseEnv(&cfg, dotEnvLookup(dir, lookupFrom(nil)))

		assert.Equal(t, "from-dotenv", cfg.SecretKey)
		assert.Equal(t, "https://dotenv.example.com", cfg.CORSOrigin)
		assert.Equal(t, ":4100", cfg.EndpointAddrHTTP)
	})

	t.Run("development skipped when environment is named", func(t *testing.T) {
		var cfg Config
		cfg.LoadDefaults()
		parseEnv(&cfg, dotEnvLookup(dir, lookupFrom(map[string]string{"APP_ENV": "production"})))

		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, ":3001", cfg.EndpointAddrHTTP)
	})

	t.Run("environment named in dotenv", func(t *testing.T) {
		named := t.TempDir()
		writeEnvFile(t, named, DotEnvFile, "NODE_ENV=staging\n")
		writeEnvFile(t, named, DevelopmentEnvFile, "PORT=4100\n")

		var cfg Config
		cfg.LoadDefaults()
		parseEnv(&cfg, dotEnvLookup(named, lookupFrom(nil)))

		assert.Equal(t, "staging", cfg.Environment)
		assert.Equal(t, ":3001", cfg.EndpointAddrHTTP)
	})
}

func TestDotEnvLookup_MissingFiles(t *testing.T) {
	get := dotEnvLookup(t.TempDir(), lookupFrom(nil))
	_, ok := get("JWT_SECRET")
	assert.False(t, ok)
}

func TestDotEnvLookup_MalformedFilePanics(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, DotEnvFile, "JWT_SECRET='unterminated\n")
	assert.Panics(t, func() { dotEnvLookup(dir, lookupFrom(nil)) })
}
