package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Env files read from the working directory. The live environment always
// wins over both; env.development is only consulted when no environment
// name is configured anywhere else.
const (
	DotEnvFile         = ".env"
	DevelopmentEnvFile = "env.development"
)

// dotEnvLookup layers the env files in dir beneath lookup.
func dotEnvLookup(dir string, lookup LookupFunc) LookupFunc {
	layers := []map[string]string{readEnvFile(filepath.Join(dir, DotEnvFile))}

	if !hasEnvironmentName(chainLookup(lookup, layers)) {
		layers = append(layers, readEnvFile(filepath.Join(dir, DevelopmentEnvFile)))
	}
	return chainLookup(lookup, layers)
}

func hasEnvironmentName(lookup LookupFunc) bool {
	for _, key := range []string{"APP_ENV", "NODE_ENV"} {
		if v, ok := lookup(key); ok && v != "" {
			return true
		}
	}
	return false
}

func chainLookup(lookup LookupFunc, layers []map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		for _, m := range layers {
			if v, ok := m[key]; ok {
				return v, true
			}
		}
		return "", false
	}
}

// readEnvFile returns the variables in path. A missing file yields nothing;
// a malformed one panics, like an unreadable JSON config.
func readEnvFile(path string) map[string]string {
	m, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		panic(err)
	}
	return m
}
