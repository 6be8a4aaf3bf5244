package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-d", "mongodb://localhost/cal", "-x", "1"},
			allowed: []string{"-d"},
			want:    []string{"-d", "mongodb://localhost/cal"},
		},
		{
			name:    "equals form",
			args:    []string{"-s=secret", "-a", ":3001"},
			allowed: []string{"-s"},
			want:    []string{"-s=secret"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "dash token is not a value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "order and repetition preserved",
			args:    []string{"-a", ":1", "-c", "one.json", "-a", ":2"},
			allowed: []string{"-a", "-c"},
			want:    []string{"-a", ":1", "-c", "one.json", "-a", ":2"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short flag", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Equal(t, "/etc/cal.json", ConfigPath([]string{"-c", "/etc/cal.json"}))
	})

	t.Run("long flag wins over env", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/env.json")
		assert.Equal(t, "/flag.json", ConfigPath([]string{"-a", ":1", "-config", "/flag.json"}))
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "/env.json")
		assert.Equal(t, "/env.json", ConfigPath([]string{"-a", ":1"}))
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(ConfigEnvVar, "")
		assert.Empty(t, ConfigPath(nil))
	})
}
