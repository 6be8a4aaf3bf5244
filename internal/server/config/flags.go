package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3001")
//	-m string   environment (development | production)
//	-d string   database DSN (empty = in-memory)
//	-s string   token signing secret
//	-t int      token validity, hours
//	-k int      bcrypt cost
//	-o string   allowed CORS origin
//	-w int      rate limit window, minutes
//	-r int      rate limit requests per window
//	-l string   log backend (slog | zap)
//
// args is filtered with flagx.FilterArgs first so the -c config flag and
// flags owned by other components do not cause parse errors.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-m", "-d", "-s", "-t", "-k", "-o", "-w", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.Environment, "m", config.Environment, "environment")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenHours := fs.Int("t", int(config.TokenValidityDuration.Hours()), "token validity (in hours)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.CORSOrigin, "o", config.CORSOrigin, "allowed CORS origin")
	windowMinutes := fs.Int("w", int(config.RateLimitWindow.Minutes()), "rate limit window (in minutes)")
	fs.IntVar(&config.RateLimitMax, "r", config.RateLimitMax, "rate limit requests per window")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations are replaced only when their flag is present.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenHours) * time.Hour
		case "w":
			config.RateLimitWindow = time.Duration(*windowMinutes) * time.Minute
		}
	})
}
