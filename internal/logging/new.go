package logging

import (
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/zap"
)

// New builds the process logger for the named backend. Development mode
// enables debug output; production emits JSON at info level.
func New(backend string, production bool) (Logger, error) {
	switch backend {
	case "", BackendSlog:
		level := slog.LevelDebug
		if production {
			level = slog.LevelInfo
		}
		h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		return NewSlogLogger(slog.New(h)), nil
	case BackendZap:
		var (
			zl  *zap.Logger
			err error
		)
		if production {
			zl, err = zap.NewProduction()
		} else {
			zl, err = zap.NewDevelopment()
		}
		if err != nil {
			return nil, fmt.Errorf("zap init error: %w", err)
		}
		return NewZapLogger(zl), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}
