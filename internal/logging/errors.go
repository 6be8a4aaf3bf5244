package logging

import (
	"context"

	"github.com/samber/oops"
)

// LogError logs err at error level. For oops errors the code and the
// attached context map are logged as separate attributes.
func LogError(ctx context.Context, l Logger, msg string, err error) {
	if oopsErr, ok := oops.AsOops(err); ok {
		args := []any{"error", oopsErr.Error()}
		if code := oopsErr.Code(); code != nil {
			args = append(args, "code", code)
		}
		if c := oopsErr.Context(); len(c) > 0 {
			args = append(args, "context", c)
		}
		l.Error(ctx, msg, args...)
		return
	}
	l.Error(ctx, msg, "error", err)
}
