package logging

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDKey is the attribute name under which the request id is logged.
const RequestIDKey = "request_id"

// withRequestID appends the request id carried by ctx, if any.
func withRequestID(ctx context.Context, args []any) []any {
	if ctx == nil {
		return args
	}
	id := middleware.GetReqID(ctx)
	if id == "" {
		return args
	}
	out := make([]any, 0, len(args)+2)
	out = append(out, args...)
	return append(out, RequestIDKey, id)
}
