package httpapi

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
}

// health reports liveness and the configured backend. A failing store ping
// turns the answer into 503.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	resp := healthResponse{Status: "OK", Timestamp: s.now().UTC(), Database: s.store.Backend()}
	status := http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn(r.Context(), "store ping failed", "error", err)
		resp.Status = "UNAVAILABLE"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
