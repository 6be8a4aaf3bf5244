// Package httpapi exposes the calendar services over a JSON HTTP API with
// cookie-based sessions.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/logging"
	"github.com/dmitrijs2005/gophcalendar/internal/server/config"
	"github.com/dmitrijs2005/gophcalendar/internal/server/observability"
	"github.com/dmitrijs2005/gophcalendar/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// StoreHealth is the part of the repository manager the health endpoint
// reports on.
type StoreHealth interface {
	Ping(ctx context.Context) error
	Backend() string
}

type Server struct {
	address       string
	logger        logging.Logger
	auth          *services.AuthService
	events        *services.EventService
	profiles      *services.ProfileService
	store         StoreHealth
	metrics       *observability.Metrics
	limiter       *fixedWindowLimiter
	corsOrigin    string
	secureCookies bool
	now           func() time.Time
}

func NewServer(
	cfg *config.Config,
	l logging.Logger,
	as *services.AuthService,
	es *services.EventService,
	ps *services.ProfileService,
	store StoreHealth,
	m *observability.Metrics,
) *Server {
	return &Server{
		address:       cfg.EndpointAddrHTTP,
		logger:        l.With("module", "http_server"),
		auth:          as,
		events:        es,
		profiles:      ps,
		store:         store,
		metrics:       m,
		limiter:       newFixedWindowLimiter(cfg.RateLimitWindow, cfg.RateLimitMax),
		corsOrigin:    cfg.CORSOrigin,
		secureCookies: cfg.SecureCookies(),
		now:           time.Now,
	}
}

// Handler builds the router with the full middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "DENY"))
	r.Use(corsHandler(s.corsOrigin))
	r.Use(s.rateLimit)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireIdentity)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", s.listEvents)
			r.Post("/", s.createEvent)
			r.Get("/export.ics", s.exportEvents)
			r.Get("/{id}", s.getEvent)
			r.Put("/{id}", s.updateEvent)
			r.Delete("/{id}", s.deleteEvent)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", s.getProfile)
			r.Put("/", s.updateProfile)
			r.Put("/password", s.changePassword)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
