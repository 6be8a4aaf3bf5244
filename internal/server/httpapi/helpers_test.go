package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/logging"
	"github.com/dmitrijs2005/gophcalendar/internal/server/auth"
	"github.com/dmitrijs2005/gophcalendar/internal/server/config"
	"github.com/dmitrijs2005/gophcalendar/internal/server/observability"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcalendar/internal/server/services"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	backend string
	err     error
}

func (s stubStore) Ping(context.Context) error { return s.err }
func (s stubStore) Backend() string            { return s.backend }

func testConfig() *config.Config {
	var c config.Config
	c.LoadDefaults()
	c.BcryptCost = auth.MinCost
	c.RateLimitMax = 0
	return &c
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestServer wires the HTTP layer to the in-memory store.
func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.SecretKey, cfg.TokenValidityDuration)

	return NewServer(cfg, discardLogger(),
		services.NewAuthService(m.Users(), hasher, tokens),
		services.NewEventService(m.Events()),
		services.NewProfileService(m.Users(), hasher),
		m,
		observability.NewMetrics(),
	)
}

// client is a cookie-keeping HTTP client bound to a test server.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T, s *Server) *client {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar, Timeout: 10 * time.Second}}
}

func (c *client) do(method, path string, body any) *http.Response {
	c.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (c *client) register(email, password string) services.AuthResult {
	c.t.Helper()
	resp := c.do(http.MethodPost, "/auth/register", map[string]string{"email": email, "password": password})
	require.Equal(c.t, http.StatusCreated, resp.StatusCode)
	return decode[services.AuthResult](c.t, resp)
}
