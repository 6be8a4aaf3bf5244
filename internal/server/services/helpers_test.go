package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/server/auth"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	postgresDSNEnv = "GOPHCAL_TEST_POSTGRES_DSN"
	mongoURIEnv    = "GOPHCAL_TEST_MONGO_URI"
	testSecret     = "test-secret"
)

// plainHasher keeps unit tests fast; bcrypt itself is covered in package auth.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "plain:" + p, nil }
func (plainHasher) Verify(p, h string) (bool, error) {
	if !strings.HasPrefix(h, "plain:") {
		return false, errors.New("malformed hash")
	}
	return h == "plain:"+p, nil
}

// countingHasher records how many comparisons Login performs.
type countingHasher struct {
	plainHasher
	verifies int
}

func (c *countingHasher) Verify(p, h string) (bool, error) {
	c.verifies++
	return c.plainHasher.Verify(p, h)
}

type fixture struct {
	manager  repomanager.RepositoryManager
	tokens   *auth.TokenIssuer
	auth     *AuthService
	events   *EventService
	profiles *ProfileService
}

func newFixture(m repomanager.RepositoryManager, hasher auth.PasswordHasher) *fixture {
	tokens := auth.NewTokenIssuer(testSecret, 7*24*time.Hour)
	return &fixture{
		manager:  m,
		tokens:   tokens,
		auth:     NewAuthService(m.Users(), hasher, tokens),
		events:   NewEventService(m.Events()),
		profiles: NewProfileService(m.Users(), hasher),
	}
}

// forEachBackend runs fn against the in-memory store and, when configured
// through the environment, against PostgreSQL and MongoDB.
func forEachBackend(t *testing.T, fn func(t *testing.T, f *fixture)) {
	t.Helper()

	t.Run(repomanager.BackendMemory, func(t *testing.T) {
		fn(t, newFixture(repomanager.NewMemoryRepositoryManager(), plainHasher{}))
	})

	for _, b := range []struct{ name, env string }{
		{repomanager.BackendPostgres, postgresDSNEnv},
		{repomanager.BackendMongo, mongoURIEnv},
	} {
		t.Run(b.name, func(t *testing.T) {
			dsn := os.Getenv(b.env)
			if dsn == "" {
				t.Skipf("%s is not set", b.env)
			}
			ctx := context.Background()
			m, err := repomanager.New(ctx, dsn)
			require.NoError(t, err)
			t.Cleanup(func() { _ = m.Close(ctx) })
			require.NoError(t, m.RunMigrations(ctx))

			fn(t, newFixture(m, plainHasher{}))
		})
	}
}

// uniqueEmail keeps runs against shared databases independent.
func uniqueEmail(name string) string {
	return name + "-" + uuid.NewString()[:8] + "@example.com"
}

func register(t *testing.T, f *fixture, email, password string) *AuthResult {
	t.Helper()
	res, err := f.auth.Register(context.Background(), email, password)
	require.NoError(t, err)
	return res
}

func createEvent(t *testing.T, f *fixture, ownerID string, in models.NewEvent) *models.Event {
	t.Helper()
	e, err := f.events.Create(context.Background(), ownerID, in)
	require.NoError(t, err)
	return e
}
