// Package repomanager selects the storage backend at process start and vends
// the user and event repositories bound to it.
package repomanager

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/users"
)

// Backend names reported by RepositoryManager.Backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongodb"
)

// RepositoryManager owns one backend connection and the repositories that use
// it. The repositories behave identically whichever backend is selected.
type RepositoryManager interface {
	Users() users.Repository
	Events() events.Repository
	// RunMigrations prepares the schema: goose migrations for PostgreSQL,
	// indexes for MongoDB, nothing for the in-memory store.
	RunMigrations(ctx context.Context) error
	Ping(ctx context.Context) error
	Backend() string
	Close(ctx context.Context) error
}

// New picks a backend from dsn: empty selects the in-memory store,
// mongodb:// and mongodb+srv:// select MongoDB, postgres:// and
// postgresql:// select PostgreSQL.
func New(ctx context.Context, dsn string) (RepositoryManager, error) {
	switch {
	case dsn == "":
		return NewMemoryRepositoryManager(), nil
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return NewMongoRepositoryManager(ctx, dsn)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgresRepositoryManager(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database dsn scheme: %q", schemeOf(dsn))
	}
}

func schemeOf(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i]
	}
	return ""
}
