package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/events"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/users"
)

// MemoryRepositoryManager holds process-local stores. Data is lost on exit.
type MemoryRepositoryManager struct {
	users  *users.MemoryRepository
	events *events.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:  users.NewMemoryRepository(),
		events: events.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository   { return m.users }
func (m *MemoryRepositoryManager) Events() events.Repository { return m.events }

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }
func (m *MemoryRepositoryManager) Ping(ctx context.Context) error          { return nil }
func (m *MemoryRepositoryManager) Backend() string                         { return BackendMemory }
func (m *MemoryRepositoryManager) Close(ctx context.Context) error         { return nil }
