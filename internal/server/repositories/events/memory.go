package events

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps events in a growth-only slice with an id index.
// Deletes are soft, so slots are never reused.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []*models.Event
	byID  map[string]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]int)}
}

func (r *MemoryRepository) Create(ctx context.Context, ne models.NewEvent) (*models.Event, error) {
	now := time.Now().UTC()
	e := &models.Event{
		ID:           uuid.NewString(),
		UserID:       ne.UserID,
		Title:        ne.Title,
		Description:  ne.Description,
		Date:         ne.Date,
		Time:         ne.Time,
		Type:         ne.Type,
		Organization: ne.Organization,
		RemindDays:   ne.RemindDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	e = e.Clone()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, e)
	r.byID[e.ID] = len(r.items) - 1

	return e.Clone(), nil
}

func (r *MemoryRepository) FindByUserAndDateRange(ctx context.Context, userID, from, to string) ([]*models.Event, error) {
	if err := models.CheckRange(from, to); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Event, 0)
	for _, e := range r.items {
		if e.UserID != userID || e.Deleted() || !models.InRange(e.Date, from, to) {
			continue
		}
		result = append(result, e.Clone())
	}
	models.SortEvents(result)

	return result, nil
}

// live returns the stored event if it is visible to userID. Callers hold mu.
func (r *MemoryRepository) live(id, userID string) (int, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return 0, false
	}
	e := r.items[idx]
	if e.UserID != userID || e.Deleted() {
		return 0, false
	}
	return idx, true
}

func (r *MemoryRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.live(id, userID)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.items[idx].Clone(), nil
}

func (r *MemoryRepository) UpdateByIDAndUser(ctx context.Context, id, userID string, patch models.EventPatch) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.live(id, userID)
	if !ok {
		return nil, common.ErrorNotFound
	}

	updated := r.items[idx].Clone()
	patch.Apply(updated, time.Now().UTC())
	r.items[idx] = updated

	return updated.Clone(), nil
}

func (r *MemoryRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.live(id, userID)
	if !ok {
		return false, nil
	}

	now := time.Now().UTC()
	deleted := r.items[idx].Clone()
	deleted.DeletedAt = &now
	deleted.UpdatedAt = now
	r.items[idx] = deleted

	return true, nil
}
