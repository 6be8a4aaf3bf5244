package users

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in a growth-only slice indexed by id and
// email. The email check and the insert happen under one lock, so two
// concurrent registrations with the same address cannot both succeed.
type MemoryRepository struct {
	mu      sync.RWMutex
	items   []*models.User
	byID    map[string]int
	byEmail map[string]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]int),
		byEmail: make(map[string]int),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, nu models.NewUser) (*models.User, error) {
	email := models.NormalizeEmail(nu.Email)
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[email]; taken {
		return nil, common.ErrorConflict
	}

	u := &models.User{
		ID:            uuid.NewString(),
		Email:         email,
		PasswordHash:  nu.PasswordHash,
		FirstName:     nu.FirstName,
		LastName:      nu.LastName,
		Organizations: slices.Clone(nu.Organizations),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.items = append(r.items, u)
	idx := len(r.items) - 1
	r.byID[u.ID] = idx
	r.byEmail[email] = idx

	return u.Clone(), nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.items[idx].Clone(), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.items[idx].Clone(), nil
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	current := r.items[idx]
	oldEmail := current.Email

	updated := current.Clone()
	patch.Apply(updated, time.Now().UTC())

	if updated.Email != oldEmail {
		if other, taken := r.byEmail[updated.Email]; taken && other != idx {
			return nil, common.ErrorConflict
		}
		delete(r.byEmail, oldEmail)
		r.byEmail[updated.Email] = idx
	}

	r.items[idx] = updated
	return updated.Clone(), nil
}
