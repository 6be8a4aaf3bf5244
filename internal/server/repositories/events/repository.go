// Package events stores calendar events. Every operation is scoped to the
// owning user and ignores soft-deleted events.
package events

import (
	"context"

	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
)

// Repository persists events. An event that does not exist, belongs to
// another user or has been soft-deleted is reported the same way:
// common.ErrorNotFound from the find/update methods and false from
// DeleteByIDAndUser.
type Repository interface {
	Create(ctx context.Context, event models.NewEvent) (*models.Event, error)
	// FindByUserAndDateRange returns the owner's live events whose date lies
	// in [from, to], ordered with models.CompareEvents. Malformed bounds
	// return common.ErrInvalidRange.
	FindByUserAndDateRange(ctx context.Context, userID, from, to string) ([]*models.Event, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*models.Event, error)
	UpdateByIDAndUser(ctx context.Context, id, userID string, patch models.EventPatch) (*models.Event, error)
	DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error)
}
