// Package users stores user accounts. Three backends satisfy Repository:
// an in-memory store for development, PostgreSQL and MongoDB.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
)

// Repository persists user accounts keyed by a unique, lower-cased email.
//
// Lookups and updates that find nothing return common.ErrorNotFound.
// A duplicate email on Create or on an email update returns
// common.ErrorConflict.
type Repository interface {
	Create(ctx context.Context, user models.NewUser) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateByID(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
}
