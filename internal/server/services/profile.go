package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/auth"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/users"
	"github.com/samber/mo"
)

// ProfileUpdate lists the account fields a user may change. Absent options
// are left untouched.
type ProfileUpdate struct {
	FirstName     mo.Option[string]
	LastName      mo.Option[string]
	Email         mo.Option[string]
	Organizations mo.Option[[]string]
}

// ProfileService reads and updates the signed-in user's own account.
type ProfileService struct {
	users  users.Repository
	hasher auth.PasswordHasher
}

func NewProfileService(users users.Repository, hasher auth.PasswordHasher) *ProfileService {
	return &ProfileService{users: users, hasher: hasher}
}

// GetProfile returns the account without its password hash.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, passThrough("PROFILE_GET_FAILED", "find user", err, common.ErrorNotFound)
	}
	p := u.Profile()
	return &p, nil
}

// UpdateProfile changes names, email and organizations. Moving to an email
// held by another account fails with common.ErrorConflict.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*models.Profile, error) {
	patch := models.UserPatch{}
	v := &common.ValidationError{}

	if name, ok := in.FirstName.Get(); ok {
		name = strings.TrimSpace(name)
		validateText(v, "firstName", name)
		if runeLen(name) > nameMaxLen {
			v.Add("firstName", "must be at most 50 characters")
		}
		patch.FirstName = mo.Some(name)
	}
	if name, ok := in.LastName.Get(); ok {
		name = strings.TrimSpace(name)
		validateText(v, "lastName", name)
		if runeLen(name) > nameMaxLen {
			v.Add("lastName", "must be at most 50 characters")
		}
		patch.LastName = mo.Some(name)
	}
	if orgs, ok := in.Organizations.Get(); ok {
		cleaned := make([]string, 0, len(orgs))
		for _, o := range orgs {
			o = strings.TrimSpace(o)
			if o == "" {
				continue
			}
			validateOrganization(v, "organizations", o)
			cleaned = append(cleaned, o)
		}
		patch.Organizations = mo.Some(cleaned)
	}
	if email, ok := in.Email.Get(); ok {
		email = models.NormalizeEmail(email)
		validateEmail(v, "email", email)
		patch.Email = mo.Some(email)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if email, ok := patch.Email.Get(); ok {
		other, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != userID:
			return nil, common.ErrorConflict
		case err != nil && !errors.Is(err, common.ErrorNotFound):
			return nil, internalError("PROFILE_UPDATE_FAILED", "find user by email", err)
		}
	}

	u, err := s.users.UpdateByID(ctx, userID, patch)
	if err != nil {
		return nil, passThrough("PROFILE_UPDATE_FAILED", "update user", err,
			common.ErrorNotFound, common.ErrorConflict)
	}
	p := u.Profile()
	return &p, nil
}

// ChangePassword replaces the password after checking the current one. A
// wrong current password fails with common.ErrorUnauthorized and leaves the
// stored hash unchanged.
func (s *ProfileService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return common.NewValidationError("currentPassword", "is required")
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return passThrough("PROFILE_PASSWORD_FAILED", "find user", err, common.ErrorNotFound)
	}

	ok, err := s.hasher.Verify(currentPassword, u.PasswordHash)
	if err != nil {
		return internalError("PROFILE_PASSWORD_FAILED", "verify password", err)
	}
	if !ok {
		return common.ErrorUnauthorized
	}

	v := &common.ValidationError{}
	validatePassword(v, "newPassword", newPassword)
	if err := v.OrNil(); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return internalError("PROFILE_PASSWORD_FAILED", "hash password", err)
	}

	if _, err := s.users.UpdateByID(ctx, userID, models.UserPatch{PasswordHash: mo.Some(hash)}); err != nil {
		return passThrough("PROFILE_PASSWORD_FAILED", "update user", err, common.ErrorNotFound)
	}
	return nil
}
