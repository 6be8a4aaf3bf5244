// Package models holds the domain types shared by stores and services.
package models

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/mo"
)

// User is a registered account. PasswordHash never leaves the server; use
// Profile for anything that is sent to a client.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Organizations []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser carries the fields accepted when an account is created.
type NewUser struct {
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Organizations []string
}

// UserPatch lists the fields an update should change. Absent options are
// left untouched.
type UserPatch struct {
	Email         mo.Option[string]
	PasswordHash  mo.Option[string]
	FirstName     mo.Option[string]
	LastName      mo.Option[string]
	Organizations mo.Option[[]string]
}

// Apply copies the present fields of p onto u and stamps UpdatedAt.
func (p UserPatch) Apply(u *User, now time.Time) {
	if v, ok := p.Email.Get(); ok {
		u.Email = NormalizeEmail(v)
	}
	if v, ok := p.PasswordHash.Get(); ok {
		u.PasswordHash = v
	}
	if v, ok := p.FirstName.Get(); ok {
		u.FirstName = v
	}
	if v, ok := p.LastName.Get(); ok {
		u.LastName = v
	}
	if v, ok := p.Organizations.Get(); ok {
		u.Organizations = slices.Clone(v)
	}
	u.UpdatedAt = now
}

// Profile is the client-facing view of a User.
type Profile struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	Organizations []string  `json:"organizations"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Profile strips the password hash.
func (u *User) Profile() Profile {
	orgs := u.Organizations
	if orgs == nil {
		orgs = []string{}
	}
	return Profile{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Organizations: slices.Clone(orgs),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	c := *u
	c.Organizations = slices.Clone(u.Organizations)
	return &c
}

// NormalizeEmail trims and lower-cases an address; uniqueness of accounts
// is defined on the normalised form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity is the minimal user view returned by register and login.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity returns the id and email of u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}
