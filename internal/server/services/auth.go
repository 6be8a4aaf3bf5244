package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/auth"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/users"
)

// AuthResult is returned by a successful Register or Login.
type AuthResult struct {
	User  models.Identity `json:"user"`
	Token string          `json:"token"`
}

// AuthService registers users, checks credentials and resolves session
// tokens to user ids.
type AuthService struct {
	users  users.Repository
	hasher auth.PasswordHasher
	tokens *auth.TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users users.Repository, hasher auth.PasswordHasher, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = models.NormalizeEmail(email)

	v := &common.ValidationError{}
	validateEmail(v, "email", email)
	validatePassword(v, "password", password)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorConflict
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internalError("AUTH_REGISTER_FAILED", "find user by email", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, internalError("AUTH_REGISTER_FAILED", "hash password", err)
	}

	user, err := s.users.Create(ctx, models.NewUser{Email: email, PasswordHash: hash})
	if err != nil {
		return nil, passThrough("AUTH_REGISTER_FAILED", "create user", err, common.ErrorConflict)
	}

	return s.issue(user)
}

// Login checks credentials. An unknown email and a wrong password fail the
// same way, and both run one hash comparison.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = models.NormalizeEmail(email)

	v := &common.ValidationError{}
	validateEmail(v, "email", email)
	if password == "" {
		v.Add("password", "is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, internalError("AUTH_LOGIN_FAILED", "find user by email", err)
		}
		_, _ = s.hasher.Verify(password, s.dummyPasswordHash())
		return nil, common.ErrorUnauthorized
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, internalError("AUTH_LOGIN_FAILED", "verify password", err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(user)
}

// ResolveIdentity returns the user id asserted by a session token.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (string, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}
	return userID, nil
}

// TokenValidity is the lifetime of issued tokens and of the session cookie.
func (s *AuthService) TokenValidity() time.Duration {
	return s.tokens.Validity()
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, internalError("AUTH_TOKEN_FAILED", "issue token", err)
	}
	return &AuthResult{User: user.Identity(), Token: token}, nil
}

// dummyPasswordHash is compared against when the email is unknown. It is
// hashed once with the configured cost so both paths take the same time.
func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password-0")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
