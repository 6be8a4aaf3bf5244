// Package auth implements the credential primitives of the calendar server:
// password hashing, signed session tokens and their cookie transport.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the standard registered claims plus the id
// of the user the token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// GenerateToken signs an HS256 token for userID that expires after
// validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken checks signature and expiry of tokenString and returns
// the user id it asserts. Expired tokens yield common.ErrTokenExpired, every
// other failure common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// TokenIssuer issues and verifies session tokens with a process-wide
// secret. Tokens are stateless: there is no server-side revocation.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
}

// NewTokenIssuer returns an issuer signing with secret. A non-positive
// validity falls back to common.DefaultTokenValidity.
func NewTokenIssuer(secret string, validity time.Duration) *TokenIssuer {
	if validity <= 0 {
		validity = common.DefaultTokenValidity
	}
	return &TokenIssuer{secret: []byte(secret), validity: validity}
}

// Issue returns a signed token asserting userID.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	return GenerateToken(userID, i.secret, i.validity)
}

// Verify returns the user id asserted by token.
func (i *TokenIssuer) Verify(token string) (string, error) {
	if token == "" {
		return "", common.ErrInvalidToken
	}
	return GetUserIDFromToken(token, i.secret)
}

// Validity is the lifetime of issued tokens.
func (i *TokenIssuer) Validity() time.Duration {
	return i.validity
}
