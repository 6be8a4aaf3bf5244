// Package common contains shared constants and sentinel errors used across
// GophCalendar components.
package common

import "time"

// TokenCookieName is the HTTP cookie that carries the session token.
const TokenCookieName = "token"

// DefaultTokenValidity is the lifetime of an issued session token.
const DefaultTokenValidity = 7 * 24 * time.Hour

// DateLayout and TimeLayout are the fixed-width formats events are stored in.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
