package services

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
)

const (
	titleMinLen        = 2
	titleMaxLen        = 100
	descriptionMaxLen  = 1000
	organizationMaxLen = 100
	remindDaysMax      = 30
	nameMaxLen         = 50
	emailMaxLen        = 254
	passwordMinLen     = 8
	// bcrypt ignores input past 72 bytes
	passwordMaxBytes = 72
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// validateEmail expects a bare, already normalised address.
func validateEmail(v *common.ValidationError, field, email string) {
	if email == "" {
		v.Add(field, "is required")
		return
	}
	if len(email) > emailMaxLen {
		v.Add(field, "is too long")
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		v.Add(field, "must be a valid email address")
		return
	}
	at := strings.LastIndexByte(email, '@')
	if at <= 0 || !strings.Contains(email[at+1:], ".") {
		v.Add(field, "must be a valid email address")
	}
}

// validatePassword applies the complexity policy: at least eight characters
// with an upper-case letter, a lower-case letter and a digit.
func validatePassword(v *common.ValidationError, field, password string) {
	if runeLen(password) < passwordMinLen {
		v.Add(field, "must be at least 8 characters long")
	}
	if len(password) > passwordMaxBytes {
		v.Add(field, "must be at most 72 bytes long")
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		v.Add(field, "must contain an upper-case letter")
	}
	if !lower {
		v.Add(field, "must contain a lower-case letter")
	}
	if !digit {
		v.Add(field, "must contain a digit")
	}
}

// validateText rejects values every backend cannot store the same way:
// PostgreSQL TEXT refuses NUL bytes and invalid UTF-8.
func validateText(v *common.ValidationError, field, s string) {
	if !utf8.ValidString(s) || strings.IndexByte(s, 0) >= 0 {
		v.Add(field, "must not contain NUL or invalid UTF-8 characters")
	}
}

func validateTitle(v *common.ValidationError, title string) {
	validateText(v, "title", title)
	if n := runeLen(title); n < titleMinLen || n > titleMaxLen {
		v.Add("title", "must be between 2 and 100 characters")
	}
}

func validateDescription(v *common.ValidationError, description string) {
	validateText(v, "description", description)
	if runeLen(description) > descriptionMaxLen {
		v.Add("description", "must be at most 1000 characters")
	}
}

func validateDate(v *common.ValidationError, field, date string) {
	if !models.ValidDate(date) {
		v.Add(field, "must be a date in YYYY-MM-DD format")
	}
}

// validateTime accepts the empty string as "no time".
func validateTime(v *common.ValidationError, tm string) {
	if tm != "" && !models.ValidTime(tm) {
		v.Add("time", "must be a time in HH:mm format")
	}
}

func validateType(v *common.ValidationError, t models.EventType) {
	if !t.Valid() {
		v.Add("type", "must be one of EXAM, DELIVERY, CLASS")
	}
}

func validateOrganization(v *common.ValidationError, field, org string) {
	validateText(v, field, org)
	if runeLen(org) > organizationMaxLen {
		v.Add(field, "must be at most 100 characters")
	}
}

func validateRemindDays(v *common.ValidationError, days *int) {
	if days != nil && (*days < 0 || *days > remindDaysMax) {
		v.Add("remindDays", "must be between 0 and 30")
	}
}
