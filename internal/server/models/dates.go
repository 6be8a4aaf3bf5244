package models

import (
	"regexp"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(common.DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a 24h HH:mm time with a two-digit hour.
func ValidTime(s string) bool {
	return timeRe.MatchString(s)
}

// CheckRange returns common.ErrInvalidRange unless from and to are both
// valid dates. Bounds are inclusive; from > to is allowed and matches
// nothing.
func CheckRange(from, to string) error {
	if !ValidDate(from) || !ValidDate(to) {
		return common.ErrInvalidRange
	}
	return nil
}

// InRange reports whether date lies within the inclusive [from, to] range,
// comparing the fixed-width strings directly.
func InRange(date, from, to string) bool {
	return date >= from && date <= to
}
