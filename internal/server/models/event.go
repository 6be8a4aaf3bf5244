package models

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/mo"
)

// EventType is the closed set of event kinds.
type EventType string

const (
	EventTypeExam     EventType = "EXAM"
	EventTypeDelivery EventType = "DELIVERY"
	EventTypeClass    EventType = "CLASS"
)

// EventTypes lists every valid EventType.
func EventTypes() []EventType {
	return []EventType{EventTypeExam, EventTypeDelivery, EventTypeClass}
}

// Valid reports whether t is one of EventTypes.
func (t EventType) Valid() bool {
	return slices.Contains(EventTypes(), t)
}

// Event is a dated calendar entry owned by a single user. Date and Time are
// fixed-width strings (YYYY-MM-DD, HH:mm) and are compared as strings.
type Event struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Date         string     `json:"date"`
	Time         string     `json:"time,omitempty"`
	Type         EventType  `json:"type"`
	Organization string     `json:"organization,omitempty"`
	RemindDays   *int       `json:"remindDays,omitempty"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Deleted reports whether the event has been soft-deleted.
func (e *Event) Deleted() bool {
	return e.DeletedAt != nil
}

// Clone returns a deep copy of e.
func (e *Event) Clone() *Event {
	c := *e
	if e.RemindDays != nil {
		v := *e.RemindDays
		c.RemindDays = &v
	}
	if e.DeletedAt != nil {
		v := *e.DeletedAt
		c.DeletedAt = &v
	}
	return &c
}

// NewEvent carries the fields accepted when an event is created.
type NewEvent struct {
	UserID       string
	Title        string
	Description  string
	Date         string
	Time         string
	Type         EventType
	Organization string
	RemindDays   *int
}

// EventPatch lists the fields an update should change. For the optional
// string fields an empty value clears the field; Some(nil) clears
// RemindDays. Owner, ids, timestamps and deletion state are not patchable.
type EventPatch struct {
	Title        mo.Option[string]
	Description  mo.Option[string]
	Date         mo.Option[string]
	Time         mo.Option[string]
	Type         mo.Option[EventType]
	Organization mo.Option[string]
	RemindDays   mo.Option[*int]
}

// Apply copies the present fields of p onto e and stamps UpdatedAt.
func (p EventPatch) Apply(e *Event, now time.Time) {
	if v, ok := p.Title.Get(); ok {
		e.Title = v
	}
	if v, ok := p.Description.Get(); ok {
		e.Description = v
	}
	if v, ok := p.Date.Get(); ok {
		e.Date = v
	}
	if v, ok := p.Time.Get(); ok {
		e.Time = v
	}
	if v, ok := p.Type.Get(); ok {
		e.Type = v
	}
	if v, ok := p.Organization.Get(); ok {
		e.Organization = v
	}
	if v, ok := p.RemindDays.Get(); ok {
		if v == nil {
			e.RemindDays = nil
		} else {
			n := *v
			e.RemindDays = &n
		}
	}
	e.UpdatedAt = now
}

// untimedSentinel is the sort key used for events without a time.
const untimedSentinel = "00:00"

// CompareEvents orders events ascending by date, then by time. An event
// without a time sorts as "00:00" and before a timed event at "00:00".
func CompareEvents(a, b *Event) int {
	if c := cmp.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	if c := cmp.Compare(sortTime(a), sortTime(b)); c != 0 {
		return c
	}
	switch {
	case a.Time == "" && b.Time != "":
		return -1
	case a.Time != "" && b.Time == "":
		return 1
	}
	return 0
}

func sortTime(e *Event) string {
	if e.Time == "" {
		return untimedSentinel
	}
	return e.Time
}

// SortEvents sorts events in place with CompareEvents. Ties keep their
// original relative order.
func SortEvents(events []*Event) {
	slices.SortStableFunc(events, CompareEvents)
}
