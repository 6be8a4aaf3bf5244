package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/dmitrijs2005/gophcalendar/internal/server/repositories/events"
	"github.com/emersion/go-ical"
)

// calendarProductID identifies exported calendars.
const calendarProductID = "-//gophcalendar//Event Export//EN"

// EventService manages events on behalf of an already resolved owner. Every
// call is scoped to ownerID; other users' events behave as absent.
type EventService struct {
	events events.Repository
}

func NewEventService(events events.Repository) *EventService {
	return &EventService{events: events}
}

// List returns the owner's events dated within [from, to].
func (s *EventService) List(ctx context.Context, ownerID, from, to string) ([]*models.Event, error) {
	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	list, err := s.events.FindByUserAndDateRange(ctx, ownerID, from, to)
	if err != nil {
		if errors.Is(err, common.ErrInvalidRange) {
			return nil, common.NewValidationError("from", "invalid date range")
		}
		return nil, internalError("EVENT_LIST_FAILED", "find events by range", err)
	}
	return list, nil
}

func validateRange(from, to string) error {
	v := &common.ValidationError{}
	if from == "" {
		v.Add("from", "is required")
	} else {
		validateDate(v, "from", from)
	}
	if to == "" {
		v.Add("to", "is required")
	} else {
		validateDate(v, "to", to)
	}
	if !v.HasErrors() && from > to {
		v.Add("to", "must not be before from")
	}
	return v.OrNil()
}

// Get returns one of the owner's events.
func (s *EventService) Get(ctx context.Context, ownerID, eventID string) (*models.Event, error) {
	e, err := s.events.FindByIDAndUser(ctx, eventID, ownerID)
	if err != nil {
		return nil, passThrough("EVENT_GET_FAILED", "find event", err, common.ErrorNotFound)
	}
	return e, nil
}

// Create validates every field of in and stores a new event owned by
// ownerID. in.UserID is ignored.
func (s *EventService) Create(ctx context.Context, ownerID string, in models.NewEvent) (*models.Event, error) {
	in.UserID = ownerID
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Organization = strings.TrimSpace(in.Organization)

	v := &common.ValidationError{}
	validateTitle(v, in.Title)
	validateDescription(v, in.Description)
	if in.Date == "" {
		v.Add("date", "is required")
	} else {
		validateDate(v, "date", in.Date)
	}
	validateTime(v, in.Time)
	validateType(v, in.Type)
	validateOrganization(v, "organization", in.Organization)
	validateRemindDays(v, in.RemindDays)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	e, err := s.events.Create(ctx, in)
	if err != nil {
		return nil, internalError("EVENT_CREATE_FAILED", "create event", err)
	}
	return e, nil
}

// Update applies the present fields of patch to one of the owner's events.
// Present fields are validated as on Create; an empty description, time or
// organization clears it.
func (s *EventService) Update(ctx context.Context, ownerID, eventID string, patch models.EventPatch) (*models.Event, error) {
	patch.Title = patch.Title.Map(trimOption)
	patch.Description = patch.Description.Map(trimOption)
	patch.Organization = patch.Organization.Map(trimOption)

	v := &common.ValidationError{}
	if t, ok := patch.Title.Get(); ok {
		validateTitle(v, t)
	}
	if d, ok := patch.Description.Get(); ok {
		validateDescription(v, d)
	}
	if d, ok := patch.Date.Get(); ok {
		validateDate(v, "date", d)
	}
	if t, ok := patch.Time.Get(); ok {
		validateTime(v, t)
	}
	if t, ok := patch.Type.Get(); ok {
		validateType(v, t)
	}
	if o, ok := patch.Organization.Get(); ok {
		validateOrganization(v, "organization", o)
	}
	if r, ok := patch.RemindDays.Get(); ok {
		validateRemindDays(v, r)
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	e, err := s.events.UpdateByIDAndUser(ctx, eventID, ownerID, patch)
	if err != nil {
		return nil, passThrough("EVENT_UPDATE_FAILED", "update event", err, common.ErrorNotFound)
	}
	return e, nil
}

func trimOption(s string) (string, bool) {
	return strings.TrimSpace(s), true
}

// Delete soft-deletes one of the owner's events. Deleting an absent or
// already deleted event fails with common.ErrorNotFound.
func (s *EventService) Delete(ctx context.Context, ownerID, eventID string) error {
	ok, err := s.events.DeleteByIDAndUser(ctx, eventID, ownerID)
	if err != nil {
		return internalError("EVENT_DELETE_FAILED", "delete event", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}

// Export renders the owner's events in [from, to] as an iCalendar document.
// It returns a nil document and a zero count when the range is empty.
func (s *EventService) Export(ctx context.Context, ownerID, from, to string) ([]byte, int, error) {
	list, err := s.List(ctx, ownerID, from, to)
	if err != nil {
		return nil, 0, err
	}
	if len(list) == 0 {
		return nil, 0, nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, calendarProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	for _, e := range list {
		cal.Children = append(cal.Children, eventComponent(e))
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, internalError("EVENT_EXPORT_FAILED", "encode calendar", err)
	}
	return buf.Bytes(), len(list), nil
}

// eventComponent maps an event to a VEVENT. Untimed events become all-day
// DATE values; timed events use a floating local DATE-TIME.
func eventComponent(e *models.Event) *ical.Component {
	comp := ical.NewComponent(ical.CompEvent)
	comp.Props.SetText(ical.PropUID, e.ID)
	comp.Props.SetText(ical.PropSummary, e.Title)
	if e.Description != "" {
		comp.Props.SetText(ical.PropDescription, e.Description)
	}
	comp.Props.SetText(ical.PropCategories, string(e.Type))
	if e.Organization != "" {
		comp.Props.SetText(ical.PropLocation, e.Organization)
	}
	comp.Props.SetDateTime(ical.PropDateTimeStamp, e.UpdatedAt.UTC())

	start := ical.NewProp(ical.PropDateTimeStart)
	day, _ := time.Parse(common.DateLayout, e.Date)
	if e.Time == "" {
		start.SetDate(day)
	} else {
		start.SetValueType(ical.ValueDateTime)
		start.Value = day.Format("20060102") + "T" + strings.ReplaceAll(e.Time, ":", "") + "00"
	}
	comp.Props.Set(start)

	return comp
}
