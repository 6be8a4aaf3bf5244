package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type createEventRequest struct {
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Date         string           `json:"date"`
	Time         string           `json:"time"`
	Type         models.EventType `json:"type"`
	Organization string           `json:"organization"`
	RemindDays   *int             `json:"remindDays"`
}

type updateEventRequest struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Date         *string           `json:"date"`
	Time         *string           `json:"time"`
	Type         *models.EventType `json:"type"`
	Organization *string           `json:"organization"`
	RemindDays   nullable[int]     `json:"remindDays"`
}

func (req updateEventRequest) patch() models.EventPatch {
	return models.EventPatch{
		Title:        optionOf(req.Title),
		Description:  optionOf(req.Description),
		Date:         optionOf(req.Date),
		Time:         optionOf(req.Time),
		Type:         optionOf(req.Type),
		Organization: optionOf(req.Organization),
		RemindDays:   req.RemindDays.option(),
	}
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	list, err := s.events.List(r.Context(), userIDFromContext(r.Context()), q.Get("from"), q.Get("to"))
	if err != nil {
		s.writeError(w, r, err, http.StatusBadRequest)
		return
	}
	if list == nil {
		list = []*models.Event{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) exportEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	doc, n, err := s.events.Export(r.Context(), userIDFromContext(r.Context()), q.Get("from"), q.Get("to"))
	if err != nil {
		s.writeError(w, r, err, http.StatusBadRequest)
		return
	}
	if n == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="gophcalendar.ics"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := s.events.Get(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (s *Server) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	e, err := s.events.Create(r.Context(), userIDFromContext(r.Context()), models.NewEvent{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Time:         req.Time,
		Type:         req.Type,
		Organization: req.Organization,
		RemindDays:   req.RemindDays,
	})
	if err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusCreated, e)
}

func (s *Server) updateEvent(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	e, err := s.events.Update(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"), req.patch())
	if err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.events.Delete(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
