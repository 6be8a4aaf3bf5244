package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophcalendar/internal/server/models"
	"github.com/dmitrijs2005/gophcalendar/internal/server/services"
)

type profileResponse struct {
	User *models.Profile `json:"user"`
}

type updateProfileRequest struct {
	FirstName     *string   `json:"firstName"`
	LastName      *string   `json:"lastName"`
	Email         *string   `json:"email"`
	Organizations *[]string `json:"organizations"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profiles.GetProfile(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{User: p})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	p, err := s.profiles.UpdateProfile(r.Context(), userIDFromContext(r.Context()), services.ProfileUpdate{
		FirstName:     optionOf(req.FirstName),
		LastName:      optionOf(req.LastName),
		Email:         optionOf(req.Email),
		Organizations: optionOf(req.Organizations),
	})
	if err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{User: p})
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	err := s.profiles.ChangePassword(r.Context(), userIDFromContext(r.Context()), req.CurrentPassword, req.NewPassword)
	if err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "password updated"})
}
