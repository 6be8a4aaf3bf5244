package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophcalendar/internal/server/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	res, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", res.User.ID)
	auth.SetTokenCookie(w, res.Token, s.auth.TokenValidity(), s.secureCookies)
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	res, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, http.StatusUnprocessableEntity)
		return
	}

	auth.SetTokenCookie(w, res.Token, s.auth.TokenValidity(), s.secureCookies)
	writeJSON(w, http.StatusOK, res)
}

// logout only clears the cookie; issued tokens stay valid until expiry.
func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	auth.ClearTokenCookie(w, s.secureCookies)
	w.WriteHeader(http.StatusNoContent)
}
