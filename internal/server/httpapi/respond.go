package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/dmitrijs2005/gophcalendar/internal/logging"
)

const internalErrorMessage = "internal server error"

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error   string              `json:"error"`
	Details []common.FieldError `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string, details []common.FieldError) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

// writeError maps a service error onto the HTTP status convention.
// validationStatus is 422 for request bodies and 400 for query parameters.
// Anything unclassified is logged and answered with an opaque 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, validationStatus int) {
	var v *common.ValidationError
	switch {
	case errors.As(err, &v):
		writeJSONError(w, validationStatus, "invalid data", v.Fields)
	case errors.Is(err, common.ErrorValidation):
		writeJSONError(w, validationStatus, "invalid data", nil)
	case errors.Is(err, common.ErrorUnauthorized):
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, common.ErrorNotFound):
		writeJSONError(w, http.StatusNotFound, "not found", nil)
	case errors.Is(err, common.ErrorConflict):
		writeJSONError(w, http.StatusConflict, "email already in use", nil)
	default:
		logging.LogError(r.Context(), s.logger, "request failed", err)
		writeJSONError(w, http.StatusInternalServerError, internalErrorMessage, nil)
	}
}

// decodeJSON reads a single JSON object into dst. Unknown fields, trailing
// data and bodies over maxBodyBytes are rejected as validation failures.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return bodyError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return common.NewValidationError("body", "must contain a single JSON object")
	}
	return nil
}

func bodyError(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		maxBytesErr *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return common.NewValidationError("body", "must not be empty")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return common.NewValidationError("body", "is not valid JSON")
	case errors.As(err, &typeErr):
		return common.NewValidationError(typeErr.Field, fmt.Sprintf("must be a %s", jsonKind(typeErr.Type.Kind().String())))
	case errors.As(err, &maxBytesErr):
		return common.NewValidationError("body", "is too large")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return common.NewValidationError(field, "is not allowed")
	}
	return common.NewValidationError("body", "is not valid JSON")
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "slice", "array":
		return "list"
	case "int", "int64", "float64":
		return "number"
	case "struct", "map":
		return "object"
	}
	return goKind
}
