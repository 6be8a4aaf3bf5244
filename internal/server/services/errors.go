// Package services holds the calendar's business logic: registration and
// login, event management scoped to the signed-in user, and profile upkeep.
// Services validate input before touching storage and reduce every failure to
// one of the common sentinel kinds.
package services

import (
	"errors"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/samber/oops"
)

// internalError tags an unexpected failure with an oops code and the
// operation that failed. errors.Is(err, common.ErrorInternal) holds for the
// result so the transport layer can answer with an opaque 500.
func internalError(code, operation string, err error) error {
	return oops.
		Code(code).
		With("operation", operation).
		Wrap(errors.Join(common.ErrorInternal, err))
}

// passThrough returns err unchanged when it is one of the kinds callers act
// on, and wraps anything else as internal.
func passThrough(code, operation string, err error, kinds ...error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return err
		}
	}
	return internalError(code, operation, err)
}
