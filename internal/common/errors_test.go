package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_CollectsAllFields(t *testing.T) {
	var v ValidationError
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.OrNil())

	v.Add("title", "too short")
	v.Add("date", "bad format")

	err := v.OrNil()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrorValidation))
	assert.Equal(t, "validation error: title: too short; date: bad format", err.Error())
}

func TestValidationError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create event: %w", NewValidationError("type", "unknown"))

	assert.ErrorIs(t, err, ErrorValidation)
	assert.NotErrorIs(t, err, ErrorNotFound)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []FieldError{{Field: "type", Message: "unknown"}}, ve.Fields)
}

func TestValidationError_NilReceiver(t *testing.T) {
	var v *ValidationError
	assert.False(t, v.HasErrors())
}
