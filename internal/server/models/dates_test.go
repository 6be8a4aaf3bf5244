package models

import (
	"testing"

	"github.com/dmitrijs2005/gophcalendar/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestValidDate(t *testing.T) {
	for in, want := range map[string]bool{
		"2024-01-15": true,
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-13-01": false,
		"2024-1-5":   false,
		"15-01-2024": false,
		"2024-01-1a": false,
		"":           false,
	} {
		assert.Equal(t, want, ValidDate(in), in)
	}
}

func TestValidTime(t *testing.T) {
	for in, want := range map[string]bool{
		"00:00": true,
		"09:30": true,
		"23:59": true,
		"24:00": false,
		"9:30":  false,
		"12:60": false,
		"12:5":  false,
		"":      false,
	} {
		assert.Equal(t, want, ValidTime(in), in)
	}
}

func TestCheckRange(t *testing.T) {
	assert.NoError(t, CheckRange("2024-01-01", "2024-01-31"))
	assert.ErrorIs(t, CheckRange("", "2024-01-31"), common.ErrInvalidRange)
	assert.ErrorIs(t, CheckRange("2024-01-01", "2024-02-30"), common.ErrInvalidRange)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange("2024-01-01", "2024-01-01", "2024-01-31"))
	assert.True(t, InRange("2024-01-31", "2024-01-01", "2024-01-31"))
	assert.False(t, InRange("2023-12-31", "2024-01-01", "2024-01-31"))
	assert.False(t, InRange("2024-02-01", "2024-01-01", "2024-01-31"))
}
