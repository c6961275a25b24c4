package dateparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medikids/clinic-api/pkg/errors"
)

func TestFlexibleISODate(t *testing.T) {
	got, err := Flexible("2024-03-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *got)
}

func TestFlexibleISODateTime(t *testing.T) {
	got, err := Flexible("2024-03-15T09:30:00")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestFlexibleDayMonthYear(t *testing.T) {
	got, err := Flexible("15/03/2024")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 15, got.Day())
	assert.Equal(t, 2024, got.Year())
}

func TestFlexibleEmptyIsNil(t *testing.T) {
	for _, in := range []string{"", "   "} {
		got, err := Flexible(in)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestFlexibleRejectsGarbage(t *testing.T) {
	for _, in := range []string{"15-03-2024", "yesterday", "2024/03/15"} {
		got, err := Flexible(in)
		assert.Nil(t, got)
		assert.True(t, apperrors.IsInvalidArgument(err), "input %q", in)
	}
}
