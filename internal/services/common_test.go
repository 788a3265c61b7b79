package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateRange(t *testing.T) {
	start, end, err := normalizeDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)

	start, end, err = normalizeDateRange("2025-01-01", "")
	require.NoError(t, err)
	require.NotNil(t, start)
	assert.Equal(t, "2025-01-01", *start)
	assert.Nil(t, end)

	start, end, err = normalizeDateRange("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", *start)
	assert.Equal(t, "2025-01-31", *end)

	// Same-day ranges are a single inclusive calendar day.
	_, _, err = normalizeDateRange("2025-01-15", "2025-01-15")
	assert.NoError(t, err)
}

func TestNormalizeDateRangeErrors(t *testing.T) {
	_, _, err := normalizeDateRange("01/15/2025", "")
	assert.ErrorIs(t, err, ErrDateFormat)

	_, _, err = normalizeDateRange("", "2025-02-30")
	assert.ErrorIs(t, err, ErrDateFormat)

	_, _, err = normalizeDateRange("2025-06-02", "2025-06-01")
	assert.ErrorIs(t, err, ErrValidation)
}
