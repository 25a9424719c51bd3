package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		got, err := ParseDate("date", "2026-08-28")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), got)
	})

	tests := []struct {
		name   string
		value  string
		errMsg string
	}{
		{"Empty", "", "date is required"},
		{"Wrong Layout", "28/08/2026", "date must be YYYY-MM-DD"},
		{"Garbage", "yesterday", "date must be YYYY-MM-DD"},
		{"Impossible Day", "2026-02-31", "date must be YYYY-MM-DD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate("date", tt.value)
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("next_due_date", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("next_due_date", "2027-01-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2027, got.Year())

	_, err = ParseOptionalDate("next_due_date", "soon")
	assert.Error(t, err)
}

func TestValidateFeedingTime(t *testing.T) {
	assert.NoError(t, ValidateFeedingTime(""))
	assert.NoError(t, ValidateFeedingTime("08:30"))
	assert.NoError(t, ValidateFeedingTime("23:59"))
	assert.Error(t, ValidateFeedingTime("25:99"))
	assert.Error(t, ValidateFeedingTime("8am"))
}

func TestValidatePositive(t *testing.T) {
	assert.NoError(t, ValidatePositive("weight_kg", 0.1))
	assert.Error(t, ValidatePositive("weight_kg", 0))
	assert.Error(t, ValidatePositive("weight_kg", -4.2))

	amount := 250.0
	assert.NoError(t, ValidateOptionalPositive("food_amount", &amount))
	assert.NoError(t, ValidateOptionalPositive("food_amount", nil))
	zero := 0.0
	assert.Error(t, ValidateOptionalPositive("food_amount", &zero))
}
