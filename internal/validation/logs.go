package validation

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all date fields.
const DateLayout = "2006-01-02"

// TimeLayout is the wire format for feeding times.
const TimeLayout = "15:04"

// ParseDate parses a required YYYY-MM-DD field. The label names the field in
// the error message.
func ParseDate(label, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", label)
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be YYYY-MM-DD", label)
	}
	return t, nil
}

// ParseOptionalDate parses a YYYY-MM-DD field that may be absent. Returns nil
// when value is empty.
func ParseOptionalDate(label, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseDate(label, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ValidateFeedingTime checks an optional HH:MM field.
func ValidateFeedingTime(value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(TimeLayout, value); err != nil {
		return fmt.Errorf("feeding_time must be HH:MM")
	}
	return nil
}

// ValidatePositive checks that a required numeric field is strictly positive.
func ValidatePositive(label string, value float64) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", label)
	}
	return nil
}

// ValidateOptionalPositive checks that a numeric field, when present, is
// strictly positive.
func ValidateOptionalPositive(label string, value *float64) error {
	if value == nil {
		return nil
	}
	return ValidatePositive(label, *value)
}
