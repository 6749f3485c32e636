package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseDate parses an RFC3339 or date-only query value.
func ParseDate(value string, defaultValue time.Time) time.Time {
	if value == "" {
		return defaultValue
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}

	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t
	}

	return defaultValue
}
