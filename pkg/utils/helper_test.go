package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 10, ParseInt("", 10))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
	assert.Equal(t, 25, ParseInt("25", 10))
}

func TestParseDate(t *testing.T) {
	fallback := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, fallback, ParseDate("", fallback))
	assert.Equal(t, fallback, ParseDate("not-a-date", fallback))

	assert.Equal(t,
		time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		ParseDate("2026-03-15", fallback))

	assert.Equal(t,
		time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
		ParseDate("2026-03-15T14:30:00Z", fallback))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(1, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 0, CalculateTotalPages(100, 0))
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, CalculateOffset(0, 10))
	assert.Equal(t, 0, CalculateOffset(1, 10))
	assert.Equal(t, 10, CalculateOffset(2, 10))
	assert.Equal(t, 40, CalculateOffset(5, 10))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
}
