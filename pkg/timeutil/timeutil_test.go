package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCeilToNextQuarterHour(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected time.Time
	}{
		{
			name:     "exact quarter boundary unchanged",
			input:    time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
			expected: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "seconds zeroed before rounding",
			input:    time.Date(2026, 1, 10, 9, 0, 30, 0, time.UTC),
			expected: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "nanoseconds zeroed before rounding",
			input:    time.Date(2026, 1, 10, 9, 15, 0, 999, time.UTC),
			expected: time.Date(2026, 1, 10, 9, 15, 0, 0, time.UTC),
		},
		{
			name:     "one minute past rounds up",
			input:    time.Date(2026, 1, 10, 9, 1, 0, 0, time.UTC),
			expected: time.Date(2026, 1, 10, 9, 15, 0, 0, time.UTC),
		},
		{
			name:     "mid quarter rounds up",
			input:    time.Date(2026, 1, 10, 9, 22, 45, 0, time.UTC),
			expected: time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "last quarter rolls into next hour",
			input:    time.Date(2026, 1, 10, 9, 46, 0, 0, time.UTC),
			expected: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "end of day rolls into next day",
			input:    time.Date(2026, 1, 10, 23, 50, 0, 0, time.UTC),
			expected: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "non-UTC input converted",
			input:    time.Date(2026, 1, 10, 12, 7, 0, 0, time.FixedZone("MSK", 3*60*60)),
			expected: time.Date(2026, 1, 10, 9, 15, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CeilToNextQuarterHour(tt.input))
		})
	}
}

func TestTruncateToHour(t *testing.T) {
	input := time.Date(2026, 1, 10, 9, 47, 13, 500, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC), TruncateToHour(input))

	boundary := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, boundary, TruncateToHour(boundary))
}

func TestIsQuarterAligned(t *testing.T) {
	assert.True(t, IsQuarterAligned(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, IsQuarterAligned(time.Date(2026, 1, 10, 9, 45, 0, 0, time.UTC)))
	assert.False(t, IsQuarterAligned(time.Date(2026, 1, 10, 9, 7, 0, 0, time.UTC)))
	assert.False(t, IsQuarterAligned(time.Date(2026, 1, 10, 9, 15, 30, 0, time.UTC)))
	assert.False(t, IsQuarterAligned(time.Date(2026, 1, 10, 9, 15, 0, 1, time.UTC)))
}
