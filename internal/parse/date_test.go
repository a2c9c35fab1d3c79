package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  time.Time
		expectErr bool
	}{
		{
			name:     "ISO date",
			raw:      "2025-01-02",
			expected: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339",
			raw:      "2025-01-02T07:00:00Z",
			expected: time.Date(2025, 1, 2, 7, 0, 0, 0, time.UTC),
		},
		{
			name:     "naive datetime",
			raw:      "2025-01-02T07:30:00",
			expected: time.Date(2025, 1, 2, 7, 30, 0, 0, time.UTC),
		},
		{
			name:     "surrounding spaces",
			raw:      "  2025-01-06 ",
			expected: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "garbage",
			raw:       "next tuesday",
			expectErr: true,
		},
		{
			name:      "empty",
			raw:       "",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Date(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %v, got %v", tc.expected, got)
		})
	}
}

func TestDayLabel(t *testing.T) {
	assert.Equal(t, "Thu 02 Jan", DayLabel("2025-01-02"))
	assert.Equal(t, "Sat 04 Jan", DayLabel("2025-01-04T00:00:00Z"))
	assert.Equal(t, "week 1", DayLabel("week 1"))
}

func TestWeekend(t *testing.T) {
	assert.True(t, Weekend("2025-01-04"))
	assert.True(t, Weekend("2025-01-05"))
	assert.False(t, Weekend("2025-01-06"))
	assert.False(t, Weekend("not a date"))
}
