package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormatRoundTrip(t *testing.T) {
	d, err := Parse("2025-01-11")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2025-01-11", Format(d))
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "2025/01/11", "11-01-2025", "2025-13-01"} {
		_, err := Parse(s)
		assert.Error(t, err, "should reject %q", s)
	}
}

func TestAddDaysCrossesMonthBoundary(t *testing.T) {
	start := time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-02-02", Format(AddDays(start, 5)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, DaysBetween(a, b))
	assert.Equal(t, -30, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestWeekOfMonth(t *testing.T) {
	cases := map[string]int{
		"2025-03-01": 1,
		"2025-03-07": 1,
		"2025-03-08": 2,
		"2025-03-14": 2,
		"2025-03-15": 3,
		"2025-03-29": 5,
		"2025-03-31": 5,
	}
	for iso, want := range cases {
		d, err := Parse(iso)
		require.NoError(t, err)
		assert.Equal(t, want, WeekOfMonth(d), "week of month for %s", iso)
	}
}

func TestMidnightUsesUTCCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*3600)
	// 2025-06-02 01:30 in UTC+13 is still 2025-06-01 in UTC.
	local := time.Date(2025, 6, 2, 1, 30, 0, 0, loc)
	assert.Equal(t, "2025-06-01", Format(Midnight(local)))
}
