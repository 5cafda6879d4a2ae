package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, time.March, 14, 23, 59, 58, 123, time.UTC)
	got := DateOnly(in)
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29}, // leap year
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%d", tt.year, tt.month)
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(2026, time.June)
	assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC), last)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 10, d.Day())

	_, err = ParseDate("10/06/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestSameMonth(t *testing.T) {
	d := time.Date(2026, time.June, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameMonth(d, 2026, time.June))
	assert.False(t, SameMonth(d, 2026, time.July))
	assert.False(t, SameMonth(d, 2025, time.June))
}
