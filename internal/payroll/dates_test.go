package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nanny-payroll-bot/internal/payroll"
)

func TestParseDate(t *testing.T) {
	got, ok := payroll.ParseDate("2024-03-05")
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.March, 5), got)

	got, ok = payroll.ParseDate("2024-03-05T18:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.March, 5), got)

	for _, bad := range []string{"", "2024-13-01", "05/03/2024", "soon"} {
		_, ok := payroll.ParseDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"9:05", 545, true},
		{"23:59", 1439, true},
		{"22:00:00", 1320, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := payroll.ParseClock(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "Jan 5, 2024", payroll.DisplayDate("2024-01-05"))
	assert.Equal(t, "N/A", payroll.DisplayDate(""))
	assert.Equal(t, "N/A", payroll.DisplayDate("bad"))
}

func TestNormalizeClock(t *testing.T) {
	assert.Equal(t, "09:05", payroll.NormalizeClock("9:05"))
	assert.Equal(t, "22:00", payroll.NormalizeClock("22:00:00"))
	assert.Equal(t, "noon", payroll.NormalizeClock("noon"))
}
