package payroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nanny-payroll-bot/internal/payroll"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentPeriod_ThirdWeekFallsIntoSecondPeriod(t *testing.T) {
	// GIVEN: contract started Jan 1, today is Jan 20
	// WHEN: computing the current period
	// THEN: floor(floor(19/7)/2) = 1 -> period starts Jan 15
	p := payroll.CurrentPeriod(date(2024, time.January, 20), date(2024, time.January, 1))

	assert.Equal(t, date(2024, time.January, 15), p.Start)
	assert.Equal(t, date(2024, time.January, 28), p.End)
	assert.Equal(t, "Jan 15 – Jan 28, 2024", p.Title)
}

func TestCurrentPeriod_BoundaryDays(t *testing.T) {
	start := date(2024, time.January, 1)

	tests := []struct {
		name      string
		reference time.Time
		wantStart time.Time
	}{
		{"contract start day", start, start},
		{"last day of first period", date(2024, time.January, 14), start},
		{"first day of second period", date(2024, time.January, 15), date(2024, time.January, 15)},
		{"across year end", date(2024, time.December, 31), date(2024, time.December, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := payroll.CurrentPeriod(tt.reference, start)
			assert.Equal(t, tt.wantStart, p.Start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 13), p.End)
		})
	}
}

func TestCurrentPeriod_AnchoredToContractStart(t *testing.T) {
	starts := []time.Time{
		date(2023, time.February, 27),
		date(2024, time.February, 29),
		date(2024, time.March, 9), // DST week in US zones must not matter
		date(2025, time.October, 15),
	}

	for _, start := range starts {
		for offset := 0; offset < 400; offset += 3 {
			ref := start.AddDate(0, 0, offset)
			p := payroll.CurrentPeriod(ref, start)

			days := int(p.Start.Sub(start).Hours() / 24)
			require.Zero(t, days%payroll.PeriodDays, "start %s ref %s", start, ref)
			require.GreaterOrEqual(t, days, 0)
			require.False(t, ref.Before(p.Start), "ref before period start")
			require.False(t, ref.After(p.End), "ref after period end")
			require.Equal(t, 13*24*time.Hour, p.End.Sub(p.Start))
		}
	}
}

func TestCurrentPeriod_IgnoresTimeOfDay(t *testing.T) {
	start := date(2024, time.January, 1)
	ref := time.Date(2024, time.January, 14, 23, 59, 0, 0, time.UTC)

	p := payroll.CurrentPeriod(ref, start)

	assert.Equal(t, start, p.Start)
}

func TestPeriodOf(t *testing.T) {
	p, ok := payroll.PeriodOf("2024-01-15", "2024-01-28", "t")
	require.True(t, ok)
	assert.True(t, p.Contains(date(2024, time.January, 28)))
	assert.False(t, p.Contains(date(2024, time.January, 29)))

	_, ok = payroll.PeriodOf("garbage", "2024-01-28", "t")
	assert.False(t, ok)
}
