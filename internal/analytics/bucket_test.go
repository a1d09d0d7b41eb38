package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	for _, valid := range []string{"1h", "24h", "7d", "30d", "90d"} {
		r, err := ParseRange(valid)
		require.NoError(t, err)
		assert.Equal(t, TimeRange(valid), r)
	}

	_, err := ParseRange("14d")
	assert.Error(t, err)

	_, err = ParseRange("")
	assert.Error(t, err)
}

func TestSeries_SevenDaysAlwaysSevenBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	series := Series(Range7D, now, nil)

	require.Len(t, series, 7)
	for _, b := range series {
		assert.Zero(t, b.Revenue)
	}
	assert.Equal(t, "2026-03-09", series[0].Label)
	assert.Equal(t, "2026-03-15", series[6].Label)
}

func TestSeries_BucketCounts(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		r    TimeRange
		want int
	}{
		{RangeHour, 60},
		{Range24H, 24},
		{Range7D, 7},
		{Range30D, 30},
		{Range90D, 13},
	}
	for _, tt := range tests {
		assert.Len(t, Series(tt.r, now, nil), tt.want, "range %s", tt.r)
	}
}

func TestSeries_AccumulatesIntoMatchingBucket(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	orders := []OrderPoint{
		{CreatedAt: now.Add(-2 * time.Hour), Amount: 100},
		{CreatedAt: now.Add(-26 * time.Hour), Amount: 40},
		{CreatedAt: now.Add(-26*time.Hour + time.Minute), Amount: 60},
	}

	series := Series(Range7D, now, orders)

	require.Len(t, series, 7)
	assert.Equal(t, 100.0, series[6].Revenue) // today
	assert.Equal(t, 100.0, series[5].Revenue) // yesterday, two orders
	for i := 0; i < 5; i++ {
		assert.Zero(t, series[i].Revenue)
	}
}

func TestSeries_DropsOrdersOutsideSeededBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	orders := []OrderPoint{
		{CreatedAt: now.AddDate(0, 0, -30), Amount: 999},
	}

	series := Series(Range7D, now, orders)

	var total float64
	for _, b := range series {
		total += b.Revenue
	}
	assert.Zero(t, total)
}

func TestSeries_WeeklyLabelsAreWeekStarts(t *testing.T) {
	// A Sunday: its week started the preceding Monday.
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, now.Weekday())

	series := Series(Range90D, now, []OrderPoint{
		{CreatedAt: now.Add(-time.Hour), Amount: 25},
	})

	require.Len(t, series, 13)
	last := series[len(series)-1]
	assert.Equal(t, "2026-03-09", last.Label)
	assert.Equal(t, 25.0, last.Revenue)
}

func TestSeries_HourlyFor24h(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	series := Series(Range24H, now, []OrderPoint{
		{CreatedAt: now.Add(-30 * time.Minute), Amount: 10},
		{CreatedAt: now.Add(-90 * time.Minute), Amount: 5},
	})

	require.Len(t, series, 24)
	assert.Equal(t, "2026-03-15 10:00", series[23].Label)
	assert.Equal(t, 10.0, series[23].Revenue)
	assert.Equal(t, 5.0, series[22].Revenue)
}
