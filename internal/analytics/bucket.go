// Package analytics turns raw order timestamps into fixed, gap-free revenue
// time series for the staff dashboard charts.
package analytics

import (
	"fmt"
	"time"
)

// TimeRange selects how far back the dashboard looks.
type TimeRange string

const (
	RangeHour TimeRange = "1h"
	Range24H  TimeRange = "24h"
	Range7D   TimeRange = "7d"
	Range30D  TimeRange = "30d"
	Range90D  TimeRange = "90d"
)

// ParseRange validates a range string from the request.
func ParseRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case RangeHour, Range24H, Range7D, Range30D, Range90D:
		return TimeRange(s), nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Duration returns the span the range covers.
func (r TimeRange) Duration() time.Duration {
	switch r {
	case RangeHour:
		return time.Hour
	case Range24H:
		return 24 * time.Hour
	case Range7D:
		return 7 * 24 * time.Hour
	case Range30D:
		return 30 * 24 * time.Hour
	case Range90D:
		return 90 * 24 * time.Hour
	default:
		return 7 * 24 * time.Hour
	}
}

// width returns the bucket width: minute buckets for the last hour, hourly
// for 24h, daily for 7d/30d, weekly for 90d.
func (r TimeRange) width() time.Duration {
	switch r {
	case RangeHour:
		return time.Minute
	case Range24H:
		return time.Hour
	case Range7D, Range30D:
		return 24 * time.Hour
	case Range90D:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// bucketCount returns how many buckets span the range. The count is the
// ceiling of range/width so a partial trailing week still gets a bucket.
func (r TimeRange) bucketCount() int {
	d, w := r.Duration(), r.width()
	return int((d + w - 1) / w)
}

// Bucket is one labeled slot of the revenue series.
type Bucket struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// OrderPoint is the minimal order projection the series needs.
type OrderPoint struct {
	CreatedAt time.Time
	Amount    float64
}

// Label formats the bucket a timestamp falls into. Building the empty series
// and assigning orders use this same function, so an order can only ever land
// in a seeded bucket or be dropped as out of range.
func (r TimeRange) Label(t time.Time) string {
	t = t.UTC()
	switch r.width() {
	case time.Minute:
		return t.Format("15:04")
	case time.Hour:
		return t.Format("2006-01-02 15:00")
	case 7 * 24 * time.Hour:
		return weekStart(t).Format("2006-01-02")
	default:
		return t.Format("2006-01-02")
	}
}

// weekStart returns the Monday of t's week, at midnight UTC.
func weekStart(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// Series builds the zero-seeded bucket sequence spanning the range ending at
// now and accumulates each order's amount into its bucket. Orders whose label
// is not in the seeded set are dropped. Empty periods stay at zero, so the
// result is a complete series suitable for charting.
func Series(r TimeRange, now time.Time, orders []OrderPoint) []Bucket {
	n := r.bucketCount()
	w := r.width()

	buckets := make([]Bucket, 0, n)
	index := make(map[string]int, n)
	for i := n - 1; i >= 0; i-- {
		label := r.Label(now.Add(-time.Duration(i) * w))
		if _, seen := index[label]; seen {
			continue
		}
		index[label] = len(buckets)
		buckets = append(buckets, Bucket{Label: label})
	}

	for _, o := range orders {
		if i, ok := index[r.Label(o.CreatedAt)]; ok {
			buckets[i].Revenue += o.Amount
		}
	}

	return buckets
}
