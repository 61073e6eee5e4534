package analytics

import (
	"time"

	"agency/internal/core"
)

const (
	dailyKey     = "2006-01-02"
	dailyLabel   = "02 Jan"
	monthlyKey   = "2006-01"
	monthlyLabel = "Jan 2006"
)

// Point is one dated amount fed to the bucketer.
type Point struct {
	Date   string
	Amount core.Money
}

type Bucket struct {
	Key   string
	Label string
	Total core.Money
}

// Series is a gap-free, chronologically ordered run of buckets.
type Series []Bucket

func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, b := range s {
		out[i] = b.Label
	}
	return out
}

func (s Series) Totals() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Total.Float64()
	}
	return out
}

// PointsFromSales projects sales onto their deal date and amount.
func PointsFromSales(sales []core.Sale) []Point {
	pts := make([]Point, 0, len(sales))
	for _, s := range sales {
		pts = append(pts, Point{Date: s.Date, Amount: s.Amount})
	}
	return pts
}

// Bucketize sums points per day (LastMonth) or per calendar month and emits
// one bucket for every step from the window start through today, zero-filled.
// Points with unparseable dates or dated before the window start are ignored.
func Bucketize(points []Point, today time.Time, tf Timeframe) Series {
	today = core.Today(today)
	daily := tf.Daily()
	windowStart := tf.WindowStart(today)

	keyLayout := monthlyKey
	if daily {
		keyLayout = dailyKey
	}

	sums := make(map[string]core.Money)
	var earliest time.Time
	for _, p := range points {
		d, err := time.ParseInLocation(core.DateLayout, p.Date, today.Location())
		if err != nil {
			continue
		}
		if tf != AllTime && d.Before(windowStart) {
			continue
		}
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}
		k := d.Format(keyLayout)
		sums[k] = sums[k].Add(p.Amount)
	}

	var series Series
	emit := func(t time.Time, labelLayout string) {
		k := t.Format(keyLayout)
		series = append(series, Bucket{Key: k, Label: t.Format(labelLayout), Total: sums[k]})
	}

	if daily {
		for d := windowStart; !d.After(today); d = d.AddDate(0, 0, 1) {
			emit(d, dailyLabel)
		}
		return series
	}

	end := firstOfMonth(today)
	start := end
	switch {
	case tf == AllTime:
		if !earliest.IsZero() && earliest.Before(end) {
			start = firstOfMonth(earliest)
		}
	default:
		start = firstOfMonth(windowStart)
	}
	// step from the first of the month so short months cannot skip a bucket
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		emit(m, monthlyLabel)
	}
	return series
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
