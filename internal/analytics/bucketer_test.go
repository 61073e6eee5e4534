package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency/internal/core"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pt(date string, amount int64) Point {
	return Point{Date: date, Amount: core.MoneyFromInt(amount)}
}

func TestBucketize_DailyWindow(t *testing.T) {
	today := day(2024, 3, 15)
	s := Bucketize([]Point{pt("2024-02-14", 75), pt("2024-02-13", 999), pt("2024-03-15", 10)}, today, LastMonth)

	require.Len(t, s, 31)
	assert.Equal(t, "2024-02-14", s[0].Key)
	assert.Equal(t, "14 Feb", s[0].Label)
	assert.Equal(t, 75.0, s[0].Total.Float64(), "lower boundary must be included")
	assert.Equal(t, "2024-03-15", s[30].Key)
	assert.Equal(t, "15 Mar", s[30].Label)
	assert.Equal(t, 10.0, s[30].Total.Float64())

	var sum float64
	for _, v := range s.Totals() {
		sum += v
	}
	assert.Equal(t, 85.0, sum, "points before the window are dropped")
}

func TestBucketize_AllTimeEndToEnd(t *testing.T) {
	points := []Point{
		pt("2024-01-05", 100),
		pt("2024-01-20", 50),
		pt("2024-02-01", 200),
	}
	s := Bucketize(points, day(2024, 2, 15), AllTime)

	assert.Equal(t, []string{"Jan 2024", "Feb 2024"}, s.Labels())
	assert.Equal(t, []float64{150, 200}, s.Totals())
}

func TestBucketize_AllTimeWithoutData(t *testing.T) {
	s := Bucketize(nil, day(2024, 2, 15), AllTime)
	assert.Equal(t, []string{"Feb 2024"}, s.Labels())
	assert.Equal(t, []float64{0}, s.Totals())

	s = Bucketize([]Point{{Date: "not-a-date", Amount: core.MoneyFromInt(5)}}, day(2024, 2, 15), AllTime)
	assert.Equal(t, []string{"Feb 2024"}, s.Labels())
}

func TestBucketize_AllTimeFutureOnly(t *testing.T) {
	s := Bucketize([]Point{pt("2025-06-01", 10)}, day(2024, 2, 15), AllTime)
	assert.Equal(t, []string{"Feb 2024"}, s.Labels())
	assert.Equal(t, []float64{0}, s.Totals())
}

func TestBucketize_MonthlyNeverSkipsOrRepeats(t *testing.T) {
	todays := []time.Time{
		day(2024, 1, 31),
		day(2024, 3, 31),
		day(2024, 2, 29),
		day(2023, 12, 31),
		day(2024, 5, 1),
	}
	for _, today := range todays {
		for _, tf := range []Timeframe{LastQuarter, LastHalfYear, LastYear} {
			s := Bucketize(nil, today, tf)
			require.NotEmpty(t, s)

			start := tf.WindowStart(today)
			wantLen := (today.Year()-start.Year())*12 + int(today.Month()-start.Month()) + 1
			assert.Len(t, s, wantLen, "%s %s", today.Format("2006-01-02"), tf)

			assert.Equal(t, start.Format("2006-01"), s[0].Key)
			assert.Equal(t, today.Format("2006-01"), s[len(s)-1].Key)

			for i := 1; i < len(s); i++ {
				prev, err := time.Parse("2006-01", s[i-1].Key)
				require.NoError(t, err)
				cur, err := time.Parse("2006-01", s[i].Key)
				require.NoError(t, err)
				assert.Equal(t, prev.AddDate(0, 1, 0), cur, "gap or repeat after %s", s[i-1].Label)
			}
		}
	}
}

func TestBucketize_MonthlyGroupsByCalendarMonth(t *testing.T) {
	today := day(2024, 3, 15)
	points := []Point{
		pt("2023-12-20", 10),
		pt("2024-01-01", 20),
		pt("2024-01-31", 30),
		pt("2024-03-15", 40),
	}
	s := Bucketize(points, today, LastQuarter)

	assert.Equal(t, []string{"Dec 2023", "Jan 2024", "Feb 2024", "Mar 2024"}, s.Labels())
	assert.Equal(t, []float64{10, 50, 0, 40}, s.Totals())
}

func TestBucketize_EmptyInputIsZeroFilled(t *testing.T) {
	for _, tf := range Timeframes() {
		s := Bucketize(nil, day(2024, 3, 15), tf)
		require.NotEmpty(t, s)
		for _, v := range s.Totals() {
			assert.Zero(t, v)
		}
		assert.Equal(t, len(s.Labels()), len(s.Totals()))
	}
}

func TestBucketize_Idempotent(t *testing.T) {
	points := []Point{pt("2024-01-05", 100), pt("2024-02-01", 200), pt("2023-10-10", 5)}
	today := day(2024, 3, 15)
	for _, tf := range Timeframes() {
		a := Bucketize(points, today, tf)
		b := Bucketize(points, today, tf)
		assert.Equal(t, a.Labels(), b.Labels())
		assert.Equal(t, a.Totals(), b.Totals())
	}
}

func TestBucketize_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	s := Bucketize([]Point{pt("2024-02-14", 1)}, late, LastMonth)
	require.Len(t, s, 31)
	assert.Equal(t, 1.0, s[0].Total.Float64())
}
