package analytics

import "time"

// Timeframe selects the trailing window used by the dashboard.
type Timeframe string

const (
	LastMonth     Timeframe = "1m"
	LastQuarter   Timeframe = "3m"
	LastHalfYear  Timeframe = "6m"
	LastYear      Timeframe = "1y"
	AllTime       Timeframe = "all"
	DefaultWindow           = LastHalfYear
)

var lookbackDays = map[Timeframe]int{
	LastMonth:    30,
	LastQuarter:  90,
	LastHalfYear: 180,
	LastYear:     365,
}

var labels = map[Timeframe]string{
	LastMonth:    "Last 30 Days",
	LastQuarter:  "Last 3 Months",
	LastHalfYear: "Last 6 Months",
	LastYear:     "Last Year",
	AllTime:      "All Time",
}

// Timeframes returns the selectable tokens in widening order.
func Timeframes() []Timeframe {
	return []Timeframe{LastMonth, LastQuarter, LastHalfYear, LastYear, AllTime}
}

// ParseTimeframe maps unknown or empty tokens to the six month window.
func ParseTimeframe(s string) Timeframe {
	tf := Timeframe(s)
	if _, ok := labels[tf]; ok {
		return tf
	}
	return DefaultWindow
}

func (tf Timeframe) Label() string {
	if l, ok := labels[tf]; ok {
		return l
	}
	return labels[DefaultWindow]
}

// Daily reports whether the trend is bucketed by day instead of by month.
func (tf Timeframe) Daily() bool { return tf == LastMonth }

// WindowStart returns the inclusive lower bound of the window. AllTime has
// no fixed start and returns the zero time.
func (tf Timeframe) WindowStart(today time.Time) time.Time {
	if tf == AllTime {
		return time.Time{}
	}
	days, ok := lookbackDays[tf]
	if !ok {
		days = lookbackDays[DefaultWindow]
	}
	return today.AddDate(0, 0, -days)
}

// Cutoff is WindowStart as an ISO date, or "" for AllTime.
func (tf Timeframe) Cutoff(today time.Time) string {
	if tf == AllTime {
		return ""
	}
	return tf.WindowStart(today).Format("2006-01-02")
}
