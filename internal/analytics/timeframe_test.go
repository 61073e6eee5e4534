package analytics

import (
	"testing"
	"time"
)

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		in   string
		want Timeframe
	}{
		{"1m", LastMonth},
		{"3m", LastQuarter},
		{"6m", LastHalfYear},
		{"1y", LastYear},
		{"all", AllTime},
		{"", LastHalfYear},
		{"2w", LastHalfYear},
		{"ALL", LastHalfYear},
	}
	for _, tt := range tests {
		if got := ParseTimeframe(tt.in); got != tt.want {
			t.Errorf("ParseTimeframe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeframeLabel(t *testing.T) {
	tests := []struct {
		tf   Timeframe
		want string
	}{
		{LastMonth, "Last 30 Days"},
		{LastQuarter, "Last 3 Months"},
		{LastHalfYear, "Last 6 Months"},
		{LastYear, "Last Year"},
		{AllTime, "All Time"},
		{Timeframe("bogus"), "Last 6 Months"},
	}
	for _, tt := range tests {
		if got := tt.tf.Label(); got != tt.want {
			t.Errorf("%q.Label() = %q, want %q", tt.tf, got, tt.want)
		}
	}
}

func TestTimeframeCutoff(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		tf   Timeframe
		want string
	}{
		{LastMonth, "2024-02-14"},
		{LastQuarter, "2023-12-16"},
		{LastHalfYear, "2023-09-17"},
		{LastYear, "2023-03-16"},
		{AllTime, ""},
	}
	for _, tt := range tests {
		if got := tt.tf.Cutoff(today); got != tt.want {
			t.Errorf("%q.Cutoff() = %q, want %q", tt.tf, got, tt.want)
		}
	}
	if !AllTime.WindowStart(today).IsZero() {
		t.Errorf("all-time window start should be zero")
	}
}
