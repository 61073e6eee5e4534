package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount bounds a single sale so that sums and REAL columns stay finite.
var MaxAmount = decimal.New(1, 12)

// Money is a monetary amount backed by an exact decimal. Amounts accepted
// through ParseAmount are non-negative and at most MaxAmount; the other
// constructors take the value as given.
type Money struct {
	d decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{d: d} }

// MoneyFromFloat converts a REAL column value. NaN and infinities read as zero.
func MoneyFromFloat(f float64) Money {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{d: decimal.Zero}
	}
	return Money{d: decimal.NewFromFloat(f)}
}

func MoneyFromInt(i int64) Money { return Money{d: decimal.NewFromInt(i)} }

// ParseAmount parses a form amount such as "1500" or "1250.50".
// Empty, malformed, negative and larger-than-MaxAmount inputs return
// ErrInvalidAmount.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() || d.GreaterThan(MaxAmount) {
		return Money{}, ErrInvalidAmount
	}
	return Money{d: d}, nil
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

func (m Money) Decimal() decimal.Decimal { return m.d }

// Float64 is for chart payloads and REAL columns only. Values beyond the
// float64 range saturate at ±math.MaxFloat64.
func (m Money) Float64() float64 {
	f := m.d.InexactFloat64()
	switch {
	case math.IsInf(f, 1):
		return math.MaxFloat64
	case math.IsInf(f, -1):
		return -math.MaxFloat64
	}
	return f
}

func (m Money) String() string { return m.d.StringFixed(2) }

// Grouped formats the amount with comma thousands separators and the given
// number of decimal places. Zero places truncates instead of rounding.
//
//	MoneyFromFloat(1234567.891).Grouped(2) -> "1,234,567.89"
//	MoneyFromFloat(1234567.891).Grouped(0) -> "1,234,567"
func (m Money) Grouped(places int32) string {
	var s string
	if places <= 0 {
		s = m.d.Truncate(0).String()
	} else {
		s = m.d.StringFixed(places)
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}

// Sum adds amounts starting from zero.
func Sum(amounts ...Money) Money {
	total := Money{d: decimal.Zero}
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
