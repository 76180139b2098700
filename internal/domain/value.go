package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a numeric cell value that may be absent. Coercion failures and
// blank cells produce the absent variant; consumers decide whether absent
// means "skip" (divergence) or "zero" (sums).
type Number struct {
	Value float64
	Valid bool
}

// Num returns a present Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Absent is the missing-value sentinel.
var Absent = Number{}

// OrZero returns the value, treating absent as 0.
func (n Number) OrZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// MarshalJSON renders absent as JSON null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a JSON number or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Absent
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Num(v)
	return nil
}

// ParseNumber coerces free-form spreadsheet text into a Number, tolerating
// both comma-decimal and dot-decimal conventions:
//
//	""        → absent
//	"12,5"    → 12.5
//	"1.234,5" → 1234.5 (dot treated as thousands separator)
//	"12.5"    → 12.5
//	"abc"     → absent
//
// A single comma with at most one dot marks the dot as a thousands
// separator; otherwise every comma becomes a decimal point. If parsing still
// fails, one retry strips internal whitespace. Never returns an error.
func ParseNumber(text string) Number {
	s := strings.TrimSpace(text)
	if s == "" {
		return Absent
	}

	if strings.Count(s, ",") == 1 && strings.Count(s, ".") <= 1 {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Num(v)
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, " ", ""), 64); err == nil {
		return Num(v)
	}
	return Absent
}

// ParseCoordinate coerces latitude/longitude text into a Number. Coordinates
// never use thousands separators, so this is deliberately stricter than
// ParseNumber: comma becomes a decimal point and anything else unparsable is
// absent.
func ParseCoordinate(text string) Number {
	s := strings.TrimSpace(text)
	if s == "" {
		return Absent
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return Absent
	}
	return Num(v)
}
