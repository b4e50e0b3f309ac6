// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wbtime

import (
	"regexp"
	"strings"
)

// Converted is the outcome of a best-effort conversion. When the time could
// not be parsed, Degraded is set and Fallback holds the repaired time string.
type Converted[T any] struct {
	Value    T
	Fallback string
	Degraded bool
}

// Any returns the converted value, or the fallback string when degraded.
func (c Converted[T]) Any() any {
	if c.Degraded {
		return c.Fallback
	}
	return c.Value
}

func bestEffort[T any](v Value, convert func(Value) (T, error)) Converted[T] {
	out, err := convert(v)
	if err != nil {
		return Converted[T]{Fallback: Repair(v), Degraded: true}
	}
	return Converted[T]{Value: out}
}

// ToEpochTime converts v to epoch milliseconds, degrading to the repaired
// time string when v cannot be parsed.
func ToEpochTime(v Value) Converted[int64] {
	return bestEffort(v, EpochMillis)
}

// ToISOString converts v to ISO-8601 text, degrading to the repaired time
// string when v cannot be parsed.
func ToISOString(v Value) Converted[string] {
	return bestEffort(v, ISOString)
}

var yearPadding = regexp.MustCompile(`^(-?)0+`)

// SimpleDay renders v at its precision as "yyyy", "yyyy-mm" or "yyyy-mm-dd",
// with negative and non-four-digit years kept as such ("-44", "10000").
//
// Given a value with a known precision, modern "01" placeholders below the
// precision are turned back into the legacy "00" before trimming. With
// PrecisionUnknown only literal "00" segments are dropped.
func SimpleDay(v Value) string {
	s := v.Time
	switch v.Precision {
	case PrecisionYear:
		s = strings.Replace(s, "-01-01T", "-00-00T", 1)
	case PrecisionMonth:
		s = strings.Replace(s, "-01T", "-00T", 1)
	}

	day, _, _ := strings.Cut(s, "T")
	day = strings.TrimPrefix(day, "+")
	day = yearPadding.ReplaceAllString(day, "$1")
	// Day, then month.
	day = strings.TrimSuffix(day, "-00")
	day = strings.TrimSuffix(day, "-00")
	return day
}
