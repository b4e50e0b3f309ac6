// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wbtime converts Wikibase time values into epoch milliseconds,
// ISO-8601 text, or a minimal day string.
//
// Wikibase writes times as a signed, zero-padded date-time string plus a
// precision code. Two encodings exist for units below the precision: legacy
// values set them to "00" ("+1953-00-00T00:00:00Z"), current ones to "01"
// ("+1953-01-01T00:00:00Z"). Both are accepted and normalized identically.
//
// Conversions run in two stages. Parse is strict and returns a *DateError on
// anything it cannot place on the calendar. The best-effort converters fall
// back to Repair on such errors and hand back the repaired time string
// instead of a converted value.
package wbtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Precision codes used by Wikibase time values.
const (
	PrecisionUnknown      = -1
	PrecisionBillionYears = 0
	PrecisionMillennium   = 6
	PrecisionCentury      = 7
	PrecisionDecade       = 8
	PrecisionYear         = 9
	PrecisionMonth        = 10
	PrecisionDay          = 11
	PrecisionHour         = 12
	PrecisionMinute       = 13
	PrecisionSecond       = 14
)

// maxMillis bounds a date's distance from the epoch: 100,000,000 days,
// about 273,790 years either way.
const maxMillis = 8_640_000_000_000_000

// Value is a Wikibase time datavalue.
type Value struct {
	Time          string `json:"time"`
	Timezone      int    `json:"timezone"`
	Before        int    `json:"before"`
	After         int    `json:"after"`
	Precision     int    `json:"precision"`
	CalendarModel string `json:"calendarmodel,omitempty"`
}

// Raw wraps a bare time string whose precision is not known.
func Raw(s string) Value {
	return Value{Time: s, Precision: PrecisionUnknown}
}

// DateError reports a time string that does not describe a calendar instant.
type DateError struct {
	Time   string
	Reason string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Time, e.Reason)
}

// Parse reads a signed Wikibase time string into a UTC instant. Legacy "00"
// months and days are read as "01". Days past the end of their month roll
// over into the next one; months outside 1..12, malformed fields and dates
// beyond ±8.64e15 ms from the epoch are rejected.
func Parse(v Value) (time.Time, error) {
	s := v.Time
	fail := func(reason string) (time.Time, error) {
		return time.Time{}, &DateError{Time: s, Reason: reason}
	}

	if s == "" {
		return fail("empty")
	}
	negative := false
	rest := s
	switch s[0] {
	case '+':
		rest = s[1:]
	case '-':
		negative = true
		rest = s[1:]
	}

	datePart, clockPart, found := strings.Cut(rest, "T")
	if !found {
		return fail("missing time of day")
	}
	datePart = strings.ReplaceAll(datePart, "-00", "-01")

	fields := strings.Split(datePart, "-")
	if len(fields) != 3 {
		return fail("date must have year, month and day")
	}
	year, err := parseDigits(fields[0], 1, 0)
	if err != nil {
		return fail("bad year")
	}
	month, err := parseDigits(fields[1], 2, 2)
	if err != nil || month < 1 || month > 12 {
		return fail("month out of range")
	}
	day, err := parseDigits(fields[2], 2, 2)
	if err != nil || day < 1 || day > 31 {
		return fail("day out of range")
	}

	hour, minute, second, ok := parseClock(clockPart)
	if !ok {
		return fail("bad time of day")
	}

	// Guards the int conversion below; the millisecond check is the real bound.
	if year > 300_000 {
		return fail("year out of range")
	}
	if negative {
		year = -year
	}

	t := time.Date(int(year), time.Month(month), int(day), hour, minute, second, 0, time.UTC)
	if ms := t.UnixMilli(); ms > maxMillis || ms < -maxMillis {
		return fail("year out of range")
	}
	return t, nil
}

// parseDigits parses an unsigned decimal field of minLen..maxLen digits
// (maxLen 0 means unbounded).
func parseDigits(s string, minLen, maxLen int) (int64, error) {
	if len(s) < minLen || (maxLen > 0 && len(s) > maxLen) {
		return 0, strconv.ErrSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return 0, nil
	}
	if len(trimmed) > 18 {
		return 0, strconv.ErrRange
	}
	return strconv.ParseInt(trimmed, 10, 64)
}

// parseClock reads "hh:mm:ssZ".
func parseClock(s string) (hour, minute, second int, ok bool) {
	s, found := strings.CutSuffix(s, "Z")
	if !found {
		return 0, 0, 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var vals [3]int
	limits := [3]int64{23, 59, 59}
	for i, p := range parts {
		n, err := parseDigits(p, 2, 2)
		if err != nil || n > limits[i] {
			return 0, 0, 0, false
		}
		vals[i] = int(n)
	}
	return vals[0], vals[1], vals[2], true
}

// EpochMillis strictly converts v to milliseconds since the Unix epoch.
func EpochMillis(v Value) (int64, error) {
	t, err := Parse(v)
	if err != nil {
		return 0, err
	}
	return t.UnixMilli(), nil
}

// ISOString strictly converts v to ISO-8601 text with millisecond precision.
// Years outside 0..9999 use the six-digit signed expanded form.
func ISOString(v Value) (string, error) {
	t, err := Parse(v)
	if err != nil {
		return "", err
	}
	return formatISO(t), nil
}

func formatISO(t time.Time) string {
	var year string
	switch y := t.Year(); {
	case y >= 0 && y <= 9999:
		year = fmt.Sprintf("%04d", y)
	case y < 0:
		year = fmt.Sprintf("-%06d", -y)
	default:
		year = fmt.Sprintf("+%06d", y)
	}
	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d.%03dZ",
		year, int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6)
}

// Repair rewrites "-00" month and day segments of the raw time string to
// "-01" and returns the result without parsing it.
func Repair(v Value) string {
	s := v.Time
	if s == "" {
		return ""
	}
	sign, rest := s[:1], s[1:]
	if sign != "+" && sign != "-" {
		sign, rest = "", s
	}
	datePart, clockPart, found := strings.Cut(rest, "T")
	datePart = strings.ReplaceAll(datePart, "-00", "-01")
	if !found {
		return sign + datePart
	}
	return sign + datePart + "T" + clockPart
}
