package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// BuddhistEraThreshold is the year above which a date is read as Buddhist Era.
	BuddhistEraThreshold = 2400

	// BuddhistEraOffset is the number of years BE runs ahead of the Gregorian calendar.
	BuddhistEraOffset = 543

	// DefaultDayCap is the display ceiling for day counts ("999+").
	DefaultDayCap = 999

	day = 24 * time.Hour
)

// NormalizedDate is a canonical instant parsed from a possibly BE-tagged string.
type NormalizedDate struct {
	// Instant is the Gregorian point in time.
	Instant time.Time

	// Raw is the input exactly as supplied.
	Raw string

	// SourceYear is the 4-digit year text as written in the input, before
	// any era conversion. Empty when the input has no year prefix.
	SourceYear string

	// BuddhistEra is true when the year was converted from BE.
	BuddhistEra bool
}

// DateParser converts date strings into NormalizedDate values.
// The zero value parses zone-less input as UTC.
type DateParser struct {
	// Location is used for inputs without an explicit offset.
	Location *time.Location
}

// ParseDate normalises raw using UTC for zone-less input.
func ParseDate(raw string) (NormalizedDate, error) {
	return DateParser{}.Parse(raw)
}

// Parse normalises raw into a Gregorian instant.
//
// A leading 4-digit year greater than BuddhistEraThreshold marks the whole
// string as Buddhist Era; the year is shifted back by BuddhistEraOffset and
// the string reparsed. The original year text is kept in SourceYear.
// Empty or unparseable input returns an error wrapping ErrDateParse.
func (p DateParser) Parse(raw string) (NormalizedDate, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NormalizedDate{}, fmt.Errorf("%w: empty input", ErrDateParse)
	}

	out := NormalizedDate{Raw: raw}
	if len(s) >= 4 && isDigits(s[:4]) {
		out.SourceYear = s[:4]
		year, err := strconv.Atoi(s[:4])
		if err == nil && year > BuddhistEraThreshold {
			s = fmt.Sprintf("%04d", year-BuddhistEraOffset) + s[4:]
			out.BuddhistEra = true
		}
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}

	layouts := [...]string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			out.Instant = t
			return out, nil
		}
	}
	return NormalizedDate{}, fmt.Errorf("%w: %q", ErrDateParse, raw)
}

// DaysUntil returns ceil((target - now) / 24h). Negative means target is past.
// It works on Unix seconds so references centuries away keep an exact
// count instead of saturating like time.Duration.
func DaysUntil(target, now time.Time) int {
	secs := target.Unix() - now.Unix()
	nanos := target.Nanosecond() - now.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}

	const secsPerDay = int64(day / time.Second)
	days := secs / secsPerDay
	rem := secs % secsPerDay
	if rem < 0 {
		days--
		rem += secsPerDay
	}
	if rem > 0 || nanos > 0 {
		days++
	}
	return int(days)
}

// FormatDayCount renders the magnitude of n, capped at dayCap ("999+").
// The cap is for display only; classification uses the exact signed value.
func FormatDayCount(n, dayCap int) string {
	if n < 0 {
		n = -n
	}
	if dayCap > 0 && n > dayCap {
		return strconv.Itoa(dayCap) + "+"
	}
	return strconv.Itoa(n)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
