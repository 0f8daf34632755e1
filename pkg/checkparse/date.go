package checkparse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrNoDate means no date-shaped substring was found in the text.
var ErrNoDate = errors.New("no date found")

// ErrBadDate means a date-shaped substring was found but is not a valid
// calendar date (e.g. "13/45/2024"). Callers that don't care about the
// distinction treat both errors as "date absent".
var ErrBadDate = errors.New("matched text is not a valid date")

var dateMatchers = []matcher{
	submatch(regexp.MustCompile(`\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\b`)),   // 12/31/2024, 01-15-24
	submatch(regexp.MustCompile(`\b([A-Za-z]+,?\s+\d{1,2},?\s+\d{4})\b`)), // January 15, 2024
}

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"jun": time.June, "jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ExtractDate finds a calendar date in numeric (M/D/Y with / or -
// separators) or written-word form. The returned time is UTC midnight on
// the matched day. Two-digit years use a fixed pivot: 00-49 map to
// 2000-2049 and 50-99 to 1950-1999; relying on whatever the platform's
// parser does would make the behavior ambiguous across runtimes.
func ExtractDate(text string) (time.Time, error) {
	r := firstMatch(text, dateMatchers)
	if !r.ok {
		return time.Time{}, ErrNoDate
	}
	t, ok := parseDateString(r.value)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, r.value)
	}
	return t, nil
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "/-") {
		return parseNumericDate(s)
	}
	return parseWrittenDate(s)
}

// parseNumericDate handles M/D/Y and M-D-Y with 2- or 4-digit years.
func parseNumericDate(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' || r == '-' })
	if len(parts) != 3 {
		return time.Time{}, false
	}
	month, err1 := strconv.Atoi(parts[0])
	day, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year = pivotYear(year)
	}
	return makeDate(year, time.Month(month), day)
}

// parseWrittenDate handles "January 15, 2024" and the OCR-frequent
// "March, 10, 2025" comma placement.
func parseWrittenDate(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, false
	}
	name := strings.ToLower(strings.Trim(fields[0], ",."))
	month, ok := monthsByName[name]
	if !ok {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(strings.TrimSuffix(fields[1], ","))
	year, err2 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil {
		return time.Time{}, false
	}
	return makeDate(year, month, day)
}

// pivotYear resolves a two-digit year: 00-49 -> 2000s, 50-99 -> 1900s.
func pivotYear(y int) int {
	if y < 50 {
		return 2000 + y
	}
	return 1900 + y
}

// makeDate validates the combination; time.Date normalizes out-of-range
// components (month 13 becomes January), so the round-trip check rejects
// impossible dates instead of silently rolling them over.
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
