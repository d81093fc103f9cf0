// Package resource parses the key/value data tables backing the
// table-driven calendars (astronomical Hijri, Chinese, pre-1873 Japanese).
//
// A table is a plain text resource of "key = value" lines:
//
//	type      = islamic-umalqura
//	version   = 1.0
//	iso-start = 1999-04-17
//	min       = 1420
//	max       = 1450
//	1420      = 29 30 30 30 29 30 29 30 29 30 29 29
//	...
//
// Lunisolar tables additionally declare "lunisolar = true"; a year with an
// embedded leap month then carries 13 tokens and a matching "<year>-leap"
// key naming the month the leap month follows. Every violation of the
// format is a RESOURCE_FORMAT error raised at load time, never during
// conversion.
package resource

import (
	"regexp"
	"strconv"
	"strings"

	"almanac"
	"almanac/internal/julian"
)

// YearRecord holds one parsed table row.
type YearRecord struct {
	// Lengths lists the month lengths in calendar order, 12 entries, or
	// 13 when LeapMonth is set.
	Lengths []int
	// LeapMonth is the month number the leap month follows, 0 if none.
	LeapMonth int
}

// Table is a parsed, validated data table. It is immutable after Load.
type Table struct {
	Type      string
	Version   string
	IsoStart  almanac.EpochDay
	MinYear   int
	MaxYear   int
	Lunisolar bool
	// Years holds one record per year, index 0 = MinYear.
	Years []YearRecord
}

var isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

func formatErr(format string, args ...any) error {
	return almanac.Errorf(almanac.ResourceFormat, format, args...)
}

// Load parses a data table and validates it against the expected variant
// type. All structural errors fail here; a successfully loaded table never
// errors during lookup except for out-of-range requests.
func Load(data []byte, wantType string) (*Table, error) {
	entries := make(map[string]string)
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, formatErr("line %d: expected key = value", lineNo+1)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if key == "" {
			return nil, formatErr("line %d: empty key", lineNo+1)
		}
		if _, dup := entries[key]; dup {
			return nil, formatErr("duplicate key %q", key)
		}
		entries[key] = value
	}

	t := &Table{}
	var err error
	if t.Type, err = requireKey(entries, "type"); err != nil {
		return nil, err
	}
	if t.Type != wantType {
		return nil, formatErr("table type %q does not match variant %q", t.Type, wantType)
	}
	if t.Version, err = requireKey(entries, "version"); err != nil {
		return nil, err
	}
	isoStart, err := requireKey(entries, "iso-start")
	if err != nil {
		return nil, err
	}
	if t.IsoStart, err = parseIsoStart(isoStart); err != nil {
		return nil, err
	}
	if t.MinYear, err = requireInt(entries, "min"); err != nil {
		return nil, err
	}
	if t.MaxYear, err = requireInt(entries, "max"); err != nil {
		return nil, err
	}
	if t.MinYear > t.MaxYear {
		return nil, formatErr("min %d exceeds max %d", t.MinYear, t.MaxYear)
	}
	t.Lunisolar = entries["lunisolar"] == "true"
	shortFinal := entries["short-final-month"] == "true"

	t.Years = make([]YearRecord, 0, t.MaxYear-t.MinYear+1)
	for year := t.MinYear; year <= t.MaxYear; year++ {
		row, ok := entries[strconv.Itoa(year)]
		if !ok {
			return nil, formatErr("year %d is missing from table [%d,%d]", year, t.MinYear, t.MaxYear)
		}
		rec, err := parseRow(t, year, row, entries, shortFinal && year == t.MaxYear)
		if err != nil {
			return nil, err
		}
		t.Years = append(t.Years, rec)
	}
	return t, nil
}

func requireKey(entries map[string]string, key string) (string, error) {
	value, ok := entries[key]
	if !ok || value == "" {
		return "", formatErr("missing required key %q", key)
	}
	return value, nil
}

func requireInt(entries map[string]string, key string) (int, error) {
	value, err := requireKey(entries, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, formatErr("key %q: %q is not an integer", key, value)
	}
	return n, nil
}

func parseIsoStart(value string) (almanac.EpochDay, error) {
	matches := isoDatePattern.FindStringSubmatch(value)
	if matches == nil {
		return 0, formatErr("iso-start %q is not an ISO date (YYYY-MM-DD)", value)
	}
	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	day, _ := strconv.Atoi(matches[3])
	if month < 1 || month > 12 || day < 1 || day > julian.GregorianMonthLength(year, month) {
		return 0, formatErr("iso-start %q is not a valid date", value)
	}
	return almanac.EpochDay(julian.GregorianToEpochDay(year, month, day)), nil
}

func parseRow(t *Table, year int, row string, entries map[string]string, allowShortFinal bool) (YearRecord, error) {
	tokens := strings.Fields(row)
	rec := YearRecord{Lengths: make([]int, 0, len(tokens))}

	leapValue, hasLeap := entries[strconv.Itoa(year)+"-leap"]
	switch {
	case len(tokens) == 12 && !hasLeap:
		// plain year
	case len(tokens) == 13 && hasLeap && t.Lunisolar:
		leapMonth, err := strconv.Atoi(leapValue)
		if err != nil || leapMonth < 1 || leapMonth > 12 {
			return rec, formatErr("year %d: leap month %q is not a month number", year, leapValue)
		}
		rec.LeapMonth = leapMonth
	case len(tokens) == 13:
		return rec, formatErr("year %d has 13 months but no leap declaration", year)
	case hasLeap:
		return rec, formatErr("year %d declares a leap month but has %d entries", year, len(tokens))
	default:
		return rec, formatErr("year %d has %d month entries, expected 12", year, len(tokens))
	}

	for i, token := range tokens {
		length, err := strconv.Atoi(token)
		if err != nil {
			return rec, formatErr("year %d: %q is not an integer", year, token)
		}
		// The two-day final month of 1872 in the Japanese table is the
		// only permitted month shorter than 29 days.
		if length < 29 || length > 30 {
			if !(allowShortFinal && i == len(tokens)-1 && length >= 1 && length < 29) {
				return rec, formatErr("year %d: month length %d is out of range", year, length)
			}
		}
		rec.Lengths = append(rec.Lengths, length)
	}
	return rec, nil
}
