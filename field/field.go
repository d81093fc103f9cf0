// Package field provides the generic per-field access layer over any
// calendar: one rule per (calendar, field) exposing value, context
// dependent bounds, validity, and set-with-leniency semantics through a
// uniform integer surface. A formatter or parser written against Rule
// works unchanged on every calendar.
//
// Rules are monomorphized per calendar date type via the Chrono
// interface; there is no reflection and no boxing of field values.
package field

import (
	"almanac"
)

// Name identifies a calendar field.
type Name string

const (
	// YearOfEra is the calendar's continuous year axis.
	YearOfEra Name = "YEAR_OF_ERA"
	// MonthOrdinal is the 1-based position of the month among the year's
	// ordered months; in lunisolar years a leap month occupies its own
	// ordinal slot.
	MonthOrdinal Name = "MONTH_ORDINAL"
	// DayOfMonth is the day within the month, 1-based.
	DayOfMonth Name = "DAY_OF_MONTH"
	// DayOfYear is the ordinal day within the year, 1-based.
	DayOfYear Name = "DAY_OF_YEAR"
	// DayOfWeek is the ISO day of the week, Monday = 1.
	DayOfWeek Name = "DAY_OF_WEEK"

	// None marks the absence of a child field.
	None Name = ""
)

// Chrono is the per-calendar primitive surface the rules are built on.
// Every calendar package's system type implements it; the year parameter
// is the calendar's continuous year axis.
type Chrono[D any] interface {
	// Date builds a validated date from chronology fields.
	Date(year int, month almanac.MonthSpec, day int) (D, error)
	// Fields deconstructs a date.
	Fields(d D) (year int, month almanac.MonthSpec, day int)
	// EpochDay converts a date to the canonical day count.
	EpochDay(d D) almanac.EpochDay
	// FromEpochDay converts a day count back to a date.
	FromEpochDay(epochDay almanac.EpochDay) (D, error)
	// Months lists the year's months in calendar order.
	Months(year int) ([]almanac.MonthSpec, error)
	// MonthLength returns the highest valid day number of a month.
	MonthLength(year int, month almanac.MonthSpec) (int, error)
	// YearLength returns the number of days in a year.
	YearLength(year int) (int, error)
	// Bounds returns the supported epoch day range.
	Bounds() (min, max almanac.EpochDay)
}

// Rule is the uniform contract of one field on one calendar. Get, Min and
// Max operate on dates already known to be valid and therefore cannot
// fail; With validates or rolls over according to the leniency.
type Rule[D any] interface {
	Name() Name
	// Get returns the field value of the date.
	Get(d D) int
	// Min returns the smallest valid value in the date's context.
	Min(d D) int
	// Max returns the largest valid value in the date's context; for
	// day-of-month it depends on the date's year and month.
	Max(d D) int
	// IsValid reports whether the value is valid in the date's context.
	IsValid(d D, value int) bool
	// With returns a new date with the field set. Strict and Smart
	// reject out-of-range values; Lax rolls the overflow into coarser
	// units through epoch-day arithmetic.
	With(d D, value int, leniency almanac.Leniency) (D, error)
	// AtFloor names the finer field to default to its minimum when only
	// this field is given during parsing, or None.
	AtFloor() Name
	// AtCeiling names the finer field to default to its maximum, or
	// None.
	AtCeiling() Name
}

// Rules is the rule set of one calendar, built once and immutable.
type Rules[D any] struct {
	chrono  Chrono[D]
	rules   map[Name]Rule[D]
	minYear int
	maxYear int
}

// NewRules builds the rule set for a calendar.
func NewRules[D any](chrono Chrono[D]) (*Rules[D], error) {
	minDay, maxDay := chrono.Bounds()
	first, err := chrono.FromEpochDay(minDay)
	if err != nil {
		return nil, err
	}
	last, err := chrono.FromEpochDay(maxDay)
	if err != nil {
		return nil, err
	}
	minYear, _, _ := chrono.Fields(first)
	maxYear, _, _ := chrono.Fields(last)

	r := &Rules[D]{chrono: chrono, minYear: minYear, maxYear: maxYear}
	r.rules = map[Name]Rule[D]{
		YearOfEra:    yearRule[D]{r},
		MonthOrdinal: monthRule[D]{r},
		DayOfMonth:   dayOfMonthRule[D]{r},
		DayOfYear:    dayOfYearRule[D]{r},
		DayOfWeek:    dayOfWeekRule[D]{r},
	}
	return r, nil
}

// Get returns the rule for a field name.
func (r *Rules[D]) Get(name Name) (Rule[D], error) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, almanac.Errorf(almanac.UnsupportedVariant, "unknown field %q", string(name))
	}
	return rule, nil
}

// Chrono returns the underlying chronology.
func (r *Rules[D]) Chrono() Chrono[D] { return r.chrono }

// YearRange returns the continuous year axis bounds.
func (r *Rules[D]) YearRange() (min, max int) { return r.minYear, r.maxYear }

// FloorDate returns the first day of the year: the floor chain
// year -> first month -> day 1 used to complete partial parses.
func (r *Rules[D]) FloorDate(year int) (D, error) {
	var zero D
	months, err := r.chrono.Months(year)
	if err != nil {
		return zero, err
	}
	return r.chrono.Date(year, months[0], 1)
}

// CeilingDate returns the last day of the year.
func (r *Rules[D]) CeilingDate(year int) (D, error) {
	var zero D
	months, err := r.chrono.Months(year)
	if err != nil {
		return zero, err
	}
	last := months[len(months)-1]
	length, err := r.chrono.MonthLength(year, last)
	if err != nil {
		return zero, err
	}
	return r.chrono.Date(year, last, length)
}

// startOfYear returns the epoch day of the year's first day.
func (r *Rules[D]) startOfYear(year int) (almanac.EpochDay, error) {
	d, err := r.FloorDate(year)
	if err != nil {
		return 0, err
	}
	return r.chrono.EpochDay(d), nil
}

// monthIndex returns the 1-based ordinal of the month within its year.
func monthIndex(months []almanac.MonthSpec, month almanac.MonthSpec) int {
	for i, m := range months {
		if m == month {
			return i + 1
		}
	}
	return 0
}

// clampDay drops a leap flag the target year lacks and clamps the day of
// month to the target month's length. This is the composite-set rule:
// setting a coarser field never overflows the day into a neighbor month.
func (r *Rules[D]) clampDay(year int, month almanac.MonthSpec, day int) (D, error) {
	var zero D
	months, err := r.chrono.Months(year)
	if err != nil {
		return zero, err
	}
	if monthIndex(months, month) == 0 && month.Leap {
		month = almanac.Month(month.Number)
	}
	length, err := r.chrono.MonthLength(year, month)
	if err != nil {
		return zero, err
	}
	if day > length {
		day = length
	}
	return r.chrono.Date(year, month, day)
}
