// Package coptic implements the Coptic calendar, an arithmetic calendar of
// twelve 30-day months followed by a 5- or 6-day epagomenal month. Year 1
// begins on Julian 284-08-29 (the Diocletian epoch); a year is leap when
// it leaves remainder 3 modulo 4, giving the epagomenal month its sixth
// day. Both conversion directions are closed-form.
package coptic

import (
	"fmt"

	"almanac"
)

// Era is the single Coptic era, Anno Martyrum.
const Era = "AM"

const (
	// epochOffset is the epoch day of Coptic 1-01-01 (Julian 284-08-29).
	epochOffset = -615558

	// MinYear and MaxYear bound the supported years.
	MinYear = 1
	MaxYear = 9999
)

// Date is an immutable Coptic calendar date.
type Date struct {
	year  int
	month int
	day   int
}

// Calendar is the Coptic calendar system. The zero value is ready to use.
type Calendar struct{}

// Variant returns the registry name of the calendar.
func (Calendar) Variant() string { return "coptic" }

// MinEpochDay returns the first supported epoch day.
func (Calendar) MinEpochDay() almanac.EpochDay { return epochOffset }

// MaxEpochDay returns the last supported epoch day.
func (Calendar) MaxEpochDay() almanac.EpochDay {
	return toEpochDay(MaxYear, 13, yearLengthDays(MaxYear)-360)
}

// IsLeapYear reports whether the Coptic year has an intercalated sixth
// epagomenal day.
func IsLeapYear(year int) bool {
	return almanac.FloorMod(int64(year), 4) == 3
}

func yearLengthDays(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

func monthLengthDays(year, month int) int {
	if month < 13 {
		return 30
	}
	if IsLeapYear(year) {
		return 6
	}
	return 5
}

// New validates the fields and returns the Coptic date they denote.
func New(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, almanac.Errorf(almanac.OutOfRange, "coptic year %d is out of range (%d-%d)", year, MinYear, MaxYear)
	}
	if month < 1 || month > 13 {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "coptic month %d is out of range (1-13)", month)
	}
	if max := monthLengthDays(year, month); day < 1 || day > max {
		return Date{}, almanac.Errorf(almanac.InvalidDate,
			"coptic day %d is out of range for month %d of year %d (1-%d)", day, month, year, max)
	}
	return Date{year: year, month: month, day: day}, nil
}

func toEpochDay(year, month, day int) almanac.EpochDay {
	y := int64(year)
	days := 365*(y-1) + almanac.FloorDiv(y, 4) + int64(30*(month-1)) + int64(day-1)
	return almanac.EpochDay(epochOffset + days)
}

// FromEpochDay converts an epoch day to its Coptic date.
func FromEpochDay(epochDay almanac.EpochDay) (Date, error) {
	var cal Calendar
	if epochDay < cal.MinEpochDay() || epochDay > cal.MaxEpochDay() {
		return Date{}, almanac.Errorf(almanac.OutOfRange,
			"epoch day %d is outside the coptic range [%d,%d]", epochDay, cal.MinEpochDay(), cal.MaxEpochDay())
	}
	delta := int64(epochDay) - epochOffset
	year := int(almanac.FloorDiv(4*delta+1463, 1461))
	startOfYear := 365*int64(year-1) + almanac.FloorDiv(int64(year), 4)
	dayOfYear := int(delta - startOfYear) // 0-based
	return Date{
		year:  year,
		month: dayOfYear/30 + 1,
		day:   dayOfYear%30 + 1,
	}, nil
}

// EpochDay returns the canonical epoch day of the date.
func (d Date) EpochDay() almanac.EpochDay {
	return toEpochDay(d.year, d.month, d.day)
}

// Year returns the year of the Anno Martyrum era.
func (d Date) Year() int { return d.year }

// Month returns the month, 1..13; month 13 is the epagomenal month.
func (d Date) Month() almanac.MonthSpec { return almanac.Month(d.month) }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// DayOfYear returns the 1-based ordinal day within the year.
func (d Date) DayOfYear() int { return 30*(d.month-1) + d.day }

// LengthOfMonth returns the number of days in the date's month.
func (d Date) LengthOfMonth() int { return monthLengthDays(d.year, d.month) }

// LengthOfYear returns the number of days in the date's year.
func (d Date) LengthOfYear() int { return yearLengthDays(d.year) }

func (d Date) String() string {
	return fmt.Sprintf("%s %d-%02d-%02d", Era, d.year, d.month, d.day)
}

// Chronology methods: the generic field and week engines drive the
// calendar through this uniform surface.

// Date builds a date from chronology fields.
func (Calendar) Date(year int, month almanac.MonthSpec, day int) (Date, error) {
	if month.Leap {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "the coptic calendar has no leap months")
	}
	return New(year, month.Number, day)
}

// Fields deconstructs a date into chronology fields.
func (Calendar) Fields(d Date) (year int, month almanac.MonthSpec, day int) {
	return d.year, almanac.Month(d.month), d.day
}

// EpochDay converts a date to its epoch day.
func (Calendar) EpochDay(d Date) almanac.EpochDay { return d.EpochDay() }

// FromEpochDay converts an epoch day to a date.
func (Calendar) FromEpochDay(epochDay almanac.EpochDay) (Date, error) {
	return FromEpochDay(epochDay)
}

// Months returns the ordered months of a year.
func (Calendar) Months(year int) ([]almanac.MonthSpec, error) {
	if year < MinYear || year > MaxYear {
		return nil, almanac.Errorf(almanac.OutOfRange, "coptic year %d is out of range (%d-%d)", year, MinYear, MaxYear)
	}
	months := make([]almanac.MonthSpec, 13)
	for i := range months {
		months[i] = almanac.Month(i + 1)
	}
	return months, nil
}

// MonthLength returns the length of a month.
func (Calendar) MonthLength(year int, month almanac.MonthSpec) (int, error) {
	if month.Leap || month.Number < 1 || month.Number > 13 {
		return 0, almanac.Errorf(almanac.InvalidDate, "coptic month %s does not exist", month)
	}
	return monthLengthDays(year, month.Number), nil
}

// YearLength returns the length of a year in days.
func (Calendar) YearLength(year int) (int, error) {
	if year < MinYear || year > MaxYear {
		return 0, almanac.Errorf(almanac.OutOfRange, "coptic year %d is out of range (%d-%d)", year, MinYear, MaxYear)
	}
	return yearLengthDays(year), nil
}

// Bounds returns the supported epoch day range.
func (c Calendar) Bounds() (min, max almanac.EpochDay) {
	return c.MinEpochDay(), c.MaxEpochDay()
}
