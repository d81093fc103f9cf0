// Package indian implements the Indian national calendar (Saka era), an
// arithmetic calendar locked to the Gregorian leap cycle. Saka year y
// begins on Gregorian 22 March of year y+78, or 21 March when that
// Gregorian year is leap; the first month then has 31 instead of 30 days.
// Months 2..6 have 31 days and months 7..12 have 30.
package indian

import (
	"fmt"

	"almanac"
	"almanac/internal/julian"
)

// Era is the single era of the calendar, Saka Era.
const Era = "SAKA"

const (
	// MinYear and MaxYear bound the supported Saka years.
	MinYear = 1
	MaxYear = 9999

	// yearOffset converts a Saka year to the Gregorian year its new year
	// falls in.
	yearOffset = 78
)

// Date is an immutable Indian national calendar date.
type Date struct {
	year  int
	month int
	day   int
}

// Calendar is the Indian national calendar system. The zero value is
// ready to use.
type Calendar struct{}

// Variant returns the registry name of the calendar.
func (Calendar) Variant() string { return "indian" }

// MinEpochDay returns the first supported epoch day.
func (Calendar) MinEpochDay() almanac.EpochDay { return startOfYear(MinYear) }

// MaxEpochDay returns the last supported epoch day.
func (Calendar) MaxEpochDay() almanac.EpochDay { return startOfYear(MaxYear+1) - 1 }

// IsLeapYear reports whether the Saka year has 366 days. The predicate is
// inherited from the Gregorian year the Saka year starts in.
func IsLeapYear(year int) bool {
	return julian.GregorianLeap(year + yearOffset)
}

// startOfYear returns the epoch day of 1 Chaitra of the Saka year.
func startOfYear(year int) almanac.EpochDay {
	gy := year + yearOffset
	day := 22
	if julian.GregorianLeap(gy) {
		day = 21
	}
	return almanac.EpochDay(julian.GregorianToEpochDay(gy, 3, day))
}

func monthLengthDays(year, month int) int {
	switch {
	case month == 1:
		if IsLeapYear(year) {
			return 31
		}
		return 30
	case month <= 6:
		return 31
	default:
		return 30
	}
}

func yearLengthDays(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// firstDayOfMonth returns the 1-based ordinal day of the first day of the
// month within its year.
func firstDayOfMonth(year, month int) int {
	ordinal := 1
	for m := 1; m < month; m++ {
		ordinal += monthLengthDays(year, m)
	}
	return ordinal
}

// New validates the fields and returns the Indian date they denote.
func New(year, month, day int) (Date, error) {
	if year < MinYear || year > MaxYear {
		return Date{}, almanac.Errorf(almanac.OutOfRange, "saka year %d is out of range (%d-%d)", year, MinYear, MaxYear)
	}
	if month < 1 || month > 12 {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "indian month %d is out of range (1-12)", month)
	}
	if max := monthLengthDays(year, month); day < 1 || day > max {
		return Date{}, almanac.Errorf(almanac.InvalidDate,
			"indian day %d is out of range for month %d of year %d (1-%d)", day, month, year, max)
	}
	return Date{year: year, month: month, day: day}, nil
}

// FromEpochDay converts an epoch day to its Indian date.
func FromEpochDay(epochDay almanac.EpochDay) (Date, error) {
	var cal Calendar
	if epochDay < cal.MinEpochDay() || epochDay > cal.MaxEpochDay() {
		return Date{}, almanac.Errorf(almanac.OutOfRange,
			"epoch day %d is outside the indian range [%d,%d]", epochDay, cal.MinEpochDay(), cal.MaxEpochDay())
	}
	// The Gregorian year containing the epoch day holds the Saka new year
	// either of the same Gregorian year or of the previous one.
	gy, _, _ := julian.GregorianFromEpochDay(int64(epochDay))
	year := gy - yearOffset
	if epochDay < startOfYear(year) {
		year--
	}
	dayOfYear := int(epochDay-startOfYear(year)) + 1
	month := 1
	for dayOfYear > monthLengthDays(year, month) {
		dayOfYear -= monthLengthDays(year, month)
		month++
	}
	return Date{year: year, month: month, day: dayOfYear}, nil
}

// EpochDay returns the canonical epoch day of the date.
func (d Date) EpochDay() almanac.EpochDay {
	return startOfYear(d.year) + almanac.EpochDay(firstDayOfMonth(d.year, d.month)-1+d.day-1)
}

// Year returns the Saka year.
func (d Date) Year() int { return d.year }

// Month returns the month, 1..12 (1 = Chaitra).
func (d Date) Month() almanac.MonthSpec { return almanac.Month(d.month) }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// DayOfYear returns the 1-based ordinal day within the year.
func (d Date) DayOfYear() int { return firstDayOfMonth(d.year, d.month) - 1 + d.day }

// LengthOfMonth returns the number of days in the date's month.
func (d Date) LengthOfMonth() int { return monthLengthDays(d.year, d.month) }

// LengthOfYear returns the number of days in the date's year.
func (d Date) LengthOfYear() int { return yearLengthDays(d.year) }

func (d Date) String() string {
	return fmt.Sprintf("%s %d-%02d-%02d", Era, d.year, d.month, d.day)
}

// Chronology methods, the uniform surface for the field and week engines.

// Date builds a date from chronology fields.
func (Calendar) Date(year int, month almanac.MonthSpec, day int) (Date, error) {
	if month.Leap {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "the indian calendar has no leap months")
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
		return nil, almanac.Errorf(almanac.OutOfRange, "saka year %d is out of range (%d-%d)", year, MinYear, MaxYear)
	}
	months := make([]almanac.MonthSpec, 12)
	for i := range months {
		months[i] = almanac.Month(i + 1)
	}
	return months, nil
}

// MonthLength returns the length of a month.
func (Calendar) MonthLength(year int, month almanac.MonthSpec) (int, error) {
	if month.Leap || month.Number < 1 || month.Number > 12 {
		return 0, almanac.Errorf(almanac.InvalidDate, "indian month %s does not exist", month)
	}
	return monthLengthDays(year, month.Number), nil
}

// YearLength returns the length of a year in days.
func (Calendar) YearLength(year int) (int, error) {
	if year < MinYear || year > MaxYear {
		return 0, almanac.Errorf(almanac.OutOfRange, "saka year %d is out of range (%d-%d)", year, MinYear, MaxYear)
	}
	return yearLengthDays(year), nil
}

// Bounds returns the supported epoch day range.
func (c Calendar) Bounds() (min, max almanac.EpochDay) {
	return c.MinEpochDay(), c.MaxEpochDay()
}
