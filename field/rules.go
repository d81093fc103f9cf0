package field

import (
	"almanac"
)

// yearRule addresses the continuous year axis. Lax mode clamps to the
// calendar's supported years instead of rolling over: the year has no
// coarser unit to roll into.
type yearRule[D any] struct{ r *Rules[D] }

func (yearRule[D]) Name() Name { return YearOfEra }

func (u yearRule[D]) Get(d D) int {
	year, _, _ := u.r.chrono.Fields(d)
	return year
}

func (u yearRule[D]) Min(D) int { return u.r.minYear }
func (u yearRule[D]) Max(D) int { return u.r.maxYear }

func (u yearRule[D]) IsValid(d D, value int) bool {
	if value < u.r.minYear || value > u.r.maxYear {
		return false
	}
	_, month, day := u.r.chrono.Fields(d)
	_, err := u.r.clampDay(value, month, day)
	return err == nil
}

func (u yearRule[D]) With(d D, value int, leniency almanac.Leniency) (D, error) {
	var zero D
	if value < u.r.minYear || value > u.r.maxYear {
		if leniency != almanac.Lax {
			return zero, almanac.Errorf(almanac.OutOfRange,
				"year %d is out of range (%d-%d)", value, u.r.minYear, u.r.maxYear)
		}
		if value < u.r.minYear {
			value = u.r.minYear
		} else {
			value = u.r.maxYear
		}
	}
	_, month, day := u.r.chrono.Fields(d)
	return u.r.clampDay(value, month, day)
}

func (yearRule[D]) AtFloor() Name   { return MonthOrdinal }
func (yearRule[D]) AtCeiling() Name { return MonthOrdinal }

// monthRule addresses the month by its ordinal position within the year,
// so a leap month is addressable uniformly across calendars.
type monthRule[D any] struct{ r *Rules[D] }

func (monthRule[D]) Name() Name { return MonthOrdinal }

func (u monthRule[D]) Get(d D) int {
	year, month, _ := u.r.chrono.Fields(d)
	months, err := u.r.chrono.Months(year)
	if err != nil {
		return 0
	}
	return monthIndex(months, month)
}

func (monthRule[D]) Min(D) int { return 1 }

func (u monthRule[D]) Max(d D) int {
	year, _, _ := u.r.chrono.Fields(d)
	months, err := u.r.chrono.Months(year)
	if err != nil {
		return 0
	}
	return len(months)
}

func (u monthRule[D]) IsValid(d D, value int) bool {
	return value >= 1 && value <= u.Max(d)
}

func (u monthRule[D]) With(d D, value int, leniency almanac.Leniency) (D, error) {
	var zero D
	year, _, day := u.r.chrono.Fields(d)
	if leniency == almanac.Lax {
		// Roll surplus months across year boundaries, bounded by the
		// supported year range.
		for value < 1 {
			if year <= u.r.minYear {
				return zero, almanac.Errorf(almanac.OutOfRange, "month ordinal %d underflows year %d", value, year)
			}
			year--
			months, err := u.r.chrono.Months(year)
			if err != nil {
				return zero, err
			}
			value += len(months)
		}
		for {
			months, err := u.r.chrono.Months(year)
			if err != nil {
				return zero, err
			}
			if value <= len(months) {
				break
			}
			if year >= u.r.maxYear {
				return zero, almanac.Errorf(almanac.OutOfRange, "month ordinal %d overflows year %d", value, year)
			}
			value -= len(months)
			year++
		}
	}
	months, err := u.r.chrono.Months(year)
	if err != nil {
		return zero, err
	}
	if value < 1 || value > len(months) {
		return zero, almanac.Errorf(almanac.OutOfRange,
			"month ordinal %d is out of range for year %d (1-%d)", value, year, len(months))
	}
	return u.r.clampDay(year, months[value-1], day)
}

func (monthRule[D]) AtFloor() Name   { return DayOfMonth }
func (monthRule[D]) AtCeiling() Name { return DayOfMonth }

// dayOfMonthRule addresses the day within the month. Its maximum depends
// on the date's year and month.
type dayOfMonthRule[D any] struct{ r *Rules[D] }

func (dayOfMonthRule[D]) Name() Name { return DayOfMonth }

func (u dayOfMonthRule[D]) Get(d D) int {
	_, _, day := u.r.chrono.Fields(d)
	return day
}

func (dayOfMonthRule[D]) Min(D) int { return 1 }

func (u dayOfMonthRule[D]) Max(d D) int {
	year, month, _ := u.r.chrono.Fields(d)
	length, err := u.r.chrono.MonthLength(year, month)
	if err != nil {
		return 0
	}
	return length
}

func (u dayOfMonthRule[D]) IsValid(d D, value int) bool {
	year, month, _ := u.r.chrono.Fields(d)
	_, err := u.r.chrono.Date(year, month, value)
	return err == nil
}

func (u dayOfMonthRule[D]) With(d D, value int, leniency almanac.Leniency) (D, error) {
	var zero D
	year, month, day := u.r.chrono.Fields(d)
	if leniency == almanac.Lax {
		// Overflow travels through the epoch-day axis.
		return u.r.chrono.FromEpochDay(u.r.chrono.EpochDay(d) + almanac.EpochDay(value-day))
	}
	date, err := u.r.chrono.Date(year, month, value)
	if err != nil {
		return zero, err
	}
	return date, nil
}

func (dayOfMonthRule[D]) AtFloor() Name   { return None }
func (dayOfMonthRule[D]) AtCeiling() Name { return None }

// dayOfYearRule addresses the ordinal day within the year.
type dayOfYearRule[D any] struct{ r *Rules[D] }

func (dayOfYearRule[D]) Name() Name { return DayOfYear }

func (u dayOfYearRule[D]) Get(d D) int {
	year, _, _ := u.r.chrono.Fields(d)
	start, err := u.r.startOfYear(year)
	if err != nil {
		return 0
	}
	return int(u.r.chrono.EpochDay(d)-start) + 1
}

func (dayOfYearRule[D]) Min(D) int { return 1 }

func (u dayOfYearRule[D]) Max(d D) int {
	year, _, _ := u.r.chrono.Fields(d)
	length, err := u.r.chrono.YearLength(year)
	if err != nil {
		return 0
	}
	return length
}

func (u dayOfYearRule[D]) IsValid(d D, value int) bool {
	return value >= 1 && value <= u.Max(d)
}

func (u dayOfYearRule[D]) With(d D, value int, leniency almanac.Leniency) (D, error) {
	var zero D
	year, _, _ := u.r.chrono.Fields(d)
	if leniency != almanac.Lax && !u.IsValid(d, value) {
		return zero, almanac.Errorf(almanac.OutOfRange,
			"day of year %d is out of range for year %d (1-%d)", value, year, u.Max(d))
	}
	start, err := u.r.startOfYear(year)
	if err != nil {
		return zero, err
	}
	return u.r.chrono.FromEpochDay(start + almanac.EpochDay(value-1))
}

func (dayOfYearRule[D]) AtFloor() Name   { return None }
func (dayOfYearRule[D]) AtCeiling() Name { return None }

// dayOfWeekRule addresses the ISO day of the week. Setting it moves the
// date within its current ISO week.
type dayOfWeekRule[D any] struct{ r *Rules[D] }

func (dayOfWeekRule[D]) Name() Name { return DayOfWeek }

func (u dayOfWeekRule[D]) Get(d D) int {
	return int(u.r.chrono.EpochDay(d).Weekday())
}

func (dayOfWeekRule[D]) Min(D) int { return 1 }
func (dayOfWeekRule[D]) Max(D) int { return 7 }

func (dayOfWeekRule[D]) IsValid(_ D, value int) bool {
	return value >= 1 && value <= 7
}

func (u dayOfWeekRule[D]) With(d D, value int, leniency almanac.Leniency) (D, error) {
	var zero D
	if leniency != almanac.Lax && (value < 1 || value > 7) {
		return zero, almanac.Errorf(almanac.OutOfRange, "day of week %d is out of range (1-7)", value)
	}
	delta := value - u.Get(d)
	return u.r.chrono.FromEpochDay(u.r.chrono.EpochDay(d) + almanac.EpochDay(delta))
}

func (dayOfWeekRule[D]) AtFloor() Name   { return None }
func (dayOfWeekRule[D]) AtCeiling() Name { return None }
