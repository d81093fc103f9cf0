// Package week derives locale-parameterized week fields (day of week,
// week of year, week of month) from any calendar exposing the field
// chronology surface. The computation only needs a 7-day week and the
// calendar's own day-of-month/day-of-year reckoning, so it is generic
// over every calendar regardless of its year and month irregularities.
package week

import (
	"almanac"
	"almanac/field"
)

// Engine computes week fields for one calendar under one week model.
// An Engine is immutable and safe for concurrent use.
type Engine[D any] struct {
	chrono field.Chrono[D]
	model  almanac.WeekModel
}

// NewEngine builds a week engine over a chronology.
func NewEngine[D any](chrono field.Chrono[D], model almanac.WeekModel) (*Engine[D], error) {
	validated, err := almanac.NewWeekModel(model.FirstDay, model.MinimalDays)
	if err != nil {
		return nil, err
	}
	return &Engine[D]{chrono: chrono, model: validated}, nil
}

// Model returns the engine's week model.
func (e *Engine[D]) Model() almanac.WeekModel { return e.model }

// DayOfWeek returns the localized day of week, remapped so the model's
// first day is 1.
func (e *Engine[D]) DayOfWeek(d D) int {
	iso := int(e.chrono.EpochDay(d).Weekday())
	return int(almanac.FloorMod(int64(iso-int(e.model.FirstDay)), 7)) + 1
}

// weekOneStart returns the day-of-period ordinal (possibly <= 0) of the
// first day of the period's week 1 under the model's first-week rule:
// the week containing day 1 opens the period iff it holds at least
// MinimalDays of it, otherwise week 1 is the following week.
func (e *Engine[D]) weekOneStart(firstDayOfWeek1Anchor int) int {
	// firstDayOfWeek1Anchor is the localized day of week of day 1.
	start := 2 - firstDayOfWeek1Anchor // <= 1
	if 8-firstDayOfWeek1Anchor < e.model.MinimalDays {
		start += 7
	}
	return start
}

// rawWeek places a day (1-based ordinal within the period) into its week
// index; 0 means the day falls before the period's week 1 and belongs to
// the previous period's last week.
func rawWeek(day, weekOneStart int) int {
	if day < weekOneStart {
		return 0
	}
	return (day-weekOneStart)/7 + 1
}

// periodWeeks counts the weeks assigned to a period of the given length.
// A trailing partial week is handed to the next period when it would hold
// at least MinimalDays of it.
func (e *Engine[D]) periodWeeks(length, weekOneStart int) int {
	span := length - weekOneStart + 1
	weeks := span / 7
	if rem := span % 7; rem > 0 && 7-rem < e.model.MinimalDays {
		weeks++
	}
	return weeks
}

// dayOfYear returns the 1-based ordinal of the date within its year.
func (e *Engine[D]) dayOfYear(d D) (year, doy int, err error) {
	year, _, _ = e.chrono.Fields(d)
	months, err := e.chrono.Months(year)
	if err != nil {
		return 0, 0, err
	}
	first, err := e.chrono.Date(year, months[0], 1)
	if err != nil {
		return 0, 0, err
	}
	return year, int(e.chrono.EpochDay(d)-e.chrono.EpochDay(first)) + 1, nil
}

// anchorDow returns the localized day of week of day 1 of the period
// containing a reference day with the given ordinal.
func (e *Engine[D]) anchorDow(d D, ordinal int) int {
	dow := e.DayOfWeek(d)
	return int(almanac.FloorMod(int64(dow-ordinal), 7)) + 1
}

// WeeksInYear returns the number of weeks the model assigns to the
// date's year.
func (e *Engine[D]) WeeksInYear(d D) (int, error) {
	year, doy, err := e.dayOfYear(d)
	if err != nil {
		return 0, err
	}
	length, err := e.chrono.YearLength(year)
	if err != nil {
		return 0, err
	}
	return e.periodWeeks(length, e.weekOneStart(e.anchorDow(d, doy))), nil
}

// WeekOfYear returns the bounded week of year, always in
// [1, WeeksInYear]. A day falling before the year's first week reports
// the last week of the previous year; a day past the year's last week
// reports week 1 (it opens the next year's first week).
//
// At the extreme ends of the calendar's supported range the adjacent
// year may be unreachable; the engine then widens the window by one week
// instead of failing, which can apply twice for a calendar spanning only
// a few weeks.
func (e *Engine[D]) WeekOfYear(d D) (int, error) {
	year, doy, err := e.dayOfYear(d)
	if err != nil {
		return 0, err
	}
	length, err := e.chrono.YearLength(year)
	if err != nil {
		return 0, err
	}
	weekOne := e.weekOneStart(e.anchorDow(d, doy))
	w := rawWeek(doy, weekOne)
	if w == 0 {
		// Last week of the previous year.
		prevLength, err := e.chrono.YearLength(year - 1)
		if err != nil {
			if almanac.IsKind(err, almanac.OutOfRange) {
				// No previous year: widen the current window downward.
				return 1, nil
			}
			return 0, err
		}
		// Day 1 of the previous year, counted from the reference day.
		prevAnchor := int(almanac.FloorMod(int64(e.DayOfWeek(d)-(doy+prevLength)), 7)) + 1
		return e.periodWeeks(prevLength, e.weekOneStart(prevAnchor)), nil
	}
	weeks := e.periodWeeks(length, weekOne)
	if w > weeks {
		// The trailing days open next year's week 1, unless there is no
		// next year, in which case the window widens upward.
		if _, err := e.chrono.YearLength(year + 1); err != nil {
			if almanac.IsKind(err, almanac.OutOfRange) {
				return w, nil
			}
			return 0, err
		}
		return 1, nil
	}
	return w, nil
}

// WeeksInMonth returns the number of weeks the model assigns to the
// date's month.
func (e *Engine[D]) WeeksInMonth(d D) (int, error) {
	year, month, day := e.chrono.Fields(d)
	length, err := e.chrono.MonthLength(year, month)
	if err != nil {
		return 0, err
	}
	return e.periodWeeks(length, e.weekOneStart(e.anchorDow(d, day))), nil
}

// WeekOfMonth returns the bounded week of month, in [1, WeeksInMonth],
// with the same boundary hand-off and range-widening behavior as
// WeekOfYear.
func (e *Engine[D]) WeekOfMonth(d D) (int, error) {
	year, month, day := e.chrono.Fields(d)
	length, err := e.chrono.MonthLength(year, month)
	if err != nil {
		return 0, err
	}
	weekOne := e.weekOneStart(e.anchorDow(d, day))
	w := rawWeek(day, weekOne)
	if w == 0 {
		prevLength, err := e.previousMonthLength(year, month)
		if err != nil {
			if almanac.IsKind(err, almanac.OutOfRange) {
				return 1, nil
			}
			return 0, err
		}
		prevAnchor := int(almanac.FloorMod(int64(e.DayOfWeek(d)-(day+prevLength)), 7)) + 1
		return e.periodWeeks(prevLength, e.weekOneStart(prevAnchor)), nil
	}
	weeks := e.periodWeeks(length, weekOne)
	if w > weeks {
		if _, err := e.nextMonthLength(year, month); err != nil {
			if almanac.IsKind(err, almanac.OutOfRange) {
				return w, nil
			}
			return 0, err
		}
		return 1, nil
	}
	return w, nil
}

// previousMonthLength walks one month backward, crossing a year boundary
// if needed.
func (e *Engine[D]) previousMonthLength(year int, month almanac.MonthSpec) (int, error) {
	months, err := e.chrono.Months(year)
	if err != nil {
		return 0, err
	}
	idx := indexOf(months, month)
	if idx > 0 {
		return e.chrono.MonthLength(year, months[idx-1])
	}
	prevMonths, err := e.chrono.Months(year - 1)
	if err != nil {
		return 0, err
	}
	return e.chrono.MonthLength(year-1, prevMonths[len(prevMonths)-1])
}

// nextMonthLength walks one month forward, crossing a year boundary if
// needed.
func (e *Engine[D]) nextMonthLength(year int, month almanac.MonthSpec) (int, error) {
	months, err := e.chrono.Months(year)
	if err != nil {
		return 0, err
	}
	idx := indexOf(months, month)
	if idx+1 < len(months) {
		return e.chrono.MonthLength(year, months[idx+1])
	}
	nextMonths, err := e.chrono.Months(year + 1)
	if err != nil {
		return 0, err
	}
	return e.chrono.MonthLength(year+1, nextMonths[0])
}

func indexOf(months []almanac.MonthSpec, month almanac.MonthSpec) int {
	for i, m := range months {
		if m == month {
			return i
		}
	}
	return -1
}
