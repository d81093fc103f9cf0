package resource

import (
	"sort"

	"almanac"
)

// Index is the flattened month index built once from a loaded table: a
// cumulative start-epoch-day array and a parallel length array, one entry
// per month of every year the table covers. It supports the binary-search
// transform from epoch day to (year, month, day) and the inverse.
type Index struct {
	table  *Table
	start  []almanac.EpochDay // epoch day of day 1 of each month
	length []int
	// firstMonth[i] is the position in start of month 1 of MinYear+i.
	firstMonth []int
}

// BuildIndex flattens a loaded table. The invariant
// start[i+1] == start[i] + length[i] holds by construction.
func BuildIndex(t *Table) *Index {
	total := 0
	for _, rec := range t.Years {
		total += len(rec.Lengths)
	}
	x := &Index{
		table:      t,
		start:      make([]almanac.EpochDay, 0, total),
		length:     make([]int, 0, total),
		firstMonth: make([]int, 0, len(t.Years)),
	}
	cursor := t.IsoStart
	for _, rec := range t.Years {
		x.firstMonth = append(x.firstMonth, len(x.start))
		for _, monthLen := range rec.Lengths {
			x.start = append(x.start, cursor)
			x.length = append(x.length, monthLen)
			cursor += almanac.EpochDay(monthLen)
		}
	}
	return x
}

// Table returns the backing table.
func (x *Index) Table() *Table { return x.table }

// MinEpochDay returns the first day the table covers.
func (x *Index) MinEpochDay() almanac.EpochDay { return x.table.IsoStart }

// MaxEpochDay returns the last day the table covers.
func (x *Index) MaxEpochDay() almanac.EpochDay {
	last := len(x.start) - 1
	return x.start[last] + almanac.EpochDay(x.length[last]) - 1
}

// Record returns the year record for a table year.
func (x *Index) Record(year int) (YearRecord, error) {
	if year < x.table.MinYear || year > x.table.MaxYear {
		return YearRecord{}, almanac.Errorf(almanac.OutOfRange,
			"year %d is outside the %s table range [%d,%d]",
			year, x.table.Type, x.table.MinYear, x.table.MaxYear)
	}
	return x.table.Years[year-x.table.MinYear], nil
}

// MonthsInYear returns the number of months (12 or 13) in a table year.
func (x *Index) MonthsInYear(year int) (int, error) {
	rec, err := x.Record(year)
	if err != nil {
		return 0, err
	}
	return len(rec.Lengths), nil
}

// MonthSpecs returns the ordered month descriptors of a table year, with
// the leap month (if any) flagged after its same-numbered predecessor.
func (x *Index) MonthSpecs(year int) ([]almanac.MonthSpec, error) {
	rec, err := x.Record(year)
	if err != nil {
		return nil, err
	}
	specs := make([]almanac.MonthSpec, 0, len(rec.Lengths))
	for n := 1; n <= 12; n++ {
		specs = append(specs, almanac.Month(n))
		if rec.LeapMonth == n {
			specs = append(specs, almanac.LeapMonth(n))
		}
	}
	return specs, nil
}

// monthPos returns the 0-based position of a month within its year.
func monthPos(rec YearRecord, month almanac.MonthSpec) (int, error) {
	if month.Number < 1 || month.Number > 12 {
		return 0, almanac.Errorf(almanac.InvalidDate, "month %d is out of range (1-12)", month.Number)
	}
	if month.Leap && rec.LeapMonth != month.Number {
		if rec.LeapMonth == 0 {
			return 0, almanac.Errorf(almanac.InvalidDate, "year has no leap month, got leap month %d", month.Number)
		}
		return 0, almanac.Errorf(almanac.InvalidDate,
			"leap month %d does not match the year's leap month %d", month.Number, rec.LeapMonth)
	}
	pos := month.Number - 1
	if rec.LeapMonth > 0 && (month.Number > rec.LeapMonth || month.Leap) {
		pos++
	}
	return pos, nil
}

// monthSpecAt is the inverse of monthPos.
func monthSpecAt(rec YearRecord, pos int) almanac.MonthSpec {
	if rec.LeapMonth == 0 || pos < rec.LeapMonth {
		return almanac.Month(pos + 1)
	}
	if pos == rec.LeapMonth {
		return almanac.LeapMonth(rec.LeapMonth)
	}
	return almanac.Month(pos)
}

// MonthLength returns the length of a month in a table year.
func (x *Index) MonthLength(year int, month almanac.MonthSpec) (int, error) {
	rec, err := x.Record(year)
	if err != nil {
		return 0, err
	}
	pos, err := monthPos(rec, month)
	if err != nil {
		return 0, err
	}
	return rec.Lengths[pos], nil
}

// YearLength returns the number of days in a table year.
func (x *Index) YearLength(year int) (int, error) {
	rec, err := x.Record(year)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, monthLen := range rec.Lengths {
		total += monthLen
	}
	return total, nil
}

// ToEpochDay converts (year, month, day) to the epoch day of that date.
func (x *Index) ToEpochDay(year int, month almanac.MonthSpec, day int) (almanac.EpochDay, error) {
	rec, err := x.Record(year)
	if err != nil {
		return 0, err
	}
	pos, err := monthPos(rec, month)
	if err != nil {
		return 0, err
	}
	if day < 1 || day > rec.Lengths[pos] {
		return 0, almanac.Errorf(almanac.InvalidDate,
			"day %d is out of range for month %s of year %d (1-%d)", day, month, year, rec.Lengths[pos])
	}
	flat := x.firstMonth[year-x.table.MinYear] + pos
	return x.start[flat] + almanac.EpochDay(day-1), nil
}

// FromEpochDay locates the containing month by binary search over the
// start array (largest start <= epochDay) and derives (year, month, day).
func (x *Index) FromEpochDay(epochDay almanac.EpochDay) (year int, month almanac.MonthSpec, day int, err error) {
	if epochDay < x.MinEpochDay() || epochDay > x.MaxEpochDay() {
		return 0, almanac.MonthSpec{}, 0, almanac.Errorf(almanac.OutOfRange,
			"epoch day %d is outside the %s table range [%d,%d]",
			epochDay, x.table.Type, x.MinEpochDay(), x.MaxEpochDay())
	}
	// First index whose start exceeds the target, minus one.
	flat := sort.Search(len(x.start), func(i int) bool { return x.start[i] > epochDay }) - 1
	yearIdx := sort.Search(len(x.firstMonth), func(i int) bool { return x.firstMonth[i] > flat }) - 1
	year = x.table.MinYear + yearIdx
	rec := x.table.Years[yearIdx]
	pos := flat - x.firstMonth[yearIdx]
	month = monthSpecAt(rec, pos)
	day = int(epochDay-x.start[flat]) + 1
	return year, month, day, nil
}
