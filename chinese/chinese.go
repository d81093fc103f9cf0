// Package chinese implements the Chinese lunisolar calendar over the
// sexagesimal year cycle. Years are addressed as (cycle, year-of-cycle)
// with cycle 78 opening in Gregorian 1984. Leap-month placement depends on
// new-moon and solar-term astronomy, so it is taken from the embedded
// historical table rather than derived; a leap month repeats its
// predecessor's number with the leap flag set.
//
// The calendar day boundary is defined in local Chinese time, not UTC:
// Beijing local mean solar time (UTC+7:45:40) before 1929-01-01, the fixed
// UTC+8 zone afterwards.
package chinese

import (
	_ "embed"
	"fmt"
	"time"

	"almanac"
	"almanac/era"
	"almanac/internal/resource"
)

const (
	// cycleYears is the length of the sexagesimal cycle.
	cycleYears = 60

	// anchorCycle opened in anchorGregorianYear: cycle 78 year 1 is the
	// lunisolar year beginning in Gregorian 1984.
	anchorCycle         = 78
	anchorGregorianYear = 1984

	// boundarySwitch is the first day (Gregorian 1929-01-01) on which the
	// calendar day boundary follows the fixed UTC+8 zone instead of
	// Beijing local mean solar time.
	boundarySwitch almanac.EpochDay = -14975

	meanSolarOffset = (7*3600 + 45*60 + 40) * time.Second
	fixedZoneOffset = 8 * 3600 * time.Second
)

// chineseData is the compiled-in month-length and leap-month table.
//
//go:embed chinese.data
var chineseData []byte

// Date is an immutable Chinese lunisolar date.
type Date struct {
	sys   *System
	cycle int
	year  int // year of cycle, 1..60
	month almanac.MonthSpec
	day   int
}

// System is the Chinese calendar system, immutable after construction.
type System struct {
	index *resource.Index
	eras  *era.List
}

// NewSystem constructs the system from the embedded table.
func NewSystem() (*System, error) {
	return NewSystemWithData(chineseData)
}

// NewSystemWithData constructs the system from caller-supplied table
// bytes in the standard resource format.
func NewSystemWithData(data []byte) (*System, error) {
	table, err := resource.Load(data, "chinese")
	if err != nil {
		return nil, err
	}
	if !table.Lunisolar {
		return nil, almanac.Errorf(almanac.ResourceFormat, "chinese table must be declared lunisolar")
	}
	index := resource.BuildIndex(table)

	// Expose the sexagesimal cycles the table covers as an era list.
	var eras []era.Era
	for gy := table.MinYear; gy <= table.MaxYear; gy++ {
		cycle, year := cycleOf(gy)
		if year == 1 || gy == table.MinYear {
			start, _ := index.ToEpochDay(gy, almanac.Month(1), 1)
			eras = append(eras, era.Era{
				Name:             fmt.Sprintf("cycle-%d", cycle),
				FirstRelatedYear: gy - year + 1,
				Start:            start,
			})
		}
	}
	list, err := era.NewList(eras)
	if err != nil {
		return nil, err
	}
	return &System{index: index, eras: list}, nil
}

// cycleOf maps a related Gregorian year to (cycle, year-of-cycle).
func cycleOf(gregorianYear int) (cycle, year int) {
	offset := int64(gregorianYear - anchorGregorianYear)
	cycle = anchorCycle + int(almanac.FloorDiv(offset, cycleYears))
	year = int(almanac.FloorMod(offset, cycleYears)) + 1
	return cycle, year
}

// gregorianOf is the inverse of cycleOf.
func gregorianOf(cycle, year int) int {
	return anchorGregorianYear + (cycle-anchorCycle)*cycleYears + year - 1
}

// Variant returns the registry name of the calendar.
func (s *System) Variant() string { return "chinese" }

// MinEpochDay returns the first supported epoch day.
func (s *System) MinEpochDay() almanac.EpochDay { return s.index.MinEpochDay() }

// MaxEpochDay returns the last supported epoch day.
func (s *System) MaxEpochDay() almanac.EpochDay { return s.index.MaxEpochDay() }

// Cycles returns the sexagesimal cycles covered by the table as an
// ordered era list.
func (s *System) Cycles() *era.List { return s.eras }

// GetLeapMonth returns the number of the month whose leap twin is
// inserted in the given year, and whether the year has one at all.
func (s *System) GetLeapMonth(cycle, year int) (int, bool) {
	rec, err := s.index.Record(gregorianOf(cycle, year))
	if err != nil || rec.LeapMonth == 0 {
		return 0, false
	}
	return rec.LeapMonth, true
}

// IsLeapYear reports whether the year carries an embedded leap month.
func (s *System) IsLeapYear(cycle, year int) bool {
	_, ok := s.GetLeapMonth(cycle, year)
	return ok
}

// DayBoundaryOffset returns the UTC offset that defines the calendar day
// boundary on the given epoch day.
func (s *System) DayBoundaryOffset(epochDay almanac.EpochDay) time.Duration {
	if epochDay < boundarySwitch {
		return meanSolarOffset
	}
	return fixedZoneOffset
}

// New validates the fields and returns the Chinese date they denote.
// A leap-flagged month must match the table's recorded leap month for the
// year.
func (s *System) New(cycle, year int, month almanac.MonthSpec, day int) (Date, error) {
	if year < 1 || year > cycleYears {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "year of cycle %d is out of range (1-%d)", year, cycleYears)
	}
	gy := gregorianOf(cycle, year)
	if _, err := s.index.Record(gy); err != nil {
		return Date{}, err
	}
	if _, err := s.index.ToEpochDay(gy, month, day); err != nil {
		return Date{}, err
	}
	return Date{sys: s, cycle: cycle, year: year, month: month, day: day}, nil
}

// FromEpochDay converts an epoch day to its Chinese date.
func (s *System) FromEpochDay(epochDay almanac.EpochDay) (Date, error) {
	gy, month, day, err := s.index.FromEpochDay(epochDay)
	if err != nil {
		return Date{}, err
	}
	cycle, year := cycleOf(gy)
	return Date{sys: s, cycle: cycle, year: year, month: month, day: day}, nil
}

// FromTime converts an instant to the Chinese date containing it, using
// the historical day-boundary offset instead of the instant's own zone.
func (s *System) FromTime(t time.Time) (Date, error) {
	// Assume the modern boundary first; redo with the mean solar offset
	// when the result predates the zone switch.
	ed := boundaryDay(t, fixedZoneOffset)
	if ed < boundarySwitch {
		ed = boundaryDay(t, meanSolarOffset)
	}
	return s.FromEpochDay(ed)
}

func boundaryDay(t time.Time, offset time.Duration) almanac.EpochDay {
	return almanac.EpochDay(almanac.FloorDiv(t.Unix()+int64(offset/time.Second), 86400))
}

// EpochDay returns the canonical epoch day of the date.
func (d Date) EpochDay() almanac.EpochDay {
	ed, _ := d.sys.index.ToEpochDay(gregorianOf(d.cycle, d.year), d.month, d.day)
	return ed
}

// Cycle returns the sexagesimal cycle number.
func (d Date) Cycle() int { return d.cycle }

// YearOfCycle returns the year within the cycle, 1..60.
func (d Date) YearOfCycle() int { return d.year }

// RelatedGregorianYear returns the Gregorian year the lunisolar year
// begins in.
func (d Date) RelatedGregorianYear() int { return gregorianOf(d.cycle, d.year) }

// Month returns the month descriptor, leap flag included.
func (d Date) Month() almanac.MonthSpec { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// DayOfYear returns the 1-based ordinal day within the lunisolar year.
func (d Date) DayOfYear() int {
	gy := gregorianOf(d.cycle, d.year)
	start, _ := d.sys.index.ToEpochDay(gy, almanac.Month(1), 1)
	return int(d.EpochDay()-start) + 1
}

// LengthOfMonth returns the number of days in the date's month.
func (d Date) LengthOfMonth() int {
	length, _ := d.sys.index.MonthLength(gregorianOf(d.cycle, d.year), d.month)
	return length
}

// LengthOfYear returns the number of days in the date's lunisolar year.
func (d Date) LengthOfYear() int {
	length, _ := d.sys.index.YearLength(gregorianOf(d.cycle, d.year))
	return length
}

// System returns the calendar system the date belongs to.
func (d Date) System() *System { return d.sys }

func (d Date) String() string {
	return fmt.Sprintf("chinese c%d y%d m%s d%d", d.cycle, d.year, d.month, d.day)
}

// Chronology methods, keyed by the related Gregorian year as the
// continuous year axis.

// Date builds a date from chronology fields.
func (s *System) Date(year int, month almanac.MonthSpec, day int) (Date, error) {
	cycle, yearOfCycle := cycleOf(year)
	return s.New(cycle, yearOfCycle, month, day)
}

// Fields deconstructs a date into chronology fields.
func (s *System) Fields(d Date) (year int, month almanac.MonthSpec, day int) {
	return d.RelatedGregorianYear(), d.month, d.day
}

// EpochDay converts a date to its epoch day.
func (s *System) EpochDay(d Date) almanac.EpochDay { return d.EpochDay() }

// Months returns the ordered months of a year, leap month in place.
func (s *System) Months(year int) ([]almanac.MonthSpec, error) {
	return s.index.MonthSpecs(year)
}

// MonthLength returns the length of a month.
func (s *System) MonthLength(year int, month almanac.MonthSpec) (int, error) {
	return s.index.MonthLength(year, month)
}

// YearLength returns the length of a year in days.
func (s *System) YearLength(year int) (int, error) {
	return s.index.YearLength(year)
}

// Bounds returns the supported epoch day range.
func (s *System) Bounds() (min, max almanac.EpochDay) {
	return s.MinEpochDay(), s.MaxEpochDay()
}
