// Package japanese implements the Japanese lunisolar calendar as used
// before the Gregorian changeover of Meiji 6 (1873-01-01). Month lengths
// and leap-month placement come from the embedded historical table; the
// final month of Meiji 5 lasted only two days and is preserved verbatim.
//
// Dates carry a nengo era. Within this table era changes are treated as
// retroactive to the start of the civil year, so the last year of an
// outgoing era and the first year of its successor name the same
// lunisolar year; era.List's leniency modes arbitrate such requests.
package japanese

import (
	_ "embed"
	"fmt"

	"almanac"
	"almanac/era"
	"almanac/internal/resource"
)

// japaneseData is the compiled-in lunisolar table for 1850..1872.
//
//go:embed japanese.data
var japaneseData []byte

// nengo lists the eras intersecting the table, by first related
// Gregorian year.
var nengo = []struct {
	name      string
	firstYear int
}{
	{"Kaei", 1848},
	{"Ansei", 1854},
	{"Man'en", 1860},
	{"Bunkyu", 1861},
	{"Genji", 1864},
	{"Keio", 1865},
	{"Meiji", 1868},
}

// Date is an immutable Japanese lunisolar date.
type Date struct {
	sys   *System
	era   era.Era
	year  int // year of era, >= 1
	month almanac.MonthSpec
	day   int
}

// System is the Japanese lunisolar calendar system, immutable after
// construction.
type System struct {
	index *resource.Index
	eras  *era.List
}

// NewSystem constructs the system from the embedded table.
func NewSystem() (*System, error) {
	return NewSystemWithData(japaneseData)
}

// NewSystemWithData constructs the system from caller-supplied table
// bytes in the standard resource format.
func NewSystemWithData(data []byte) (*System, error) {
	table, err := resource.Load(data, "japanese")
	if err != nil {
		return nil, err
	}
	if !table.Lunisolar {
		return nil, almanac.Errorf(almanac.ResourceFormat, "japanese table must be declared lunisolar")
	}
	index := resource.BuildIndex(table)

	eras := make([]era.Era, 0, len(nengo))
	for _, n := range nengo {
		start := index.MinEpochDay()
		if n.firstYear > table.MinYear {
			// Retroactive to the civil year: the era opens on the
			// lunisolar new year of its first related year.
			start, err = index.ToEpochDay(n.firstYear, almanac.Month(1), 1)
			if err != nil {
				return nil, err
			}
		}
		eras = append(eras, era.Era{Name: n.name, FirstRelatedYear: n.firstYear, Start: start})
	}
	list, err := era.NewList(eras)
	if err != nil {
		return nil, err
	}
	return &System{index: index, eras: list}, nil
}

// Variant returns the registry name of the calendar.
func (s *System) Variant() string { return "japanese" }

// MinEpochDay returns the first supported epoch day.
func (s *System) MinEpochDay() almanac.EpochDay { return s.index.MinEpochDay() }

// MaxEpochDay returns the last supported epoch day (Gregorian
// 1872-12-31).
func (s *System) MaxEpochDay() almanac.EpochDay { return s.index.MaxEpochDay() }

// Eras returns the ordered nengo list.
func (s *System) Eras() *era.List { return s.eras }

// GetLeapMonth returns the leap month recorded for the related Gregorian
// year, and whether the year has one.
func (s *System) GetLeapMonth(relatedYear int) (int, bool) {
	rec, err := s.index.Record(relatedYear)
	if err != nil || rec.LeapMonth == 0 {
		return 0, false
	}
	return rec.LeapMonth, true
}

// New validates the fields and returns the Japanese date they denote.
// The era name is reconciled with the era computed for the resulting day
// under the given leniency; an era one step off resolves silently under
// Smart and fails with ERA_MISMATCH under Strict.
func (s *System) New(eraName string, year int, month almanac.MonthSpec, day int, leniency almanac.Leniency) (Date, error) {
	supplied, err := s.eras.ByName(eraName)
	if err != nil {
		return Date{}, err
	}
	if year < 1 {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "year of era %d must be >= 1", year)
	}
	relatedYear := supplied.RelatedYear(year)
	epochDay, err := s.index.ToEpochDay(relatedYear, month, day)
	if err != nil {
		return Date{}, err
	}
	resolved, err := s.eras.Resolve(eraName, epochDay, leniency)
	if err != nil {
		return Date{}, err
	}
	return Date{
		sys:   s,
		era:   resolved,
		year:  resolved.YearOfEra(relatedYear),
		month: month,
		day:   day,
	}, nil
}

// FromEpochDay converts an epoch day to its Japanese date.
func (s *System) FromEpochDay(epochDay almanac.EpochDay) (Date, error) {
	relatedYear, month, day, err := s.index.FromEpochDay(epochDay)
	if err != nil {
		return Date{}, err
	}
	active, err := s.eras.At(epochDay)
	if err != nil {
		return Date{}, err
	}
	return Date{
		sys:   s,
		era:   active,
		year:  active.YearOfEra(relatedYear),
		month: month,
		day:   day,
	}, nil
}

// EpochDay returns the canonical epoch day of the date.
func (d Date) EpochDay() almanac.EpochDay {
	ed, _ := d.sys.index.ToEpochDay(d.RelatedGregorianYear(), d.month, d.day)
	return ed
}

// Era returns the nengo the date belongs to.
func (d Date) Era() era.Era { return d.era }

// Year returns the year of the era, >= 1.
func (d Date) Year() int { return d.year }

// RelatedGregorianYear returns the Gregorian year the lunisolar year
// begins in.
func (d Date) RelatedGregorianYear() int { return d.era.RelatedYear(d.year) }

// Month returns the month descriptor, leap flag included.
func (d Date) Month() almanac.MonthSpec { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// DayOfYear returns the 1-based ordinal day within the lunisolar year.
func (d Date) DayOfYear() int {
	start, _ := d.sys.index.ToEpochDay(d.RelatedGregorianYear(), almanac.Month(1), 1)
	return int(d.EpochDay()-start) + 1
}

// LengthOfMonth returns the number of days in the date's month.
func (d Date) LengthOfMonth() int {
	length, _ := d.sys.index.MonthLength(d.RelatedGregorianYear(), d.month)
	return length
}

// LengthOfYear returns the number of days in the date's lunisolar year.
func (d Date) LengthOfYear() int {
	length, _ := d.sys.index.YearLength(d.RelatedGregorianYear())
	return length
}

// System returns the calendar system the date belongs to.
func (d Date) System() *System { return d.sys }

func (d Date) String() string {
	return fmt.Sprintf("%s %d-%s-%02d", d.era.Name, d.year, d.month, d.day)
}

// Chronology methods, keyed by the related Gregorian year as the
// continuous year axis.

// Date builds a date from chronology fields.
func (s *System) Date(year int, month almanac.MonthSpec, day int) (Date, error) {
	epochDay, err := s.index.ToEpochDay(year, month, day)
	if err != nil {
		return Date{}, err
	}
	return s.FromEpochDay(epochDay)
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
