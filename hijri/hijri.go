// Package hijri implements the Islamic calendar in two flavors: the eight
// tabular (arithmetic) variants, and the table-driven astronomical
// Umm al-Qura variant backed by an embedded sighting table.
//
// The tabular variants group years into fixed 30-year cycles of
// 30*354+11 = 10631 days. A per-variant leap pattern marks the eleven
// in-cycle years of 355 days; months alternate 30/29 days and month 12
// gains a 30th day in leap years. Variant strings combine a leap pattern
// with an epoch convention:
//
//	islamic-east-civil      islamic-east-astro
//	islamic-west-civil      islamic-west-astro
//	islamic-fatimid-civil   islamic-fatimid-astro
//	islamic-habash-civil    islamic-habash-astro
//	islamic-umalqura
//
// The civil epoch is Julian 622-07-16 (Friday), the astronomical epoch one
// day earlier. A tabular variant may carry a day adjustment for local
// sighting corrections, written "islamic-east-civil:-2", adjustment in
// [-3,+3].
package hijri

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"almanac"
	"almanac/internal/resource"
)

// Era is the single Islamic era, Anno Hegirae.
const Era = "AH"

const (
	// MinYear and MaxYear bound the tabular variants. The umalqura
	// variant is bounded by its table instead.
	MinYear = 1
	MaxYear = 9999

	// cycleYears years of cycleDays days form one intercalation cycle.
	cycleYears = 30
	cycleDays  = 30*354 + 11

	// civilEpoch is the epoch day of AH 1-01-01 under the civil
	// convention (Julian 622-07-16); astroEpoch is one day earlier.
	civilEpoch = -492148
	astroEpoch = -492149

	// maxAdjust bounds the sighting correction.
	maxAdjust = 3

	// VariantUmalqura names the table-driven astronomical variant.
	VariantUmalqura = "islamic-umalqura"
)

// leapPatterns lists, per tabular family, the 1-based in-cycle years of
// 355 days. Each pattern has exactly eleven entries so a full cycle always
// sums to cycleDays.
var leapPatterns = map[string][]int{
	"east":    {2, 5, 7, 10, 13, 15, 18, 21, 24, 26, 29},
	"west":    {2, 5, 7, 10, 13, 16, 18, 21, 24, 26, 29},
	"fatimid": {2, 5, 8, 10, 13, 16, 19, 21, 24, 27, 29},
	"habash":  {2, 5, 8, 11, 13, 16, 19, 21, 24, 27, 30},
}

// Date is an immutable Hijri date bound to the system that produced it.
type Date struct {
	sys   *System
	year  int
	month int
	day   int
}

// System is one Hijri calendar variant. Construct with NewSystem; a
// System is immutable and safe for concurrent use.
type System struct {
	variant string
	adjust  int

	// Tabular variants: leap membership and cumulative day offset of
	// each in-cycle year, built once at construction.
	leap      [cycleYears + 1]bool
	yearStart [cycleYears + 1]int
	base      almanac.EpochDay

	// Umalqura: flattened month table; nil for tabular variants.
	index *resource.Index
}

// ParseVariant splits a variant string into its base name and day
// adjustment. An absent adjustment is zero.
func ParseVariant(variant string) (base string, adjust int, err error) {
	base, adjustStr, found := strings.Cut(variant, ":")
	if !found {
		return base, 0, nil
	}
	adjust, err = strconv.Atoi(adjustStr)
	if err != nil {
		return "", 0, almanac.Errorf(almanac.UnsupportedVariant,
			"malformed day adjustment in variant %q", variant)
	}
	return base, adjust, nil
}

// NewSystem constructs the Hijri system named by the variant string,
// using the embedded data table for islamic-umalqura.
func NewSystem(variant string) (*System, error) {
	return newSystem(variant, nil)
}

// NewSystemWithData constructs a table-driven Hijri system from caller
// supplied table bytes instead of the embedded resource.
func NewSystemWithData(variant string, data []byte) (*System, error) {
	return newSystem(variant, data)
}

func newSystem(variant string, data []byte) (*System, error) {
	base, adjust, err := ParseVariant(variant)
	if err != nil {
		return nil, err
	}

	if base == VariantUmalqura {
		if adjust != 0 {
			return nil, almanac.Errorf(almanac.UnsupportedVariant,
				"variant %q does not take a day adjustment", base)
		}
		if data == nil {
			data = umalquraData
		}
		table, err := resource.Load(data, VariantUmalqura)
		if err != nil {
			return nil, err
		}
		return &System{variant: base, index: resource.BuildIndex(table)}, nil
	}

	rest, epoch, found := strings.Cut(strings.TrimPrefix(base, "islamic-"), "-")
	pattern, ok := leapPatterns[rest]
	if !found || !ok || (epoch != "civil" && epoch != "astro") {
		return nil, almanac.Errorf(almanac.UnsupportedVariant, "unknown hijri variant %q", base)
	}
	if adjust < -maxAdjust || adjust > maxAdjust {
		return nil, almanac.Errorf(almanac.OutOfRange,
			"day adjustment %d is out of range (-%d..+%d)", adjust, maxAdjust, maxAdjust)
	}

	s := &System{variant: variant, adjust: adjust}
	if epoch == "civil" {
		s.base = civilEpoch
	} else {
		s.base = astroEpoch
	}
	for _, leapYear := range pattern {
		s.leap[leapYear] = true
	}
	for y := 1; y <= cycleYears; y++ {
		length := 354
		if s.leap[y] {
			length = 355
		}
		s.yearStart[y] = s.yearStart[y-1] + length
	}
	return s, nil
}

// Variant returns the full variant string, including any adjustment.
func (s *System) Variant() string { return s.variant }

// IsLeapYear reports whether the Hijri year has 355 days (tabular) or 13
// months' worth of extra day count per the table (umalqura: 355-day
// years).
func (s *System) IsLeapYear(year int) bool {
	if s.index != nil {
		length, err := s.index.YearLength(year)
		return err == nil && length == 355
	}
	return s.leap[inCycleYear(year)]
}

func inCycleYear(year int) int {
	return int(almanac.FloorMod(int64(year-1), cycleYears)) + 1
}

// monthStart returns the 0-based day offset of the month within its year
// under the alternating 30/29 scheme.
func monthStart(month int) int {
	return ((month-1)*59 + 1) / 2
}

func (s *System) monthLength(year, month int) int {
	if month%2 == 1 || (month == 12 && s.IsLeapYear(year)) {
		return 30
	}
	return 29
}

// MinEpochDay returns the first supported epoch day.
func (s *System) MinEpochDay() almanac.EpochDay {
	if s.index != nil {
		return s.index.MinEpochDay()
	}
	return s.base + almanac.EpochDay(s.adjust)
}

// MaxEpochDay returns the last supported epoch day.
func (s *System) MaxEpochDay() almanac.EpochDay {
	if s.index != nil {
		return s.index.MaxEpochDay()
	}
	ed, _ := s.toEpochDay(MaxYear, 12, s.monthLength(MaxYear, 12))
	return ed
}

func (s *System) yearRange() (min, max int) {
	if s.index != nil {
		return s.index.Table().MinYear, s.index.Table().MaxYear
	}
	return MinYear, MaxYear
}

// New validates the fields and returns the Hijri date they denote.
func (s *System) New(year, month, day int) (Date, error) {
	minYear, maxYear := s.yearRange()
	if year < minYear || year > maxYear {
		return Date{}, almanac.Errorf(almanac.OutOfRange,
			"%s year %d is out of range (%d-%d)", s.variant, year, minYear, maxYear)
	}
	if month < 1 || month > 12 {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "hijri month %d is out of range (1-12)", month)
	}
	max, err := s.MonthLength(year, almanac.Month(month))
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > max {
		return Date{}, almanac.Errorf(almanac.InvalidDate,
			"hijri day %d is out of range for month %d of year %d (1-%d)", day, month, year, max)
	}
	return Date{sys: s, year: year, month: month, day: day}, nil
}

func (s *System) toEpochDay(year, month, day int) (almanac.EpochDay, error) {
	if s.index != nil {
		return s.index.ToEpochDay(year, almanac.Month(month), day)
	}
	yy := int64(year - 1)
	cycle := almanac.FloorDiv(yy, cycleYears)
	inCycle := int(yy - cycle*cycleYears) // 0-based
	days := cycle*cycleDays + int64(s.yearStart[inCycle]) + int64(monthStart(month)) + int64(day-1)
	return s.base + almanac.EpochDay(s.adjust) + almanac.EpochDay(days), nil
}

// FromEpochDay converts an epoch day to its Hijri date.
func (s *System) FromEpochDay(epochDay almanac.EpochDay) (Date, error) {
	if epochDay < s.MinEpochDay() || epochDay > s.MaxEpochDay() {
		return Date{}, almanac.Errorf(almanac.OutOfRange,
			"epoch day %d is outside the %s range [%d,%d]", epochDay, s.variant, s.MinEpochDay(), s.MaxEpochDay())
	}
	if s.index != nil {
		year, month, day, err := s.index.FromEpochDay(epochDay)
		if err != nil {
			return Date{}, err
		}
		return Date{sys: s, year: year, month: month.Number, day: day}, nil
	}

	t := int64(epochDay - s.base - almanac.EpochDay(s.adjust))
	cycle := almanac.FloorDiv(t, cycleDays)
	residual := int(t - cycle*cycleDays) // 0..cycleDays-1
	// Largest in-cycle year whose start is <= residual; bounded scan.
	inCycle := sort.Search(cycleYears, func(i int) bool { return s.yearStart[i+1] > residual })
	year := int(cycle)*cycleYears + inCycle + 1
	dayOfYear := residual - s.yearStart[inCycle] // 0-based
	month := 1
	for dayOfYear >= s.monthLength(year, month) {
		dayOfYear -= s.monthLength(year, month)
		month++
	}
	return Date{sys: s, year: year, month: month, day: dayOfYear + 1}, nil
}

// EpochDay returns the canonical epoch day of the date.
func (d Date) EpochDay() almanac.EpochDay {
	ed, _ := d.sys.toEpochDay(d.year, d.month, d.day)
	return ed
}

// Year returns the year of the Anno Hegirae era.
func (d Date) Year() int { return d.year }

// Month returns the month, 1..12 (1 = Muharram).
func (d Date) Month() almanac.MonthSpec { return almanac.Month(d.month) }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// DayOfYear returns the 1-based ordinal day within the year.
func (d Date) DayOfYear() int {
	if d.sys.index != nil {
		total := d.day
		for m := 1; m < d.month; m++ {
			length, _ := d.sys.index.MonthLength(d.year, almanac.Month(m))
			total += length
		}
		return total
	}
	return monthStart(d.month) + d.day
}

// System returns the variant system the date belongs to.
func (d Date) System() *System { return d.sys }

func (d Date) String() string {
	return fmt.Sprintf("%s %d-%02d-%02d (%s)", Era, d.year, d.month, d.day, d.sys.variant)
}

// Chronology methods, the uniform surface for the field and week engines.

// Date builds a date from chronology fields.
func (s *System) Date(year int, month almanac.MonthSpec, day int) (Date, error) {
	if month.Leap {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "the hijri calendar has no leap months")
	}
	return s.New(year, month.Number, day)
}

// Fields deconstructs a date into chronology fields.
func (s *System) Fields(d Date) (year int, month almanac.MonthSpec, day int) {
	return d.year, almanac.Month(d.month), d.day
}

// EpochDay converts a date to its epoch day.
func (s *System) EpochDay(d Date) almanac.EpochDay { return d.EpochDay() }

// Months returns the ordered months of a year.
func (s *System) Months(year int) ([]almanac.MonthSpec, error) {
	minYear, maxYear := s.yearRange()
	if year < minYear || year > maxYear {
		return nil, almanac.Errorf(almanac.OutOfRange,
			"%s year %d is out of range (%d-%d)", s.variant, year, minYear, maxYear)
	}
	months := make([]almanac.MonthSpec, 12)
	for i := range months {
		months[i] = almanac.Month(i + 1)
	}
	return months, nil
}

// MonthLength returns the length of a month.
func (s *System) MonthLength(year int, month almanac.MonthSpec) (int, error) {
	if month.Leap || month.Number < 1 || month.Number > 12 {
		return 0, almanac.Errorf(almanac.InvalidDate, "hijri month %s does not exist", month)
	}
	if s.index != nil {
		return s.index.MonthLength(year, month)
	}
	minYear, maxYear := s.yearRange()
	if year < minYear || year > maxYear {
		return 0, almanac.Errorf(almanac.OutOfRange,
			"%s year %d is out of range (%d-%d)", s.variant, year, minYear, maxYear)
	}
	return s.monthLength(year, month.Number), nil
}

// YearLength returns the length of a year in days.
func (s *System) YearLength(year int) (int, error) {
	if s.index != nil {
		return s.index.YearLength(year)
	}
	minYear, maxYear := s.yearRange()
	if year < minYear || year > maxYear {
		return 0, almanac.Errorf(almanac.OutOfRange,
			"%s year %d is out of range (%d-%d)", s.variant, year, minYear, maxYear)
	}
	if s.IsLeapYear(year) {
		return 355, nil
	}
	return 354, nil
}

// Bounds returns the supported epoch day range.
func (s *System) Bounds() (min, max almanac.EpochDay) {
	return s.MinEpochDay(), s.MaxEpochDay()
}
