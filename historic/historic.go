// Package historic implements the hybrid Julian/Gregorian calendar of
// western civil history: Julian rules strictly before a configurable
// cutover day, Gregorian rules from the cutover on, with the skipped days
// in between rejected as invalid. The default variant "historic" applies
// the first Gregorian reform, whose first Gregorian day was 1582-10-15;
// "historic:<iso-date>" moves the first Gregorian day, e.g.
// "historic:1752-09-14" for England.
//
// Years before AD 1 are counted in the BC era: BC year n is astronomical
// year 1-n. An optional Annunciation new-year rule renders display years
// that begin on March 25 instead of January 1; the chronology's internal
// year axis always remains the astronomical January-based year.
package historic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"almanac"
	"almanac/era"
	"almanac/internal/julian"
)

const (
	// VariantPrefix is the base variant name.
	VariantPrefix = "historic"

	// defaultCutover is the epoch day of Gregorian 1582-10-15, the first
	// day of the first Gregorian reform.
	defaultCutover almanac.EpochDay = -141427

	// minAstroYear bounds the astronomical years; BC 4712 is the earliest
	// representable year.
	minAstroYear = -4711
	maxAstroYear = 9999

	// adEraStart is the epoch day of Julian AD 1-01-01.
	adEraStart almanac.EpochDay = -719164
)

// NewYearRule selects the day a display year begins on.
type NewYearRule int

const (
	// JanuaryFirst numbers display years from January 1 (default).
	JanuaryFirst NewYearRule = iota
	// Annunciation numbers AD display years from March 25 (Lady Day
	// reckoning, applied from AD 2 on).
	Annunciation
)

// Date is an immutable historic date.
type Date struct {
	sys       *System
	eraName   string
	yearOfEra int
	astroYear int
	month     int
	day       int
}

// System is one historic calendar variant, immutable after construction.
type System struct {
	variant string
	cutover almanac.EpochDay
	rule    NewYearRule
	eras    *era.List
}

// Option configures a System.
type Option func(*System)

// WithNewYearRule sets the display new-year rule.
func WithNewYearRule(rule NewYearRule) Option {
	return func(s *System) { s.rule = rule }
}

var cutoverPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// NewSystem constructs the historic system named by the variant string.
func NewSystem(variant string, opts ...Option) (*System, error) {
	s := &System{variant: variant, cutover: defaultCutover}
	if variant != VariantPrefix {
		suffix, found := strings.CutPrefix(variant, VariantPrefix+":")
		if !found {
			return nil, almanac.Errorf(almanac.UnsupportedVariant, "unknown historic variant %q", variant)
		}
		matches := cutoverPattern.FindStringSubmatch(suffix)
		if matches == nil {
			return nil, almanac.Errorf(almanac.UnsupportedVariant,
				"cutover %q is not an ISO date (YYYY-MM-DD)", suffix)
		}
		year, _ := strconv.Atoi(matches[1])
		month, _ := strconv.Atoi(matches[2])
		day, _ := strconv.Atoi(matches[3])
		if month < 1 || month > 12 || day < 1 || day > julian.GregorianMonthLength(year, month) {
			return nil, almanac.Errorf(almanac.UnsupportedVariant, "cutover %q is not a valid date", suffix)
		}
		s.cutover = almanac.EpochDay(julian.GregorianToEpochDay(year, month, day))
		if s.cutover < defaultCutover {
			return nil, almanac.Errorf(almanac.UnsupportedVariant,
				"cutover %q predates the first Gregorian reform", suffix)
		}
	}
	for _, opt := range opts {
		opt(s)
	}

	eras, err := era.NewList([]era.Era{
		{Name: "BC", FirstRelatedYear: minAstroYear, Start: s.MinEpochDay()},
		{Name: "AD", FirstRelatedYear: 1, Start: adEraStart},
	})
	if err != nil {
		return nil, err
	}
	s.eras = eras
	return s, nil
}

// Variant returns the full variant string.
func (s *System) Variant() string { return s.variant }

// Cutover returns the first Gregorian epoch day of the variant.
func (s *System) Cutover() almanac.EpochDay { return s.cutover }

// Eras returns the BC/AD era list.
func (s *System) Eras() *era.List { return s.eras }

// MinEpochDay returns the first supported epoch day.
func (s *System) MinEpochDay() almanac.EpochDay {
	return almanac.EpochDay(julian.JulianToEpochDay(minAstroYear, 1, 1))
}

// MaxEpochDay returns the last supported epoch day.
func (s *System) MaxEpochDay() almanac.EpochDay {
	return almanac.EpochDay(julian.GregorianToEpochDay(maxAstroYear, 12, 31))
}

// IsLeapYear reports whether the astronomical year is leap under the
// rules in force at its February: Julian before the cutover year's
// switch, Gregorian after.
func (s *System) IsLeapYear(astroYear int) bool {
	// February 29 decides: leap iff the candidate day exists.
	_, err := s.fromAstro(astroYear, 2, 29)
	return err == nil
}

// fromAstro validates (astronomical year, month, day) against the hybrid
// rules and returns the epoch day.
func (s *System) fromAstro(astroYear, month, day int) (almanac.EpochDay, error) {
	if astroYear < minAstroYear || astroYear > maxAstroYear {
		return 0, almanac.Errorf(almanac.OutOfRange, "historic year %d is out of range", astroYear)
	}
	if month < 1 || month > 12 {
		return 0, almanac.Errorf(almanac.InvalidDate, "month %d is out of range (1-12)", month)
	}
	if day >= 1 && day <= julian.JulianMonthLength(astroYear, month) {
		ed := almanac.EpochDay(julian.JulianToEpochDay(astroYear, month, day))
		if ed < s.cutover {
			return ed, nil
		}
	}
	if day >= 1 && day <= julian.GregorianMonthLength(astroYear, month) {
		ed := almanac.EpochDay(julian.GregorianToEpochDay(astroYear, month, day))
		if ed >= s.cutover {
			return ed, nil
		}
	}
	return 0, almanac.Errorf(almanac.InvalidDate,
		"%04d-%02d-%02d does not exist in variant %q", astroYear, month, day, s.variant)
}

// toAstro splits an epoch day into hybrid (astronomical year, month, day).
func (s *System) toAstro(epochDay almanac.EpochDay) (astroYear, month, day int) {
	if epochDay < s.cutover {
		return julian.JulianFromEpochDay(int64(epochDay))
	}
	return julian.GregorianFromEpochDay(int64(epochDay))
}

// displayYear renders the astronomical year under the new-year rule.
func (s *System) displayYear(astroYear, month, day int) int {
	if s.rule == Annunciation && astroYear >= 2 && (month < 3 || (month == 3 && day < 25)) {
		return astroYear - 1
	}
	return astroYear
}

// astroFromDisplay is the inverse of displayYear for AD years.
func (s *System) astroFromDisplay(displayYear, month, day int) int {
	if s.rule == Annunciation && displayYear >= 1 && (month < 3 || (month == 3 && day < 25)) {
		return displayYear + 1
	}
	return displayYear
}

// New validates the fields and returns the historic date they denote.
// The era is "AD" or "BC"; the year of era is the display year under the
// system's new-year rule.
func (s *System) New(eraName string, yearOfEra, month, day int) (Date, error) {
	if yearOfEra < 1 {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "year of era %d must be >= 1", yearOfEra)
	}
	var astroYear int
	switch eraName {
	case "AD":
		astroYear = s.astroFromDisplay(yearOfEra, month, day)
	case "BC":
		astroYear = 1 - yearOfEra
	default:
		return Date{}, almanac.Errorf(almanac.UnsupportedVariant, "unknown era %q", eraName)
	}
	ed, err := s.fromAstro(astroYear, month, day)
	if err != nil {
		return Date{}, err
	}
	return s.FromEpochDay(ed)
}

// FromEpochDay converts an epoch day to its historic date.
func (s *System) FromEpochDay(epochDay almanac.EpochDay) (Date, error) {
	if epochDay < s.MinEpochDay() || epochDay > s.MaxEpochDay() {
		return Date{}, almanac.Errorf(almanac.OutOfRange,
			"epoch day %d is outside the %s range [%d,%d]", epochDay, s.variant, s.MinEpochDay(), s.MaxEpochDay())
	}
	astroYear, month, day := s.toAstro(epochDay)
	d := Date{sys: s, astroYear: astroYear, month: month, day: day}
	if astroYear >= 1 {
		d.eraName = "AD"
		d.yearOfEra = s.displayYear(astroYear, month, day)
	} else {
		d.eraName = "BC"
		d.yearOfEra = 1 - astroYear
	}
	return d, nil
}

// EpochDay returns the canonical epoch day of the date.
func (d Date) EpochDay() almanac.EpochDay {
	ed, _ := d.sys.fromAstro(d.astroYear, d.month, d.day)
	return ed
}

// Era returns "AD" or "BC".
func (d Date) Era() string { return d.eraName }

// Year returns the display year of the era, >= 1.
func (d Date) Year() int { return d.yearOfEra }

// AstronomicalYear returns the continuous January-based year
// (AD 1 = 1, BC 1 = 0).
func (d Date) AstronomicalYear() int { return d.astroYear }

// Month returns the month, 1..12.
func (d Date) Month() almanac.MonthSpec { return almanac.Month(d.month) }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// DayOfYear returns the 1-based ordinal of the date among the real days
// of its astronomical year; skipped cutover days do not count.
func (d Date) DayOfYear() int {
	return int(d.EpochDay()-d.sys.startOfYear(d.astroYear)) + 1
}

// LengthOfMonth returns the highest valid day number of the date's month.
func (d Date) LengthOfMonth() int {
	length, _ := d.sys.MonthLength(d.astroYear, almanac.Month(d.month))
	return length
}

// LengthOfYear returns the number of real days in the date's
// astronomical year.
func (d Date) LengthOfYear() int {
	length, _ := d.sys.YearLength(d.astroYear)
	return length
}

// System returns the variant system the date belongs to.
func (d Date) System() *System { return d.sys }

func (d Date) String() string {
	return fmt.Sprintf("%s %d-%02d-%02d (%s)", d.eraName, d.yearOfEra, d.month, d.day, d.sys.variant)
}

// startOfYear returns the epoch day of the first real day of the
// astronomical year. When January 1 falls into the cutover gap the year
// starts on the cutover day itself.
func (s *System) startOfYear(astroYear int) almanac.EpochDay {
	if jan1 := almanac.EpochDay(julian.JulianToEpochDay(astroYear, 1, 1)); jan1 < s.cutover {
		return jan1
	}
	if jan1 := almanac.EpochDay(julian.GregorianToEpochDay(astroYear, 1, 1)); jan1 >= s.cutover {
		return jan1
	}
	return s.cutover
}

// Chronology methods, keyed by the astronomical year as the continuous
// year axis.

// Date builds a date from chronology fields.
func (s *System) Date(year int, month almanac.MonthSpec, day int) (Date, error) {
	if month.Leap {
		return Date{}, almanac.Errorf(almanac.InvalidDate, "the historic calendar has no leap months")
	}
	ed, err := s.fromAstro(year, month.Number, day)
	if err != nil {
		return Date{}, err
	}
	return s.FromEpochDay(ed)
}

// Fields deconstructs a date into chronology fields.
func (s *System) Fields(d Date) (year int, month almanac.MonthSpec, day int) {
	return d.astroYear, almanac.Month(d.month), d.day
}

// EpochDay converts a date to its epoch day.
func (s *System) EpochDay(d Date) almanac.EpochDay { return d.EpochDay() }

// Months returns the ordered months of an astronomical year.
func (s *System) Months(year int) ([]almanac.MonthSpec, error) {
	if year < minAstroYear || year > maxAstroYear {
		return nil, almanac.Errorf(almanac.OutOfRange, "historic year %d is out of range", year)
	}
	months := make([]almanac.MonthSpec, 12)
	for i := range months {
		months[i] = almanac.Month(i + 1)
	}
	return months, nil
}

// MonthLength returns the highest valid day number of a month: the
// Julian length before the cutover, the Gregorian length from the
// cutover month on.
func (s *System) MonthLength(year int, month almanac.MonthSpec) (int, error) {
	if month.Leap || month.Number < 1 || month.Number > 12 {
		return 0, almanac.Errorf(almanac.InvalidDate, "historic month %s does not exist", month)
	}
	if year < minAstroYear || year > maxAstroYear {
		return 0, almanac.Errorf(almanac.OutOfRange, "historic year %d is out of range", year)
	}
	julianLength := julian.JulianMonthLength(year, month.Number)
	if almanac.EpochDay(julian.JulianToEpochDay(year, month.Number, julianLength)) < s.cutover {
		return julianLength, nil
	}
	return julian.GregorianMonthLength(year, month.Number), nil
}

// YearLength returns the number of real days in an astronomical year;
// the cutover year is short by the skipped days.
func (s *System) YearLength(year int) (int, error) {
	if year < minAstroYear || year > maxAstroYear {
		return 0, almanac.Errorf(almanac.OutOfRange, "historic year %d is out of range", year)
	}
	if year == maxAstroYear {
		return int(s.MaxEpochDay()-s.startOfYear(year)) + 1, nil
	}
	return int(s.startOfYear(year+1) - s.startOfYear(year)), nil
}

// Bounds returns the supported epoch day range.
func (s *System) Bounds() (min, max almanac.EpochDay) {
	return s.MinEpochDay(), s.MaxEpochDay()
}
