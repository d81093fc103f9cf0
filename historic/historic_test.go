package historic

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"almanac"
)

func mustSystem(t *testing.T, variant string, opts ...Option) *System {
	t.Helper()
	s, err := NewSystem(variant, opts...)
	if err != nil {
		t.Fatalf("NewSystem(%q) error: %v", variant, err)
	}
	return s
}

func TestCutoverGap(t *testing.T) {
	s := mustSystem(t, "historic")

	last, err := s.New("AD", 1582, 10, 4)
	if err != nil {
		t.Fatalf("last julian day rejected: %v", err)
	}
	if last.EpochDay() != -141428 {
		t.Errorf("1582-10-04 = %d, want -141428", last.EpochDay())
	}

	first, err := s.New("AD", 1582, 10, 15)
	if err != nil {
		t.Fatalf("first gregorian day rejected: %v", err)
	}
	if first.EpochDay() != -141427 {
		t.Errorf("1582-10-15 = %d, want -141427", first.EpochDay())
	}

	// The two sides of the reform are adjacent days.
	if first.EpochDay() != last.EpochDay()+1 {
		t.Errorf("gap is not seamless: %d then %d", last.EpochDay(), first.EpochDay())
	}
	next, err := s.FromEpochDay(last.EpochDay() + 1)
	if err != nil {
		t.Fatal(err)
	}
	if next != first {
		t.Errorf("day after 1582-10-04 = %v, want %v", next, first)
	}

	// The skipped days never existed.
	for day := 5; day <= 14; day++ {
		if _, err := s.New("AD", 1582, 10, day); !almanac.IsKind(err, almanac.InvalidDate) {
			t.Errorf("1582-10-%02d: error = %v, want INVALID_DATE", day, err)
		}
	}
}

func TestCustomCutover(t *testing.T) {
	// England switched in September 1752: 1752-09-02 was followed by
	// 1752-09-14.
	s := mustSystem(t, "historic:1752-09-14")

	last, err := s.New("AD", 1752, 9, 2)
	if err != nil {
		t.Fatalf("last julian day rejected: %v", err)
	}
	first, err := s.New("AD", 1752, 9, 14)
	if err != nil {
		t.Fatalf("first gregorian day rejected: %v", err)
	}
	if first.EpochDay() != last.EpochDay()+1 {
		t.Errorf("gap is not seamless: %d then %d", last.EpochDay(), first.EpochDay())
	}
	for day := 3; day <= 13; day++ {
		if _, err := s.New("AD", 1752, 9, day); !almanac.IsKind(err, almanac.InvalidDate) {
			t.Errorf("1752-09-%02d: error = %v, want INVALID_DATE", day, err)
		}
	}
	// Under this variant October 1582 is entirely Julian.
	if _, err := s.New("AD", 1582, 10, 10); err != nil {
		t.Errorf("julian 1582-10-10 rejected under late cutover: %v", err)
	}
}

func TestVariantParsing(t *testing.T) {
	tests := []struct {
		variant string
		ok      bool
	}{
		{"historic", true},
		{"historic:1752-09-14", true},
		{"historic:1582-10-15", true},
		{"historic:1582-10-14", false}, // predates the reform
		{"historic:oct-1582", false},
		{"historic:1582-13-01", false},
		{"historical", false},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			_, err := NewSystem(tt.variant)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !almanac.IsKind(err, almanac.UnsupportedVariant) {
				t.Errorf("error = %v, want UNSUPPORTED_VARIANT", err)
			}
		})
	}
}

func TestEras(t *testing.T) {
	s := mustSystem(t, "historic")

	bc, err := s.New("BC", 1, 12, 31)
	if err != nil {
		t.Fatalf("BC 1-12-31 rejected: %v", err)
	}
	if bc.AstronomicalYear() != 0 {
		t.Errorf("BC 1 astronomical year = %d, want 0", bc.AstronomicalYear())
	}
	ad, err := s.New("AD", 1, 1, 1)
	if err != nil {
		t.Fatalf("AD 1-01-01 rejected: %v", err)
	}
	if ad.EpochDay() != -719164 {
		t.Errorf("AD 1-01-01 = %d, want -719164", ad.EpochDay())
	}
	if ad.EpochDay() != bc.EpochDay()+1 {
		t.Errorf("era boundary not seamless: %d then %d", bc.EpochDay(), ad.EpochDay())
	}

	caesar, err := s.New("BC", 44, 3, 15)
	if err != nil {
		t.Fatalf("BC 44-03-15 rejected: %v", err)
	}
	if caesar.AstronomicalYear() != -43 {
		t.Errorf("BC 44 astronomical year = %d, want -43", caesar.AstronomicalYear())
	}
	back, err := s.FromEpochDay(caesar.EpochDay())
	if err != nil {
		t.Fatal(err)
	}
	if back.Era() != "BC" || back.Year() != 44 {
		t.Errorf("round trip = %s %d, want BC 44", back.Era(), back.Year())
	}

	if _, err := s.New("CE", 2000, 1, 1); !almanac.IsKind(err, almanac.UnsupportedVariant) {
		t.Errorf("unknown era: error = %v, want UNSUPPORTED_VARIANT", err)
	}
	if _, err := s.New("BC", 4712, 1, 2); err != nil {
		t.Errorf("earliest supported year rejected: %v", err)
	}
	if _, err := s.New("BC", 4713, 1, 1); !almanac.IsKind(err, almanac.OutOfRange) {
		t.Errorf("year before the minimum: error = %v, want OUT_OF_RANGE", err)
	}
}

func TestLeapYearsAcrossTheCutover(t *testing.T) {
	s := mustSystem(t, "historic")

	// Julian rules apply before the cutover: all century years are leap.
	for year, want := range map[int]bool{1500: true, 1100: true, 900: true, -100: true} {
		if got := s.IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
	// Gregorian rules after: 1700, 1800, 1900 are common.
	for year, want := range map[int]bool{1600: true, 1700: false, 1900: false, 2000: true} {
		if got := s.IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}
}

func TestCutoverYearLength(t *testing.T) {
	s := mustSystem(t, "historic")

	length, err := s.YearLength(1582)
	if err != nil {
		t.Fatal(err)
	}
	if length != 355 {
		t.Errorf("YearLength(1582) = %d, want 355", length)
	}

	// October 1582 has 31 numbered days but only 21 real ones; the month
	// length is the highest valid day number.
	monthLen, err := s.MonthLength(1582, almanac.Month(10))
	if err != nil {
		t.Fatal(err)
	}
	if monthLen != 31 {
		t.Errorf("MonthLength(1582, 10) = %d, want 31", monthLen)
	}

	plain, err := s.YearLength(1581)
	if err != nil {
		t.Fatal(err)
	}
	if plain != 365 {
		t.Errorf("YearLength(1581) = %d, want 365", plain)
	}
}

func TestAnnunciationNewYear(t *testing.T) {
	s := mustSystem(t, "historic", WithNewYearRule(Annunciation))

	// Under Lady Day reckoning, 1700-03-24 still displays as 1699.
	d, err := s.FromEpochDay(mustSystem(t, "historic").mustEpoch(t, "AD", 1700, 3, 24))
	if err != nil {
		t.Fatal(err)
	}
	if d.Year() != 1699 {
		t.Errorf("display year of 1700-03-24 = %d, want 1699", d.Year())
	}
	if d.AstronomicalYear() != 1700 {
		t.Errorf("astronomical year = %d, want 1700", d.AstronomicalYear())
	}

	// March 25 opens the display year.
	d2, err := s.FromEpochDay(d.EpochDay() + 1)
	if err != nil {
		t.Fatal(err)
	}
	if d2.Year() != 1700 {
		t.Errorf("display year of 1700-03-25 = %d, want 1700", d2.Year())
	}

	// Construction accepts display years and lands on the same days.
	back, err := s.New("AD", 1699, 3, 24)
	if err != nil {
		t.Fatal(err)
	}
	if back.EpochDay() != d.EpochDay() {
		t.Errorf("New(AD 1699-03-24) = %d, want %d", back.EpochDay(), d.EpochDay())
	}
}

// mustEpoch builds a date on the receiver and returns its epoch day.
func (s *System) mustEpoch(t *testing.T, eraName string, year, month, day int) almanac.EpochDay {
	t.Helper()
	d, err := s.New(eraName, year, month, day)
	if err != nil {
		t.Fatalf("New(%s %d-%02d-%02d) error: %v", eraName, year, month, day, err)
	}
	return d.EpochDay()
}

func TestRoundTripProperty(t *testing.T) {
	s := mustSystem(t, "historic")

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Every supported epoch day round-trips", prop.ForAll(
		func(day int64) bool {
			d, err := s.FromEpochDay(almanac.EpochDay(day))
			if err != nil {
				t.Logf("FromEpochDay(%d) error: %v", day, err)
				return false
			}
			if d.EpochDay() != almanac.EpochDay(day) {
				t.Logf("round trip of %d gave %d", day, d.EpochDay())
				return false
			}
			back, err := s.New(d.Era(), d.Year(), d.Month().Number, d.Day())
			if err != nil {
				t.Logf("New(%v) error: %v", d, err)
				return false
			}
			return back == d
		},
		gen.Int64Range(int64(s.MinEpochDay()), int64(s.MaxEpochDay())),
	))

	properties.Property("Consecutive days straddle the cutover seamlessly", prop.ForAll(
		func(offset int64) bool {
			day := s.Cutover() + almanac.EpochDay(offset)
			a, err1 := s.FromEpochDay(day)
			b, err2 := s.FromEpochDay(day + 1)
			if err1 != nil || err2 != nil {
				return false
			}
			return b.EpochDay() == a.EpochDay()+1
		},
		gen.Int64Range(-400, 400),
	))

	properties.TestingRun(t)
}

func TestBinaryRoundTrip(t *testing.T) {
	s := mustSystem(t, "historic:1752-09-14")
	d, err := s.New("AD", 1700, 2, 29) // julian leap day under the late cutover
	if err != nil {
		t.Fatal(err)
	}
	raw, err := d.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error: %v", err)
	}
	back, err := DecodeDate(raw)
	if err != nil {
		t.Fatalf("DecodeDate() error: %v", err)
	}
	if back.Era() != "AD" || back.Year() != 1700 || back.Day() != 29 {
		t.Errorf("DecodeDate() = %v, want %v", back, d)
	}
	if back.System().Variant() != "historic:1752-09-14" {
		t.Errorf("decoded variant = %q", back.System().Variant())
	}
	if back.EpochDay() != d.EpochDay() {
		t.Errorf("decoded epoch day = %d, want %d", back.EpochDay(), d.EpochDay())
	}
}
