package coptic

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"almanac"
)

func TestKnownDates(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		epochDay         almanac.EpochDay
	}{
		{"era epoch", 1, 1, 1, -615558},
		{"new year 1741", 1741, 1, 1, 19977},
		{"mid winter 1736", 1736, 5, 16, 18286},
		{"epagomenal day of a leap year", 3, 13, 6, -614463},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatalf("New(%d, %d, %d) error: %v", tt.year, tt.month, tt.day, err)
			}
			if got := d.EpochDay(); got != tt.epochDay {
				t.Errorf("EpochDay() = %d, want %d", got, tt.epochDay)
			}
			back, err := FromEpochDay(tt.epochDay)
			if err != nil {
				t.Fatalf("FromEpochDay(%d) error: %v", tt.epochDay, err)
			}
			if back != d {
				t.Errorf("FromEpochDay(%d) = %v, want %v", tt.epochDay, back, d)
			}
		})
	}
}

func TestLeapYears(t *testing.T) {
	for year, want := range map[int]bool{3: true, 7: true, 1739: true, 4: false, 1740: false, 1: false} {
		if got := IsLeapYear(year); got != want {
			t.Errorf("IsLeapYear(%d) = %v, want %v", year, got, want)
		}
	}

	leap, err := New(1739, 13, 6)
	if err != nil {
		t.Fatalf("sixth epagomenal day of a leap year rejected: %v", err)
	}
	if leap.LengthOfMonth() != 6 || leap.LengthOfYear() != 366 {
		t.Errorf("leap year lengths = %d/%d, want 6/366", leap.LengthOfMonth(), leap.LengthOfYear())
	}
}

func TestInvalidDates(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		kind             almanac.ErrorKind
	}{
		{"year zero", 0, 1, 1, almanac.OutOfRange},
		{"year past maximum", 10000, 1, 1, almanac.OutOfRange},
		{"month fourteen", 5, 14, 1, almanac.InvalidDate},
		{"month zero", 5, 0, 1, almanac.InvalidDate},
		{"day 31 of a regular month", 5, 2, 31, almanac.InvalidDate},
		{"sixth epagomenal day of a common year", 4, 13, 6, almanac.InvalidDate},
		{"day zero", 5, 1, 0, almanac.InvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.year, tt.month, tt.day)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !almanac.IsKind(err, tt.kind) {
				t.Errorf("error = %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestEpochDayRange(t *testing.T) {
	var cal Calendar
	if _, err := FromEpochDay(cal.MinEpochDay() - 1); !almanac.IsKind(err, almanac.OutOfRange) {
		t.Errorf("day before range: error = %v, want OUT_OF_RANGE", err)
	}
	if _, err := FromEpochDay(cal.MaxEpochDay() + 1); !almanac.IsKind(err, almanac.OutOfRange) {
		t.Errorf("day after range: error = %v, want OUT_OF_RANGE", err)
	}
	last, err := FromEpochDay(cal.MaxEpochDay())
	if err != nil {
		t.Fatalf("FromEpochDay(max) error: %v", err)
	}
	if last.Year() != MaxYear || last.Month() != almanac.Month(13) {
		t.Errorf("last supported date = %v", last)
	}
}

func TestChronologySurface(t *testing.T) {
	var cal Calendar

	months, err := cal.Months(5)
	if err != nil {
		t.Fatalf("Months(5) error: %v", err)
	}
	if len(months) != 13 {
		t.Errorf("Months(5) returned %d months, want 13", len(months))
	}
	want := make([]almanac.MonthSpec, 13)
	for i := range want {
		want[i] = almanac.Month(i + 1)
	}
	if !reflect.DeepEqual(months, want) {
		t.Errorf("Months(5) = %v", months)
	}

	if _, err := cal.Date(5, almanac.LeapMonth(3), 1); !almanac.IsKind(err, almanac.InvalidDate) {
		t.Errorf("leap month accepted: %v", err)
	}
	if n, _ := cal.MonthLength(3, almanac.Month(13)); n != 6 {
		t.Errorf("MonthLength(3, 13) = %d, want 6", n)
	}
	if n, _ := cal.YearLength(4); n != 365 {
		t.Errorf("YearLength(4) = %d, want 365", n)
	}
}

func genValidDate() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(MinYear, MaxYear),
		gen.IntRange(1, 13),
	).FlatMap(func(v interface{}) gopter.Gen {
		vals := v.([]interface{})
		year := vals[0].(int)
		month := vals[1].(int)
		return gen.IntRange(1, monthLengthDays(year, month)).Map(func(day int) Date {
			return Date{year: year, month: month, day: day}
		})
	}, reflect.TypeOf(Date{}))
}

func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Every valid date round-trips through its epoch day", prop.ForAll(
		func(d Date) bool {
			back, err := FromEpochDay(d.EpochDay())
			if err != nil {
				t.Logf("FromEpochDay(%d) error: %v", d.EpochDay(), err)
				return false
			}
			return back == d
		},
		genValidDate(),
	))

	properties.Property("Consecutive dates are one epoch day apart", prop.ForAll(
		func(d Date) bool {
			next, err := FromEpochDay(d.EpochDay() + 1)
			if err != nil {
				// Fell off the calendar's end.
				return d.Year() == MaxYear && d.Month() == almanac.Month(13)
			}
			return next.EpochDay() == d.EpochDay()+1
		},
		genValidDate(),
	))

	properties.TestingRun(t)
}

func TestBinaryRoundTrip(t *testing.T) {
	d, err := New(1736, 5, 16)
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
	if back != d {
		t.Errorf("DecodeDate() = %v, want %v", back, d)
	}

	if _, err := DecodeDate(raw[:3]); err == nil {
		t.Error("truncated payload accepted")
	}
	raw[0] = 99
	if _, err := DecodeDate(raw); !almanac.IsKind(err, almanac.InvalidDate) {
		t.Errorf("foreign type tag: error = %v, want INVALID_DATE", err)
	}
}
