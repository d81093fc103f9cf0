package julian

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestGregorianAnchors(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		epochDay         int64
	}{
		{"unix epoch", 1970, 1, 1, 0},
		{"day before unix epoch", 1969, 12, 31, -1},
		{"gregorian reform start", 1582, 10, 15, -141427},
		{"leap day 2000", 2000, 2, 29, 11016},
		{"chinese new year 2020", 2020, 1, 25, 18286},
		{"proleptic year one", 1, 1, 1, -719162},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GregorianToEpochDay(tt.year, tt.month, tt.day); got != tt.epochDay {
				t.Errorf("GregorianToEpochDay(%d, %d, %d) = %d, want %d",
					tt.year, tt.month, tt.day, got, tt.epochDay)
			}
			y, m, d := GregorianFromEpochDay(tt.epochDay)
			if y != tt.year || m != tt.month || d != tt.day {
				t.Errorf("GregorianFromEpochDay(%d) = %d-%d-%d, want %d-%d-%d",
					tt.epochDay, y, m, d, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestJulianAnchors(t *testing.T) {
	tests := []struct {
		name             string
		year, month, day int
		epochDay         int64
	}{
		{"julian year one", 1, 1, 1, -719164},
		{"last julian day before the reform", 1582, 10, 4, -141428},
		{"julian leap day 1500", 1500, 2, 29, -171596},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JulianToEpochDay(tt.year, tt.month, tt.day); got != tt.epochDay {
				t.Errorf("JulianToEpochDay(%d, %d, %d) = %d, want %d",
					tt.year, tt.month, tt.day, got, tt.epochDay)
			}
			y, m, d := JulianFromEpochDay(tt.epochDay)
			if y != tt.year || m != tt.month || d != tt.day {
				t.Errorf("JulianFromEpochDay(%d) = %d-%d-%d, want %d-%d-%d",
					tt.epochDay, y, m, d, tt.year, tt.month, tt.day)
			}
		})
	}
}

func TestLeapPredicates(t *testing.T) {
	tests := []struct {
		year                 int
		gregorian, julianOld bool
	}{
		{2000, true, true},
		{1900, false, true},
		{1996, true, true},
		{2023, false, false},
		{-4, true, true},
		{100, false, true},
	}

	for _, tt := range tests {
		if got := GregorianLeap(tt.year); got != tt.gregorian {
			t.Errorf("GregorianLeap(%d) = %v, want %v", tt.year, got, tt.gregorian)
		}
		if got := JulianLeap(tt.year); got != tt.julianOld {
			t.Errorf("JulianLeap(%d) = %v, want %v", tt.year, got, tt.julianOld)
		}
	}
}

func TestGregorianMatchesTimePackage(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Conversion agrees with time.Date over a wide span", prop.ForAll(
		func(day int64) bool {
			y, m, d := GregorianFromEpochDay(day)
			tm := time.Unix(day*86400, 0).UTC()
			if y != tm.Year() || m != int(tm.Month()) || d != tm.Day() {
				t.Logf("day %d: got %d-%d-%d, time package says %v", day, y, m, d, tm)
				return false
			}
			return GregorianToEpochDay(y, m, d) == day
		},
		gen.Int64Range(-700_000, 700_000),
	))

	properties.TestingRun(t)
}

func TestJulianRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Julian conversion round-trips through the epoch day", prop.ForAll(
		func(day int64) bool {
			y, m, d := JulianFromEpochDay(day)
			if m < 1 || m > 12 || d < 1 || d > JulianMonthLength(y, m) {
				t.Logf("day %d decoded to impossible fields %d-%d-%d", day, y, m, d)
				return false
			}
			return JulianToEpochDay(y, m, d) == day
		},
		gen.Int64Range(-2_400_000, 700_000),
	))

	properties.TestingRun(t)
}

func TestMonthLengths(t *testing.T) {
	if got := GregorianMonthLength(2024, 2); got != 29 {
		t.Errorf("GregorianMonthLength(2024, 2) = %d, want 29", got)
	}
	if got := GregorianMonthLength(1900, 2); got != 28 {
		t.Errorf("GregorianMonthLength(1900, 2) = %d, want 28", got)
	}
	if got := JulianMonthLength(1900, 2); got != 29 {
		t.Errorf("JulianMonthLength(1900, 2) = %d, want 29", got)
	}
	for m, want := range map[int]int{1: 31, 4: 30, 9: 30, 12: 31} {
		if got := GregorianMonthLength(2023, m); got != want {
			t.Errorf("GregorianMonthLength(2023, %d) = %d, want %d", m, got, want)
		}
	}
}
