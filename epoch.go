package almanac

import "time"

// EpochDay is a signed count of days since 1970-01-01 (Gregorian).
// It is totally ordered and closed under integer addition, and every
// calendar package round-trips losslessly through it for every date the
// calendar considers valid.
type EpochDay int64

// Weekday numbers the days of the week ISO-style, Monday = 1 .. Sunday = 7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (w Weekday) String() string {
	if w < Monday || w > Sunday {
		return "Weekday(?)"
	}
	return weekdayNames[w-1]
}

const secondsPerDay = 86400

// FromTime returns the epoch day containing t, evaluated in t's location.
// The civil date shown by the wall clock decides the day, not the UTC
// instant, so midnight boundaries behave as a human reader expects.
func FromTime(t time.Time) EpochDay {
	y, m, d := t.Date()
	// Re-anchor the civil date in UTC before dividing by the day length.
	u := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return EpochDay(floorDiv(u.Unix(), secondsPerDay))
}

// Time returns midnight UTC of the epoch day.
func (e EpochDay) Time() time.Time {
	return time.Unix(int64(e)*secondsPerDay, 0).UTC()
}

// Weekday returns the ISO day of the week of the epoch day.
// Day 0 (1970-01-01) was a Thursday.
func (e EpochDay) Weekday() Weekday {
	return Weekday(floorMod(int64(e)+3, 7) + 1)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod returns the non-negative remainder of floorDiv.
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// FloorDiv divides rounding toward negative infinity. Exported for the
// calendar packages, which share the same division convention.
func FloorDiv(a, b int64) int64 { return floorDiv(a, b) }

// FloorMod returns the non-negative remainder of FloorDiv.
func FloorMod(a, b int64) int64 { return floorMod(a, b) }
