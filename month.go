package almanac

import "fmt"

// MonthSpec identifies a month within a calendar year. For lunisolar
// calendars two months can share the same number, distinguished only by
// the leap flag; ordering is non-leap N < leap N < N+1.
type MonthSpec struct {
	Number int
	Leap   bool
}

// Month is shorthand for a plain, non-leap month.
func Month(n int) MonthSpec {
	return MonthSpec{Number: n}
}

// LeapMonth is shorthand for the leap month carrying number n.
func LeapMonth(n int) MonthSpec {
	return MonthSpec{Number: n, Leap: true}
}

// Less orders months within a year: non-leap N < leap N < N+1.
func (m MonthSpec) Less(other MonthSpec) bool {
	if m.Number != other.Number {
		return m.Number < other.Number
	}
	return !m.Leap && other.Leap
}

func (m MonthSpec) String() string {
	if m.Leap {
		return fmt.Sprintf("*%d", m.Number)
	}
	return fmt.Sprintf("%d", m.Number)
}
