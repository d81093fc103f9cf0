// Package almanac provides the shared vocabulary for a family of calendar
// conversion packages: the canonical epoch-day count, month and week
// descriptors, leniency policies, and the common error taxonomy.
//
// Every calendar package (coptic, indian, hijri, chinese, japanese,
// historic) converts between its own structured date representation and
// EpochDay, the number of days since 1970-01-01 (Gregorian). EpochDay is
// the only interchange value between calendars: converting a date from one
// calendar to another always goes through it.
//
// All values in this package and in the calendar packages are immutable;
// operations that "modify" a date return a new value. Sharing across
// goroutines requires no synchronization.
package almanac
