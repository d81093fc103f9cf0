// Package julian provides closed-form conversions between civil dates and
// epoch days for the proleptic Julian and Gregorian calendars. These are
// the shared primitives behind the hybrid historic calendar and the
// Gregorian anchors of the table-driven calendars.
package julian

// jdnOffset converts between Julian Day Number and the 1970-01-01 epoch:
// JDN(1970-01-01) = 2440588.
const jdnOffset = 2440588

// GregorianLeap reports whether the proleptic Gregorian year is a leap year.
func GregorianLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// JulianLeap reports whether the proleptic Julian year is a leap year.
func JulianLeap(year int) bool {
	return year%4 == 0
}

var monthLengths = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GregorianMonthLength returns the length of the month in the proleptic
// Gregorian calendar.
func GregorianMonthLength(year, month int) int {
	if month == 2 && GregorianLeap(year) {
		return 29
	}
	return monthLengths[month-1]
}

// JulianMonthLength returns the length of the month in the proleptic
// Julian calendar.
func JulianMonthLength(year, month int) int {
	if month == 2 && JulianLeap(year) {
		return 29
	}
	return monthLengths[month-1]
}

// GregorianToEpochDay converts a proleptic Gregorian date to its epoch day.
// The fields are not validated; callers validate before converting.
func GregorianToEpochDay(year, month, day int) int64 {
	a := int64((14 - month) / 12)
	y := int64(year) + 4800 - a
	m := int64(month) + 12*a - 3
	jdn := int64(day) + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
	return jdn - jdnOffset
}

// GregorianFromEpochDay converts an epoch day to a proleptic Gregorian date.
func GregorianFromEpochDay(epochDay int64) (year, month, day int) {
	a := epochDay + jdnOffset + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day = int(e - (153*m+2)/5 + 1)
	month = int(m + 3 - 12*(m/10))
	year = int(100*b + d - 4800 + m/10)
	return year, month, day
}

// JulianToEpochDay converts a proleptic Julian date to its epoch day.
func JulianToEpochDay(year, month, day int) int64 {
	a := int64((14 - month) / 12)
	y := int64(year) + 4800 - a
	m := int64(month) + 12*a - 3
	jdn := int64(day) + (153*m+2)/5 + 365*y + y/4 - 32083
	return jdn - jdnOffset
}

// JulianFromEpochDay converts an epoch day to a proleptic Julian date.
func JulianFromEpochDay(epochDay int64) (year, month, day int) {
	c := epochDay + jdnOffset + 32082
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153
	day = int(e - (153*m+2)/5 + 1)
	month = int(m + 3 - 12*(m/10))
	year = int(d - 4800 + m/10)
	return year, month, day
}
