package almanac

// WeekModel is the locale-parameterized week configuration: which weekday
// opens the week, and how many days of a year or month a week must contain
// to count as that period's first week. A WeekModel is pure configuration
// and carries no state.
type WeekModel struct {
	FirstDay    Weekday
	MinimalDays int
}

// ISOWeek is the ISO-8601 model: weeks start on Monday and the first week
// of a year is the one holding at least four of its days.
var ISOWeek = WeekModel{FirstDay: Monday, MinimalDays: 4}

// SundayWeek is the common North American model: weeks start on Sunday and
// any day of the new year opens its first week.
var SundayWeek = WeekModel{FirstDay: Sunday, MinimalDays: 1}

// NewWeekModel validates and returns a week model. MinimalDays must lie in
// 1..7 and FirstDay must be a valid weekday.
func NewWeekModel(firstDay Weekday, minimalDays int) (WeekModel, error) {
	if firstDay < Monday || firstDay > Sunday {
		return WeekModel{}, Errorf(OutOfRange, "first day of week %d is out of range (1-7)", int(firstDay))
	}
	if minimalDays < 1 || minimalDays > 7 {
		return WeekModel{}, Errorf(OutOfRange, "minimal days in first week %d is out of range (1-7)", minimalDays)
	}
	return WeekModel{FirstDay: firstDay, MinimalDays: minimalDays}, nil
}
