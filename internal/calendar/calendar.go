package calendar

import "time"

// DayKeyLayout is the canonical bucket key format for all aggregation.
const DayKeyLayout = "2006-01-02"

// DayKey formats t as a canonical day key in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayKeyLayout)
}

// Today returns the current day key.
func Today() string {
	return DayKey(time.Now())
}

func parse(dayKey string) time.Time {
	t, err := time.Parse(DayKeyLayout, dayKey)
	if err != nil {
		// malformed keys collapse to the zero date rather than failing;
		// all callers pass keys produced by DayKey
		return time.Time{}
	}
	return t
}

// WeekStart returns the Monday on or before dayKey.
func WeekStart(dayKey string) string {
	t := parse(dayKey)
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	return DayKey(t.AddDate(0, 0, -daysSinceMonday))
}

// ShiftDays returns dayKey moved by delta calendar days.
func ShiftDays(dayKey string, delta int) string {
	return DayKey(parse(dayKey).AddDate(0, 0, delta))
}

// WeekDays returns the seven consecutive day keys starting at weekStartKey.
func WeekDays(weekStartKey string) [7]string {
	var days [7]string
	start := parse(weekStartKey)
	for i := 0; i < 7; i++ {
		days[i] = DayKey(start.AddDate(0, 0, i))
	}
	return days
}

// WeekdayIndex returns the Monday-based index (0..6) of dayKey within its week.
func WeekdayIndex(dayKey string) int {
	return (int(parse(dayKey).Weekday()) + 6) % 7
}
