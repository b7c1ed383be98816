package timedataset

import "time"

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// NextDays returns the n calendar days following the last time in the slice. The cadence is a
// fixed day regardless of the spacing of the existing points.
func (t TimeSlice) NextDays(n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	last := t.EndTime()
	days := make([]time.Time, 0, n)
	for k := 1; k <= n; k++ {
		days = append(days, last.AddDate(0, 0, k))
	}
	return days
}

// WeekdayIndex maps a time onto 0=Monday..6=Sunday
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
