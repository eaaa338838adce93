package domain

import "time"

// DaysPerWeek is the rollup window length.
const DaysPerWeek = 7

// DayTotal is the logged time of one calendar day.
type DayTotal struct {
	Date    time.Time `json:"date" yaml:"date"`
	DayName string    `json:"day" yaml:"day"`
	Minutes int       `json:"minutes" yaml:"minutes"`
}

// WeekStart returns the Monday of the week containing date.
func WeekStart(date time.Time) time.Time {
	d := Day(date)
	weekday := int(d.Weekday())
	if weekday == 0 { // Sunday -> 7
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

// WeekRange returns the Monday and Sunday of the week containing date.
func WeekRange(date time.Time) (time.Time, time.Time) {
	start := WeekStart(date)
	return start, start.AddDate(0, 0, DaysPerWeek-1)
}

// RollupWeek sums task durations per day for the Monday-start week beginning
// at weekStart. Tasks dated outside the week are ignored.
func RollupWeek(tasks []*Task, weekStart time.Time) [DaysPerWeek]DayTotal {
	start := WeekStart(weekStart)
	var days [DaysPerWeek]DayTotal
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = DayTotal{Date: d, DayName: d.Weekday().String()}
	}

	for _, t := range tasks {
		if t == nil {
			continue
		}
		idx := int(Day(t.Date).Sub(start).Hours() / 24)
		if Day(t.Date).Before(start) || idx < 0 || idx >= DaysPerWeek {
			continue
		}
		days[idx].Minutes += TaskDuration(t)
	}
	return days
}

// WeekTotal sums the minutes of a rollup.
func WeekTotal(days [DaysPerWeek]DayTotal) int {
	total := 0
	for _, d := range days {
		total += d.Minutes
	}
	return total
}
