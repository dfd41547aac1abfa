package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Weekday mirrors time.Weekday and adds the short and full labels used in stored events.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

// Short returns the three letter label, e.g. "Mon".
func (d Weekday) Short() string {
	return d.Full()[:3]
}

// Full returns the full English name, e.g. "Monday".
func (d Weekday) Full() string {
	return time.Weekday(d).String()
}

func (d Weekday) Weekend() bool {
	return d == Saturday || d == Sunday
}

// ParseWeekday accepts short or full names in any letter case.
func ParseWeekday(s string) (Weekday, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	for d := Sunday; d <= Saturday; d++ {
		if label == strings.ToLower(d.Short()) || label == strings.ToLower(d.Full()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", s)
}

// WeekDay is a single column of the schedule grid.
type WeekDay struct {
	Weekday Weekday
	Date    time.Time
}

func (d WeekDay) Short() string {
	return d.Weekday.Short()
}

func (d WeekDay) Full() string {
	return d.Weekday.Full()
}

func (d WeekDay) DayOfMonth() int {
	return d.Date.Day()
}

// Matches reports whether an event day label refers to this day.
func (d WeekDay) Matches(label string) bool {
	l := strings.ToLower(label)
	return l == strings.ToLower(d.Short()) || l == strings.ToLower(d.Full())
}

// WeekDays returns Monday to Friday of the Sunday-started week containing ref.
func WeekDays(ref time.Time) []WeekDay {
	start := startOfWeek(ref)
	days := make([]WeekDay, 0, 5)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		day := WeekdayOf(date)
		if day.Weekend() {
			continue
		}
		days = append(days, WeekDay{Weekday: day, Date: date})
	}
	return days
}

func startOfWeek(ref time.Time) time.Time {
	midnight := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}
