package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type WeekNumber struct {
	Week int
	Year int
}

func WeekNumberFromDate(date time.Time) WeekNumber {
	year, week := date.ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

// WeekNumberFromString converts ISO week format ISO 8601 e.g. "2025-W03" to WeekNumber
func WeekNumberFromString(isoWeekString string) (WeekNumber, error) {
	parts := strings.Split(isoWeekString, "-")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "W") {
		return WeekNumber{}, fmt.Errorf("invalid ISO week format: %s", isoWeekString)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return WeekNumber{}, fmt.Errorf("invalid year: %w", err)
	}
	week, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return WeekNumber{}, fmt.Errorf("invalid week: %w", err)
	}
	if week < 1 || week > 53 {
		return WeekNumber{}, fmt.Errorf("week out of range: %d", week)
	}
	return WeekNumber{Year: year, Week: week}, nil
}

// Monday returns the Monday of the ISO week in loc.
func (w WeekNumber) Monday(loc *time.Location) time.Time {
	// January 4th is always in ISO week 1
	jan4 := time.Date(w.Year, time.January, 4, 0, 0, 0, 0, loc)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+(w.Week-1)*7)
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
