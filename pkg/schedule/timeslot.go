package schedule

import (
	"regexp"
	"strings"
	"time"
)

// Covers Unicode space separators too, browsers put U+202F before AM/PM.
var whitespaceRun = regexp.MustCompile(`[\s\x0B\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)

// Normalize reduces a time label to the comparison key used by the slot matcher.
// Every step only touches the first occurrence, so "09:00 AM" and "9 AM" both become
// "9am" while "10:30 AM" keeps its minutes as "10:30am".
func Normalize(label string) string {
	s := strings.TrimPrefix(label, "0")
	s = strings.Replace(s, ":00", "", 1)
	if loc := whitespaceRun.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}
	s = strings.Replace(s, ".", "", 1)
	return strings.ToLower(s)
}

// ClockLabel renders a time in the slot label format, e.g. "03:04 PM".
func ClockLabel(t time.Time) string {
	return t.Format("03:04 PM")
}

var clockLayouts = []string{"3pm", "3:04pm", "15:04", "15"}

// ParseClock reads hour and minute from a free text time label such as "09:00 AM",
// "2:30 p.m." or "14:30".
func ParseClock(label string) (hour int, minute int, ok bool) {
	key := Normalize(strings.ReplaceAll(strings.TrimSpace(label), ".", ""))
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, key); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}
