package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"09:00 AM", "9am"},
		{"9 AM", "9am"},
		{"9:00 AM", "9am"},
		{"10:30 AM", "10:30am"},
		{"2:30pm", "2:30pm"},
		{"02:00 PM", "2pm"},
		{"12:00 PM", "12pm"},
		{"10:00 a.m.", "10am."},
		{"09:00\u202fAM", "9am"},
		{"09:00\u00a0AM", "9am"},
		{"2:30\u2009PM", "2:30pm"},
		{"9\tAM", "9am"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, input := range []string{"09:00 AM", "9 AM", "10:30 AM", "2:30pm", "05:00 PM", "Noon"} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), input)
	}
}

func TestNormalize_DefaultSlotsAreDistinct(t *testing.T) {
	slots := []string{
		"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
		"12:00 PM", "01:00 PM", "01:30 PM", "02:00 PM", "02:30 PM", "03:00 PM",
		"03:30 PM", "04:00 PM", "04:30 PM", "05:00 PM",
	}
	seen := make(map[string]string)
	for _, slot := range slots {
		key := Normalize(slot)
		if other, ok := seen[key]; ok {
			t.Fatalf("slots %q and %q share key %q", other, slot, key)
		}
		seen[key] = slot
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input  string
		hour   int
		minute int
		ok     bool
	}{
		{"09:00 AM", 9, 0, true},
		{"9 AM", 9, 0, true},
		{"10:30 AM", 10, 30, true},
		{"2:30pm", 14, 30, true},
		{"12:00 PM", 12, 0, true},
		{"14:30", 14, 30, true},
		{"16:00", 16, 0, true},
		{"2:30 p.m.", 14, 30, true},
		{"10:00 a.m.", 10, 0, true},
		{"09:00\u202fAM", 9, 0, true},
		{"after lunch", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			hour, minute, ok := ParseClock(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.hour, hour)
			assert.Equal(t, tt.minute, minute)
		})
	}
}

func TestClockLabel(t *testing.T) {
	assert.Equal(t, "03:04 PM", ClockLabel(time.Date(2025, 1, 13, 15, 4, 0, 0, time.UTC)))
	assert.Equal(t, "09:00 AM", ClockLabel(time.Date(2025, 1, 13, 9, 0, 0, 0, time.UTC)))
}
