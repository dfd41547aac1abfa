package schedule

// CalendarEvent is one entry of a member's calendar document.
type CalendarEvent struct {
	Day       string `json:"day"`
	Time      string `json:"time"`
	Event     string `json:"event"`
	Attendees string `json:"attendees,omitempty"`
	Location  string `json:"location,omitempty"`
}

// MemberCalendar holds the events of one team member.
type MemberCalendar struct {
	MemberId string
	Events   []CalendarEvent
}

// Calendars keeps member calendars in the order the members were loaded.
type Calendars []MemberCalendar

func (c Calendars) Get(memberId string) ([]CalendarEvent, bool) {
	for _, mc := range c {
		if mc.MemberId == memberId {
			return mc.Events, true
		}
	}
	return nil, false
}

// EventsForDay returns the events falling on day. With a member filter only that member's
// calendar is read, otherwise all calendars are concatenated in member order.
func EventsForDay(day WeekDay, calendars Calendars, memberFilter string) []CalendarEvent {
	var source []CalendarEvent
	if memberFilter != "" {
		source, _ = calendars.Get(memberFilter)
		return filterDay(day, source, nil)
	}
	var result []CalendarEvent
	for _, mc := range calendars {
		result = filterDay(day, mc.Events, result)
	}
	return result
}

func filterDay(day WeekDay, events []CalendarEvent, into []CalendarEvent) []CalendarEvent {
	for _, e := range events {
		if day.Matches(e.Day) {
			into = append(into, e)
		}
	}
	return into
}

// MatchSlot returns the first event whose normalized time equals the normalized slot.
func MatchSlot(slot string, dayEvents []CalendarEvent) (CalendarEvent, bool) {
	key := Normalize(slot)
	for _, e := range dayEvents {
		if Normalize(e.Time) == key {
			return e, true
		}
	}
	return CalendarEvent{}, false
}
