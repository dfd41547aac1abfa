package schedule

import "time"

// DefaultMeetingDuration is the length of every exported meeting; events carry no duration.
const DefaultMeetingDuration = 30 * time.Minute

// MeetingDraft is the transient state of the new meeting form.
type MeetingDraft struct {
	Title       string
	OrganizerId string
	Date        time.Time
	Time        string
	Attendees   string
	Location    string
}

// NewDraftForSlot pre-fills a draft from a clicked grid cell.
func NewDraftForSlot(date time.Time, slot string) MeetingDraft {
	return MeetingDraft{
		Date: date,
		Time: slot,
	}
}

// Event converts the draft to a stored event. The time label is kept as entered.
func (d MeetingDraft) Event() CalendarEvent {
	return CalendarEvent{
		Day:       WeekdayOf(d.Date).Short(),
		Time:      d.Time,
		Event:     d.Title,
		Attendees: d.Attendees,
		Location:  d.Location,
	}
}

// Commit returns a new list with event appended; existing is not modified.
func Commit(existing []CalendarEvent, event CalendarEvent) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(existing)+1)
	events = append(events, existing...)
	return append(events, event)
}
