package schedule

// Grid is the week view: weekdays as columns, configured time slots as rows.
type Grid struct {
	Week         WeekNumber
	MemberFilter string
	Slots        []string
	Days         []GridDay
}

type GridDay struct {
	Day WeekDay
	// NoEvents is only set when a member filter is active and the member has nothing that day.
	NoEvents bool
	Cells    []GridCell
}

type GridCell struct {
	Slot  string
	Event *CalendarEvent
}

func buildGrid(ref WeekDay, days []WeekDay, slots []string, calendars Calendars, memberFilter string) Grid {
	grid := Grid{
		Week:         WeekNumberFromDate(ref.Date),
		MemberFilter: memberFilter,
		Slots:        slots,
		Days:         make([]GridDay, 0, len(days)),
	}
	for _, day := range days {
		dayEvents := EventsForDay(day, calendars, memberFilter)
		gridDay := GridDay{
			Day:      day,
			NoEvents: memberFilter != "" && len(dayEvents) == 0,
			Cells:    make([]GridCell, 0, len(slots)),
		}
		for _, slot := range slots {
			cell := GridCell{Slot: slot}
			if event, ok := MatchSlot(slot, dayEvents); ok {
				cell.Event = &event
			}
			gridDay.Cells = append(gridDay.Cells, cell)
		}
		grid.Days = append(grid.Days, gridDay)
	}
	return grid
}
