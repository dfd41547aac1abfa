package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pmdash/pmdash/pkg/schedule"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EventSource lists timed and all-day events of a calendar between from and to.
type EventSource interface {
	ListEvents(ctx context.Context, calendarId string, from time.Time, to time.Time) ([]*gcal.Event, error)
}

type CalendarClient struct {
	service *gcal.Service
}

func NewCalendarClient(ctx context.Context, config *oauth2.Config, token *oauth2.Token) (*CalendarClient, error) {
	service, err := gcal.NewService(ctx, option.WithHTTPClient(config.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar client: %w", err)
	}
	return &CalendarClient{service: service}, nil
}

func (c *CalendarClient) ListEvents(ctx context.Context, calendarId string, from time.Time, to time.Time) ([]*gcal.Event, error) {
	events, err := c.service.Events.List(calendarId).
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		OrderBy("startTime").
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %w", err)
		log.Error(err)
		return nil, err
	}
	return events.Items, nil
}

// ToScheduleEvents converts timed events into weekday/time label entries in loc.
// All-day events and events with an unreadable start are skipped.
func ToScheduleEvents(items []*gcal.Event, loc *time.Location) []schedule.CalendarEvent {
	events := make([]schedule.CalendarEvent, 0, len(items))
	for _, item := range items {
		if item.Start == nil || item.Start.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			log.Warnf("ignoring google event %s with invalid start %q", item.Id, item.Start.DateTime)
			continue
		}
		start = start.In(loc)

		var attendees []string
		for _, a := range item.Attendees {
			if a.DisplayName != "" {
				attendees = append(attendees, a.DisplayName)
			} else if a.Email != "" {
				attendees = append(attendees, a.Email)
			}
		}
		events = append(events, schedule.CalendarEvent{
			Day:       schedule.WeekdayOf(start).Short(),
			Time:      schedule.ClockLabel(start),
			Event:     item.Summary,
			Attendees: strings.Join(attendees, ", "),
			Location:  item.Location,
		})
	}
	return events
}
