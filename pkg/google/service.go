package google

import (
	"context"
	"fmt"
	"time"

	"github.com/pmdash/pmdash/pkg/schedule"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const PrimaryCalendar = "primary"

// SourceProvider builds an EventSource on demand so a token authorized after start-up is picked up.
type SourceProvider func(ctx context.Context) (EventSource, error)

// TokenFileSource returns a SourceProvider reading the token file on every call.
func TokenFileSource(config *oauth2.Config, tokenFile string) SourceProvider {
	return func(ctx context.Context) (EventSource, error) {
		token, err := TokenFromFile(tokenFile)
		if err != nil {
			return nil, err
		}
		return NewCalendarClient(ctx, config, token)
	}
}

type ScheduleImporter interface {
	ImportEvents(ctx context.Context, memberId string, events []schedule.CalendarEvent) (int, error)
}

type Service interface {
	// ImportWeek copies the timed events of the Sunday-started week containing ref into
	// the member's calendar and returns how many were added.
	ImportWeek(ctx context.Context, memberId string, calendarId string, ref time.Time) (int, error)
}

type ServiceImpl struct {
	sources  SourceProvider
	schedule ScheduleImporter
}

func NewService(sources SourceProvider, schedule ScheduleImporter) *ServiceImpl {
	return &ServiceImpl{sources: sources, schedule: schedule}
}

func (s *ServiceImpl) ImportWeek(ctx context.Context, memberId string, calendarId string, ref time.Time) (int, error) {
	if calendarId == "" {
		calendarId = PrimaryCalendar
	}
	source, err := s.sources(ctx)
	if err != nil {
		return 0, err
	}

	from := schedule.WeekDays(ref)[0].Date.AddDate(0, 0, -1)
	to := from.AddDate(0, 0, 7)
	items, err := source.ListEvents(ctx, calendarId, from, to)
	if err != nil {
		return 0, err
	}

	events := ToScheduleEvents(items, ref.Location())
	count, err := s.schedule.ImportEvents(ctx, memberId, events)
	if err != nil {
		return 0, fmt.Errorf("failed to import google events: %w", err)
	}
	log.Infof("imported %d of %d google events into calendar of member %s", count, len(items), memberId)
	return count, nil
}
