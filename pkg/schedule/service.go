package schedule

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/pmdash/pmdash/internal/event_bus"
	"github.com/pmdash/pmdash/internal/utils"
	"github.com/pmdash/pmdash/pkg/team"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	// LoadCalendars reads every member's events in parallel. A member whose calendar
	// cannot be read is returned with no events.
	LoadCalendars(ctx context.Context, members []team.TeamMember) Calendars
	MemberEvents(ctx context.Context, memberId string) ([]CalendarEvent, error)
	WeekGrid(ctx context.Context, ref time.Time, memberFilter string) (Grid, error)
	CreateMeeting(ctx context.Context, draft MeetingDraft) (CalendarEvent, error)
	// ImportEvents appends events to the member's calendar and returns how many were added.
	ImportEvents(ctx context.Context, memberId string, events []CalendarEvent) (int, error)
	ExportICS(ctx context.Context, memberId string, ref time.Time) ([]byte, error)
}

type MemberReader interface {
	ListMembers(ctx context.Context) ([]team.TeamMember, error)
	GetMember(ctx context.Context, id string) (team.TeamMember, error)
}

type Settings struct {
	Slots           []string
	LoadConcurrency int
}

type ServiceImpl struct {
	repo     Repository
	members  MemberReader
	eventBus *event_bus.EventBus
	clock    utils.Clock
	settings Settings
}

func NewService(repo Repository, members MemberReader, eventBus *event_bus.EventBus, clock utils.Clock, settings Settings) *ServiceImpl {
	if settings.LoadConcurrency < 1 {
		settings.LoadConcurrency = 1
	}
	service := &ServiceImpl{
		repo:     repo,
		members:  members,
		eventBus: eventBus,
		clock:    clock,
		settings: settings,
	}
	event_bus.SubscribeTyped[event_bus.TeamMemberCreatedPayload](
		eventBus,
		event_bus.TeamMemberCreated,
		func(e event_bus.EventT[event_bus.TeamMemberCreatedPayload]) error {
			log.Debugf("received team member created event: %v", e.Data)
			if err := service.initCalendar(e.Context(), e.Data.Id); err != nil {
				log.Errorf("failed to initialise calendar for member %s: %v", e.Data.Id, err)
				return err
			}
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) initCalendar(ctx context.Context, memberId string) error {
	return s.repo.WithTransaction(ctx, func(repo Repository) error {
		existing, err := repo.GetMemberEvents(ctx, memberId)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		return repo.PutMemberEvents(ctx, memberId, []CalendarEvent{})
	})
}

func (s *ServiceImpl) LoadCalendars(ctx context.Context, members []team.TeamMember) Calendars {
	calendars := make(Calendars, len(members))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.settings.LoadConcurrency)
	for i, member := range members {
		g.Go(func() error {
			events, err := s.repo.GetMemberEvents(gctx, member.Id)
			if err != nil {
				log.Errorf("failed to load calendar of member %s: %v", member.Id, err)
				events = []CalendarEvent{}
			}
			calendars[i] = MemberCalendar{MemberId: member.Id, Events: events}
			return nil
		})
	}
	_ = g.Wait()
	return calendars
}

func (s *ServiceImpl) MemberEvents(ctx context.Context, memberId string) ([]CalendarEvent, error) {
	if _, err := s.members.GetMember(ctx, memberId); err != nil {
		return nil, err
	}
	events, err := s.repo.GetMemberEvents(ctx, memberId)
	if err != nil {
		return nil, fmt.Errorf("failed to get events of member %s: %w", memberId, err)
	}
	return events, nil
}

func (s *ServiceImpl) WeekGrid(ctx context.Context, ref time.Time, memberFilter string) (Grid, error) {
	members, err := s.members.ListMembers(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to list team members: %w", err)
	}
	calendars := s.LoadCalendars(ctx, members)
	days := WeekDays(ref)
	return buildGrid(days[0], days, s.settings.Slots, calendars, memberFilter), nil
}

func (s *ServiceImpl) CreateMeeting(ctx context.Context, draft MeetingDraft) (CalendarEvent, error) {
	if _, err := s.members.GetMember(ctx, draft.OrganizerId); err != nil {
		return CalendarEvent{}, err
	}
	event := draft.Event()
	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		existing, err := repo.GetMemberEvents(ctx, draft.OrganizerId)
		if err != nil {
			return err
		}
		return repo.PutMemberEvents(ctx, draft.OrganizerId, Commit(existing, event))
	})
	if err != nil {
		log.Errorf("failed to store meeting for member %s: %v", draft.OrganizerId, err)
		return CalendarEvent{}, fmt.Errorf("failed to store meeting: %w", err)
	}
	log.Debugf("meeting %q added on %s %s for member %s", event.Event, event.Day, event.Time, draft.OrganizerId)
	return event, nil
}

func (s *ServiceImpl) ImportEvents(ctx context.Context, memberId string, events []CalendarEvent) (int, error) {
	if _, err := s.members.GetMember(ctx, memberId); err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	err := s.repo.WithTransaction(ctx, func(repo Repository) error {
		existing, err := repo.GetMemberEvents(ctx, memberId)
		if err != nil {
			return err
		}
		for _, e := range events {
			existing = Commit(existing, e)
		}
		return repo.PutMemberEvents(ctx, memberId, existing)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to import events: %w", err)
	}
	return len(events), nil
}

// ExportICS renders the member's events as they fall in the week containing ref.
// Events whose day or time cannot be read are left out.
func (s *ServiceImpl) ExportICS(ctx context.Context, memberId string, ref time.Time) ([]byte, error) {
	member, err := s.members.GetMember(ctx, memberId)
	if err != nil {
		return nil, err
	}
	events, err := s.repo.GetMemberEvents(ctx, memberId)
	if err != nil {
		return nil, fmt.Errorf("failed to get events of member %s: %w", memberId, err)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//pmdash//schedule//EN")
	cal.Props.SetText("X-WR-CALNAME", member.Name)

	weekStart := startOfWeek(ref)
	stamp := s.clock.Now().UTC()
	for i, e := range events {
		day, err := ParseWeekday(e.Day)
		if err != nil {
			log.Debugf("skipping event %q with unknown day %q", e.Event, e.Day)
			continue
		}
		hour, minute, ok := ParseClock(e.Time)
		if !ok {
			log.Debugf("skipping event %q with unreadable time %q", e.Event, e.Time)
			continue
		}
		date := weekStart.AddDate(0, 0, int(day))
		start := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, ref.Location())

		ve := ical.NewComponent(ical.CompEvent)
		ve.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%s-%d@pmdash", memberId, date.Format("20060102"), i))
		ve.Props.SetText(ical.PropSummary, e.Event)
		ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		ve.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
		ve.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(DefaultMeetingDuration).UTC())
		if e.Location != "" {
			ve.Props.SetText(ical.PropLocation, e.Location)
		}
		if strings.TrimSpace(e.Attendees) != "" {
			ve.Props.SetText(ical.PropDescription, "Attendees: "+e.Attendees)
		}
		cal.Children = append(cal.Children, ve)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}
