package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pmdash/pmdash/internal/rest"
	"github.com/pmdash/pmdash/internal/utils"
	"github.com/pmdash/pmdash/pkg/team"
	log "github.com/sirupsen/logrus"
)

type WeekDayDTO struct {
	Name       string `json:"name"`
	FullName   string `json:"fullName"`
	Date       string `json:"date"`
	DayOfMonth int    `json:"dayOfMonth"`
}

type GridCellDTO struct {
	Time  string            `json:"time"`
	Event *CalendarEventDTO `json:"event,omitempty"`
}

type GridDayDTO struct {
	Day      WeekDayDTO    `json:"day"`
	NoEvents bool          `json:"noEvents"`
	Slots    []GridCellDTO `json:"slots"`
}

type GridDTO struct {
	Week     string       `json:"week"`
	MemberId string       `json:"memberId,omitempty"`
	Slots    []string     `json:"timeSlots"`
	Days     []GridDayDTO `json:"days"`
}

type CalendarEventDTO struct {
	Day       string `json:"day"`
	Time      string `json:"time"`
	Event     string `json:"event"`
	Attendees string `json:"attendees,omitempty"`
	Location  string `json:"location,omitempty"`
}

type MeetingDTO struct {
	Title       string `json:"title"`
	OrganizerId string `json:"organizerId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Attendees   string `json:"attendees,omitempty"`
	Location    string `json:"location,omitempty"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// GetWeek godoc
// @Summary Get the schedule grid of a week
// @Description Monday to Friday of the week containing the reference date, one row per time slot
// @Tags Schedule
// @Produce json
// @Param date query string false "Any day of the week, RFC3339 or YYYY-MM-DD"
// @Param week query string false "ISO week, e.g. 2025-W03"
// @Param member query string false "Show only this member's events"
// @Success 200 {object} GridDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Router /api/schedule [get]
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ref, err := h.referenceDate(r)
	if err != nil {
		rest.WriteBadRequest(w, "Incorrect date format", err.Error())
		return
	}
	grid, err := h.service.WeekGrid(r.Context(), ref, r.URL.Query().Get("member"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, gridToDTO(grid))
}

// CreateMeeting godoc
// @Summary Add a meeting to the organizer's calendar
// @Tags Schedule
// @Accept json
// @Produce json
// @Param meeting body MeetingDTO true "Meeting"
// @Success 201 {object} CalendarEventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/schedule/meeting [post]
func (h *Handler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var dto MeetingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}
	date, err := parseDate(dto.Date)
	if err != nil {
		rest.WriteBadRequest(w, "Incorrect date format", err.Error())
		return
	}
	draft := NewDraftForSlot(date, dto.Time)
	draft.Title = dto.Title
	draft.OrganizerId = dto.OrganizerId
	draft.Attendees = dto.Attendees
	draft.Location = dto.Location

	event, err := h.service.CreateMeeting(r.Context(), draft)
	if err != nil {
		if errors.Is(err, team.ErrMemberNotFound) {
			rest.WriteBadRequest(w, "Unknown organizer", dto.OrganizerId)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, eventToDTO(event))
}

// GetMemberEvents godoc
// @Summary List all stored events of a member
// @Tags Schedule
// @Produce json
// @Param memberId path string true "Member ID"
// @Success 200 {array} CalendarEventDTO
// @Failure 404 {string} string "Team member not found"
// @Router /api/schedule/member/{memberId}/events [get]
func (h *Handler) GetMemberEvents(w http.ResponseWriter, r *http.Request) {
	memberId := mux.Vars(r)["memberId"]
	events, err := h.service.MemberEvents(r.Context(), memberId)
	if err != nil {
		if errors.Is(err, team.ErrMemberNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]CalendarEventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// ExportCalendar godoc
// @Summary Export a member's week as iCalendar
// @Tags Schedule
// @Produce text/calendar
// @Param memberId path string true "Member ID"
// @Param date query string false "Any day of the week, RFC3339 or YYYY-MM-DD"
// @Success 200 {string} string "iCalendar document"
// @Failure 404 {string} string "Team member not found"
// @Router /api/schedule/member/{memberId}/calendar.ics [get]
func (h *Handler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	ref, err := h.referenceDate(r)
	if err != nil {
		rest.WriteBadRequest(w, "Incorrect date format", err.Error())
		return
	}
	memberId := mux.Vars(r)["memberId"]
	body, err := h.service.ExportICS(r.Context(), memberId, ref)
	if err != nil {
		if errors.Is(err, team.ErrMemberNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Errorf("failed to export calendar of member %s: %v", memberId, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", memberId+".ics"))
	if _, err := w.Write(body); err != nil {
		log.Errorf("failed to write calendar: %v", err)
	}
}

// referenceDate reads "date" or "week" from the query, falling back to today.
func (h *Handler) referenceDate(r *http.Request) (time.Time, error) {
	query := r.URL.Query()
	if value := query.Get("date"); value != "" {
		return parseDate(value)
	}
	if value := query.Get("week"); value != "" {
		week, err := WeekNumberFromString(value)
		if err != nil {
			return time.Time{}, err
		}
		return week.Monday(h.clock.Now().Location()), nil
	}
	return h.clock.Now(), nil
}

// parseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in RFC3339 or YYYY-MM-DD format: %q", value)
	}
	return t, nil
}

func eventToDTO(e CalendarEvent) CalendarEventDTO {
	return CalendarEventDTO{
		Day:       e.Day,
		Time:      e.Time,
		Event:     e.Event,
		Attendees: e.Attendees,
		Location:  e.Location,
	}
}

func gridToDTO(grid Grid) GridDTO {
	dto := GridDTO{
		Week:     grid.Week.String(),
		MemberId: grid.MemberFilter,
		Slots:    grid.Slots,
		Days:     make([]GridDayDTO, 0, len(grid.Days)),
	}
	for _, day := range grid.Days {
		dayDTO := GridDayDTO{
			Day: WeekDayDTO{
				Name:       day.Day.Short(),
				FullName:   day.Day.Full(),
				Date:       day.Day.Date.Format(time.DateOnly),
				DayOfMonth: day.Day.DayOfMonth(),
			},
			NoEvents: day.NoEvents,
			Slots:    make([]GridCellDTO, 0, len(day.Cells)),
		}
		for _, cell := range day.Cells {
			cellDTO := GridCellDTO{Time: cell.Slot}
			if cell.Event != nil {
				e := eventToDTO(*cell.Event)
				cellDTO.Event = &e
			}
			dayDTO.Slots = append(dayDTO.Slots, cellDTO)
		}
		dto.Days = append(dto.Days, dayDTO)
	}
	return dto
}
