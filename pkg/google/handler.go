package google

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pmdash/pmdash/internal/rest"
	"github.com/pmdash/pmdash/internal/utils"
	"github.com/pmdash/pmdash/pkg/team"
	log "github.com/sirupsen/logrus"
)

type ImportResultDTO struct {
	Imported int `json:"imported"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// ImportFromGoogle godoc
// @Summary Import a week of Google Calendar events into a member's schedule
// @Tags Schedule
// @Produce json
// @Param memberId path string true "Member ID"
// @Param date query string false "Any day of the week in RFC3339 format"
// @Param calendarId query string false "Google calendar id, primary when missing"
// @Success 200 {object} ImportResultDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date format"
// @Failure 401 {string} string "Google calendar is not authorized"
// @Failure 404 {string} string "Team member not found"
// @Router /api/schedule/member/{memberId}/import-from-google [post]
func (h *Handler) ImportFromGoogle(w http.ResponseWriter, r *http.Request) {
	ref := h.clock.Now()
	if value := r.URL.Query().Get("date"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			rest.WriteBadRequest(w, "Incorrect date format", "Date must be in RFC3339 format")
			return
		}
		ref = parsed
	}
	memberId := mux.Vars(r)["memberId"]

	count, err := h.service.ImportWeek(r.Context(), memberId, r.URL.Query().Get("calendarId"), ref)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnauthenticated):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case errors.Is(err, team.ErrMemberNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			log.Errorf("google import failed: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusOK, ImportResultDTO{Imported: count})
}
