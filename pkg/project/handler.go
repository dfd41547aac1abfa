package project

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pmdash/pmdash/internal/rest"
)

type StatusDTO struct {
	Sprint          string `json:"sprint"`
	NextMilestone   string `json:"next_milestone"`
	Blockers        string `json:"blockers"`
	ProgressPercent int    `json:"progress_percent"`
}

type InfoDTO struct {
	Name     string    `json:"name"`
	Summary  string    `json:"summary"`
	Timeline string    `json:"timeline"`
	Goals    []string  `json:"goals"`
	Status   StatusDTO `json:"status"`
}

type TasksDTO struct {
	Items []string `json:"items"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetInfo godoc
// @Summary Get project info
// @Tags Project
// @Produce json
// @Success 200 {object} InfoDTO
// @Failure 404 {string} string "Project info not found"
// @Router /api/project [get]
func (h *Handler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.GetInfo(r.Context())
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, InfoToDTO(info))
}

// UpdateInfo godoc
// @Summary Replace project info
// @Tags Project
// @Accept json
// @Produce json
// @Param info body InfoDTO true "Project info"
// @Success 200 {object} InfoDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/project [put]
func (h *Handler) UpdateInfo(w http.ResponseWriter, r *http.Request) {
	var dto InfoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}
	info, err := h.service.UpdateInfo(r.Context(), dtoToInfo(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidProgress) {
			rest.WriteBadRequest(w, "Invalid progress", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, InfoToDTO(info))
}

// GetTasks godoc
// @Summary Get the task board
// @Tags Project
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/tasks [get]
func (h *Handler) GetTasks(w http.ResponseWriter, r *http.Request) {
	board := h.service.TaskBoard(r.Context())
	body := make(map[string][]string, len(board))
	for status, items := range board {
		body[string(status)] = items
	}
	rest.WriteJSON(w, http.StatusOK, body)
}

// UpdateTasks godoc
// @Summary Replace the tasks of one status
// @Tags Project
// @Accept json
// @Produce json
// @Param status path string true "completed, active, pending or blocked"
// @Param tasks body TasksDTO true "Tasks"
// @Success 200 {object} TasksDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/tasks/{status} [put]
func (h *Handler) UpdateTasks(w http.ResponseWriter, r *http.Request) {
	status, err := ParseTaskStatus(mux.Vars(r)["status"])
	if err != nil {
		rest.WriteBadRequest(w, "Unknown task status", err.Error())
		return
	}
	var dto TasksDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}
	items, err := h.service.UpdateTasks(r.Context(), status, dto.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TasksDTO{Items: items})
}

func InfoToDTO(info Info) InfoDTO {
	goals := info.Goals
	if goals == nil {
		goals = []string{}
	}
	return InfoDTO{
		Name:     info.Name,
		Summary:  info.Summary,
		Timeline: info.Timeline,
		Goals:    goals,
		Status: StatusDTO{
			Sprint:          info.Status.Sprint,
			NextMilestone:   info.Status.NextMilestone,
			Blockers:        info.Status.Blockers,
			ProgressPercent: info.Status.ProgressPercent,
		},
	}
}

func dtoToInfo(dto InfoDTO) Info {
	return Info{
		Name:     dto.Name,
		Summary:  dto.Summary,
		Timeline: dto.Timeline,
		Goals:    dto.Goals,
		Status: Status{
			Sprint:          dto.Status.Sprint,
			NextMilestone:   dto.Status.NextMilestone,
			Blockers:        dto.Status.Blockers,
			ProgressPercent: dto.Status.ProgressPercent,
		},
	}
}
