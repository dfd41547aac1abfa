package progress

import (
	"net/http"

	"github.com/pmdash/pmdash/internal/rest"
	"github.com/pmdash/pmdash/pkg/project"
	log "github.com/sirupsen/logrus"
)

type ChartValueDTO struct {
	Id    string `json:"id"`
	Value int    `json:"value"`
}

type ChartPointDTO struct {
	X string `json:"x"`
	Y int    `json:"y"`
}

type MostActiveDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DashboardDTO struct {
	Project          *project.InfoDTO `json:"project"`
	TeamSize         int              `json:"teamSize"`
	TotalTasks       int              `json:"totalTasks"`
	CompletedTasks   int              `json:"completedTasks"`
	OpenIssues       int              `json:"openIssues"`
	SprintProgress   int              `json:"sprintProgress"`
	MostActiveMember MostActiveDTO    `json:"mostActiveMember"`
	TaskDistribution []ChartValueDTO  `json:"taskDistribution"`
	SprintSeries     []ChartPointDTO  `json:"sprintProgressSeries"`
}

type ProductivityDTO struct {
	StoryPoints int `json:"storyPoints"`
	BugsFixed   int `json:"bugsFixed"`
	CodeReviews int `json:"codeReviews"`
}

type MemberProgressDTO struct {
	Id           string          `json:"id"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	Completed    int             `json:"completed"`
	InProgress   int             `json:"inProgress"`
	Pending      int             `json:"pending"`
	Blocked      int             `json:"blocked"`
	Progress     int             `json:"progress"`
	Productivity ProductivityDTO `json:"productivity"`
}

type Handler struct {
	service  Service
	renderer Renderer
}

func NewHandler(service Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// GetDashboard godoc
// @Summary Get the dashboard summary
// @Tags Progress
// @Produce json
// @Success 200 {object} DashboardDTO
// @Router /api/dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Dashboard(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, summaryToDTO(summary))
}

// GetTeamProgress godoc
// @Summary Get task progress per team member
// @Tags Progress
// @Produce json
// @Success 200 {array} MemberProgressDTO
// @Router /api/team/progress [get]
func (h *Handler) GetTeamProgress(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.TeamProgress(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]MemberProgressDTO, 0, len(stats))
	for _, s := range stats {
		dtos = append(dtos, memberProgressToDTO(s))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetTeamProgressCsv godoc
// @Summary Export team progress as CSV
// @Tags Progress
// @Produce text/csv
// @Success 200 {string} string "CSV"
// @Router /api/team/progress.csv [get]
func (h *Handler) GetTeamProgressCsv(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.TeamProgress(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	csv, err := h.renderer.RenderTeamProgress(stats)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=team-progress.csv")
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv: %v", err)
	}
}

func summaryToDTO(s Summary) DashboardDTO {
	dto := DashboardDTO{
		TeamSize:         s.TeamSize,
		TotalTasks:       s.TotalTasks,
		CompletedTasks:   s.CompletedTasks,
		OpenIssues:       s.OpenIssues,
		SprintProgress:   s.SprintProgress,
		MostActiveMember: MostActiveDTO{Name: s.MostActive.Name, Count: s.MostActive.Count},
		TaskDistribution: make([]ChartValueDTO, 0, len(s.Distribution)),
		SprintSeries:     make([]ChartPointDTO, 0, len(s.SprintSeries)),
	}
	if s.Project != nil {
		info := project.InfoToDTO(*s.Project)
		dto.Project = &info
	}
	for _, slice := range s.Distribution {
		dto.TaskDistribution = append(dto.TaskDistribution, ChartValueDTO{Id: slice.Label, Value: slice.Value})
	}
	for _, p := range s.SprintSeries {
		dto.SprintSeries = append(dto.SprintSeries, ChartPointDTO{X: p.Label, Y: p.Value})
	}
	return dto
}

func memberProgressToDTO(s MemberProgress) MemberProgressDTO {
	productivity := s.Productivity()
	return MemberProgressDTO{
		Id:         s.Member.Id,
		Name:       s.Member.Name,
		Role:       s.Member.Role,
		Completed:  s.Completed,
		InProgress: s.InProgress,
		Pending:    s.Pending,
		Blocked:    s.Blocked,
		Progress:   s.Progress(),
		Productivity: ProductivityDTO{
			StoryPoints: productivity.StoryPoints,
			BugsFixed:   productivity.BugsFixed,
			CodeReviews: productivity.CodeReviews,
		},
	}
}
