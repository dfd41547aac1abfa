package team

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pmdash/pmdash/internal/rest"
	log "github.com/sirupsen/logrus"
)

type TeamMemberDTO struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Notes string `json:"notes,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListMembers godoc
// @Summary List team members
// @Tags Team
// @Produce json
// @Success 200 {array} TeamMemberDTO
// @Router /api/team [get]
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		log.Errorf("failed to list team members: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]TeamMemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, memberToDTO(m))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

// GetMember godoc
// @Summary Get a team member
// @Tags Team
// @Produce json
// @Param memberId path string true "Member ID"
// @Success 200 {object} TeamMemberDTO
// @Failure 404 {string} string "Team member not found"
// @Router /api/team/{memberId} [get]
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	memberId := mux.Vars(r)["memberId"]
	member, err := h.service.GetMember(r.Context(), memberId)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, memberToDTO(member))
}

// CreateMember godoc
// @Summary Add a team member
// @Tags Team
// @Accept json
// @Produce json
// @Param member body TeamMemberDTO true "Member"
// @Success 201 {object} TeamMemberDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/team [post]
func (h *Handler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var dto TeamMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteBadRequest(w, "Invalid request body format", err.Error())
		return
	}
	created, err := h.service.CreateMember(r.Context(), dtoToMember(dto))
	if err != nil {
		if errors.Is(err, ErrMemberNameRequired) {
			rest.WriteBadRequest(w, "Name is required", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, memberToDTO(created))
}

func memberToDTO(m TeamMember) TeamMemberDTO {
	return TeamMemberDTO{Id: m.Id, Name: m.Name, Role: m.Role, Notes: m.Notes}
}

func dtoToMember(dto TeamMemberDTO) TeamMember {
	return TeamMember{Id: dto.Id, Name: dto.Name, Role: dto.Role, Notes: dto.Notes}
}
