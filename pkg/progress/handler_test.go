package progress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pmdash/pmdash/internal/docstore"
	"github.com/pmdash/pmdash/internal/event_bus"
	"github.com/pmdash/pmdash/pkg/project"
	"github.com/pmdash/pmdash/pkg/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) *Handler {
	ctx := context.Background()
	store := docstore.NewStoreStub()
	teamService := team.NewService(team.NewRepository(store), event_bus.NewEventBus())
	projectService := project.NewService(project.NewRepository(store))
	for _, m := range members {
		_, err := teamService.CreateMember(ctx, m)
		require.NoError(t, err)
	}
	for status, items := range board {
		_, err := projectService.UpdateTasks(ctx, status, items)
		require.NoError(t, err)
	}
	return NewHandler(NewService(teamService, projectService), NewCsvRenderer())
}

func TestHandler_GetDashboard(t *testing.T) {
	handler := setupHandler(t)
	w := httptest.NewRecorder()

	handler.GetDashboard(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var dto DashboardDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Nil(t, dto.Project)
	assert.Equal(t, 9, dto.TotalTasks)
	assert.Equal(t, "Bob Stone", dto.MostActiveMember.Name)
	assert.Equal(t, ChartPointDTO{X: "Week 3", Y: 20}, dto.SprintSeries[2])
}

func TestHandler_GetTeamProgress(t *testing.T) {
	handler := setupHandler(t)
	w := httptest.NewRecorder()

	handler.GetTeamProgress(w, httptest.NewRequest(http.MethodGet, "/api/team/progress", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var dtos []MemberProgressDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
	require.Len(t, dtos, 3)
	assert.Equal(t, "m2", dtos[1].Id)
	assert.Equal(t, 8, dtos[1].Productivity.StoryPoints)
}

func TestHandler_GetTeamProgressCsv(t *testing.T) {
	handler := setupHandler(t)
	w := httptest.NewRecorder()

	handler.GetTeamProgressCsv(w, httptest.NewRequest(http.MethodGet, "/api/team/progress.csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "Ann Lee,PM,"))
}
