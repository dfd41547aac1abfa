package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pmdash/pmdash/internal/config"
	"github.com/pmdash/pmdash/internal/docstore"
	"github.com/pmdash/pmdash/internal/utils"
	"github.com/pmdash/pmdash/pkg/chat"
	"github.com/pmdash/pmdash/pkg/progress"
	"github.com/pmdash/pmdash/pkg/schedule"
	"github.com/pmdash/pmdash/pkg/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) http.Handler {
	orchestrator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":"Sprint 4 is on track"}`))
	}))
	t.Cleanup(orchestrator.Close)

	cfg := config.Application{
		Orchestrator: config.Orchestrator{URL: orchestrator.URL},
		Schedule:     config.Schedule{Slots: config.DefaultSlots, LoadConcurrency: 2},
		Google:       config.Google{TokenFile: t.TempDir() + "/token.json"},
	}
	clock := &utils.MockClock{FixedNow: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}
	deps := BuildDependencies(docstore.NewStoreStub(), cfg, clock)
	return NewRouter(deps, cfg)
}

func do(t *testing.T, router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutes_ScheduleFlow(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/team", `{"id":"m1","name":"Ann Lee","role":"PM"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/api/schedule/member/m1/events", "")
	require.Equal(t, http.StatusOK, w.Code, "calendar is initialized for new members")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, router, http.MethodPost, "/api/schedule/meeting",
		`{"title":"Sprint review","organizerId":"m1","date":"2025-01-15","time":"10:00 AM"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, router, http.MethodGet, "/api/schedule?date=2025-01-15&member=m1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var grid schedule.GridDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&grid))
	require.Len(t, grid.Days, 5)

	var found []string
	for _, day := range grid.Days {
		for _, cell := range day.Slots {
			if cell.Event != nil {
				found = append(found, day.Day.Name+" "+cell.Time+" "+cell.Event.Event)
			}
		}
	}
	assert.Equal(t, []string{"Wed 10:00 AM Sprint review"}, found)

	w = do(t, router, http.MethodGet, "/api/schedule/member/m1/calendar.ics?date=2025-01-15", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/calendar"))
	assert.Contains(t, w.Body.String(), "SUMMARY:Sprint review")

	w = do(t, router, http.MethodPost, "/api/schedule/meeting",
		`{"title":"Ghost","organizerId":"nobody","date":"2025-01-15","time":"10:00 AM"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_TeamProgressIsNotAMemberId(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/team", `{"id":"m1","name":"Ann Lee","role":"PM"}`).Code)

	w := do(t, router, http.MethodGet, "/api/team/progress", "")
	require.Equal(t, http.StatusOK, w.Code)
	var members []progress.MemberProgressDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&members))
	require.Len(t, members, 1)
	assert.Equal(t, "m1", members[0].Id)

	w = do(t, router, http.MethodGet, "/api/team/progress.csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ann Lee")

	w = do(t, router, http.MethodGet, "/api/team/m1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var member team.TeamMemberDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&member))
	assert.Equal(t, "Ann Lee", member.Name)
}

func TestRoutes_ChatIsScopedByUserHeader(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/chat/messages", `{"text":"How is the sprint?"}`, chat.HeaderUser, "alice")
	require.Equal(t, http.StatusOK, w.Code)
	var sent []chat.MessageDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sent))
	require.Len(t, sent, 2)
	assert.Equal(t, "Sprint 4 is on track", sent[1].Text)

	w = do(t, router, http.MethodGet, "/api/chat/messages", "", chat.HeaderUser, "alice")
	var history []chat.MessageDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&history))
	assert.Len(t, history, 2)

	w = do(t, router, http.MethodGet, "/api/chat/messages", "")
	require.NoError(t, json.NewDecoder(w.Body).Decode(&history))
	assert.Empty(t, history, "anonymous user has a separate history")

	w = do(t, router, http.MethodGet, "/api/chat/messages", "", chat.HeaderUser, "../alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_ImportFromGoogleWithoutCredentials(t *testing.T) {
	router := setupRouter(t)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/team", `{"id":"m1","name":"Ann Lee","role":"PM"}`).Code)

	w := do(t, router, http.MethodPost, "/api/schedule/member/m1/import-from-google", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
