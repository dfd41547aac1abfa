package app

import (
	"context"
	"net/http"

	"github.com/pmdash/pmdash/internal/config"
	"github.com/pmdash/pmdash/internal/docstore"
	"github.com/pmdash/pmdash/internal/event_bus"
	"github.com/pmdash/pmdash/internal/utils"
	"github.com/pmdash/pmdash/pkg/chat"
	"github.com/pmdash/pmdash/pkg/google"
	"github.com/pmdash/pmdash/pkg/progress"
	"github.com/pmdash/pmdash/pkg/project"
	"github.com/pmdash/pmdash/pkg/schedule"
	"github.com/pmdash/pmdash/pkg/team"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Store    docstore.Store
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	TeamService *team.ServiceImpl
	TeamHandler *team.Handler

	ScheduleService *schedule.ServiceImpl
	ScheduleHandler *schedule.Handler

	GoogleService *google.ServiceImpl
	GoogleHandler *google.Handler

	ChatOrchestrator chat.Orchestrator
	ChatService      *chat.ServiceImpl
	ChatHandler      *chat.Handler

	ProjectService *project.ServiceImpl
	ProjectHandler *project.Handler

	ProgressService *progress.ServiceImpl
	CsvRenderer     *progress.CsvRendererImpl
	ProgressHandler *progress.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(store docstore.Store, cfg config.Application, clock utils.Clock) *Dependencies {
	deps := &Dependencies{
		Store:    store,
		EventBus: event_bus.NewEventBus(),
		Clock:    clock,
	}

	deps.TeamService = team.NewService(team.NewRepository(store), deps.EventBus)
	deps.TeamHandler = team.NewHandler(deps.TeamService)

	deps.ScheduleService = schedule.NewService(schedule.NewRepository(store), deps.TeamService, deps.EventBus, clock, schedule.Settings{
		Slots:           cfg.Schedule.Slots,
		LoadConcurrency: cfg.Schedule.LoadConcurrency,
	})
	deps.ScheduleHandler = schedule.NewHandler(deps.ScheduleService, clock)

	deps.GoogleService = google.NewService(googleSources(cfg.Google), deps.ScheduleService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService, clock)

	// orchestrator calls are bounded by the request context only
	deps.ChatOrchestrator = chat.NewOrchestratorClient(cfg.Orchestrator.URL, &http.Client{})
	deps.ChatService = chat.NewService(chat.NewRepository(store), deps.ChatOrchestrator, clock)
	deps.ChatHandler = chat.NewHandler(deps.ChatService)

	deps.ProjectService = project.NewService(project.NewRepository(store))
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.ProgressService = progress.NewService(deps.TeamService, deps.ProjectService)
	deps.CsvRenderer = progress.NewCsvRenderer()
	deps.ProgressHandler = progress.NewHandler(deps.ProgressService, deps.CsvRenderer)

	return deps
}

func googleSources(cfg config.Google) google.SourceProvider {
	oauthConfig, err := google.OAuthConfig(cfg.ClientId, cfg.ClientSecret)
	if err != nil {
		log.Warnf("Google Calendar import disabled: %v", err)
		return func(ctx context.Context) (google.EventSource, error) {
			return nil, google.ErrUnauthenticated
		}
	}
	return google.TokenFileSource(oauthConfig, cfg.TokenFile)
}
