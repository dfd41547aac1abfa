package project

import (
	"context"
	"errors"

	"github.com/pmdash/pmdash/internal/docstore"
)

const (
	projectCollection = "project"
	projectInfoId     = "info"
	tasksCollection   = "tasks"
)

var (
	ErrProjectNotFound   = errors.New("project info not found")
	ErrUnknownTaskStatus = errors.New("unknown task status")
)

type Repository interface {
	GetInfo(ctx context.Context) (Info, error)
	StoreInfo(ctx context.Context, info Info) error
	// GetTasks returns an empty list for a status without a document.
	GetTasks(ctx context.Context, status TaskStatus) ([]string, error)
	StoreTasks(ctx context.Context, status TaskStatus, items []string) error
}

type statusDocument struct {
	Sprint          string `json:"sprint"`
	NextMilestone   string `json:"next_milestone"`
	Blockers        string `json:"blockers"`
	ProgressPercent int    `json:"progress_percent"`
}

type infoDocument struct {
	Name     string         `json:"name"`
	Summary  string         `json:"summary"`
	Timeline string         `json:"timeline"`
	Goals    []string       `json:"goals"`
	Status   statusDocument `json:"status"`
}

type tasksDocument struct {
	Items []string `json:"items"`
}

type repositoryImpl struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repositoryImpl{store: store}
}

func (r *repositoryImpl) GetInfo(ctx context.Context) (Info, error) {
	var doc infoDocument
	if err := r.store.Get(ctx, projectCollection, projectInfoId, &doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return Info{}, ErrProjectNotFound
		}
		return Info{}, err
	}
	return Info{
		Name:     doc.Name,
		Summary:  doc.Summary,
		Timeline: doc.Timeline,
		Goals:    doc.Goals,
		Status: Status{
			Sprint:          doc.Status.Sprint,
			NextMilestone:   doc.Status.NextMilestone,
			Blockers:        doc.Status.Blockers,
			ProgressPercent: doc.Status.ProgressPercent,
		},
	}, nil
}

func (r *repositoryImpl) StoreInfo(ctx context.Context, info Info) error {
	goals := info.Goals
	if goals == nil {
		goals = []string{}
	}
	return r.store.Put(ctx, projectCollection, projectInfoId, infoDocument{
		Name:     info.Name,
		Summary:  info.Summary,
		Timeline: info.Timeline,
		Goals:    goals,
		Status: statusDocument{
			Sprint:          info.Status.Sprint,
			NextMilestone:   info.Status.NextMilestone,
			Blockers:        info.Status.Blockers,
			ProgressPercent: info.Status.ProgressPercent,
		},
	})
}

func (r *repositoryImpl) GetTasks(ctx context.Context, status TaskStatus) ([]string, error) {
	var doc tasksDocument
	err := r.store.Get(ctx, tasksCollection, string(status), &doc)
	if errors.Is(err, docstore.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Items == nil {
		return []string{}, nil
	}
	return doc.Items, nil
}

func (r *repositoryImpl) StoreTasks(ctx context.Context, status TaskStatus, items []string) error {
	if items == nil {
		items = []string{}
	}
	return r.store.Put(ctx, tasksCollection, string(status), tasksDocument{Items: items})
}
