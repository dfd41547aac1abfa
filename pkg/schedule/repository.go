package schedule

import (
	"context"
	"errors"

	"github.com/pmdash/pmdash/internal/docstore"
)

const collection = "calendar"

type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// GetMemberEvents returns an empty list when the member has no calendar document.
	GetMemberEvents(ctx context.Context, memberId string) ([]CalendarEvent, error)
	// PutMemberEvents overwrites the member's full event list.
	PutMemberEvents(ctx context.Context, memberId string, events []CalendarEvent) error
}

type calendarDocument struct {
	Events []CalendarEvent `json:"events"`
}

type repositoryImpl struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repositoryImpl{store: store}
}

func (r *repositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	return r.store.WithTransaction(ctx, func(store docstore.Store) error {
		return fn(&repositoryImpl{store: store})
	})
}

func (r *repositoryImpl) GetMemberEvents(ctx context.Context, memberId string) ([]CalendarEvent, error) {
	var doc calendarDocument
	err := r.store.Get(ctx, collection, memberId, &doc)
	if errors.Is(err, docstore.ErrNotFound) {
		return []CalendarEvent{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Events == nil {
		return []CalendarEvent{}, nil
	}
	return doc.Events, nil
}

func (r *repositoryImpl) PutMemberEvents(ctx context.Context, memberId string, events []CalendarEvent) error {
	if events == nil {
		events = []CalendarEvent{}
	}
	return r.store.Put(ctx, collection, memberId, calendarDocument{Events: events})
}
