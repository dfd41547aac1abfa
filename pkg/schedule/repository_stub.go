package schedule

import (
	"context"
	"sync"
)

type RepositoryStub struct {
	mu        sync.RWMutex
	events    map[string][]CalendarEvent
	getErrors map[string]error
	putErr    error
	puts      int
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		events:    make(map[string][]CalendarEvent),
		getErrors: make(map[string]error),
	}
}

func (r *RepositoryStub) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	r.mu.Lock()
	original := make(map[string][]CalendarEvent, len(r.events))
	for k, v := range r.events {
		original[k] = append([]CalendarEvent(nil), v...)
	}
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.events = original
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *RepositoryStub) GetMemberEvents(ctx context.Context, memberId string) ([]CalendarEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.getErrors[memberId]; err != nil {
		return nil, err
	}
	return append([]CalendarEvent{}, r.events[memberId]...), nil
}

func (r *RepositoryStub) PutMemberEvents(ctx context.Context, memberId string, events []CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.putErr != nil {
		return r.putErr
	}
	r.puts++
	r.events[memberId] = append([]CalendarEvent{}, events...)
	return nil
}

// SetGetError makes reads of a single member's calendar fail.
func (r *RepositoryStub) SetGetError(memberId string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getErrors[memberId] = err
}

func (r *RepositoryStub) SetPutError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.putErr = err
}

// Puts returns the number of successful writes.
func (r *RepositoryStub) Puts() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.puts
}

// HasCalendar reports whether a calendar document was written for memberId.
func (r *RepositoryStub) HasCalendar(memberId string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.events[memberId]
	return ok
}
