package docstore

import (
	"context"
	"encoding/json"
	"sync"
)

// StoreStub is an in-memory Store used by package tests.
type StoreStub struct {
	mu          sync.RWMutex
	collections map[string][]Document
	getErr      error
	putErr      error
	listErr     error
}

func NewStoreStub() *StoreStub {
	return &StoreStub{collections: make(map[string][]Document)}
}

func (s *StoreStub) WithTransaction(ctx context.Context, fn func(store Store) error) error {
	s.mu.Lock()
	snapshot := make(map[string][]Document, len(s.collections))
	for k, v := range s.collections {
		snapshot[k] = append([]Document(nil), v...)
	}
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.collections = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *StoreStub) Get(ctx context.Context, collection string, id string, dest any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.getErr != nil {
		return s.getErr
	}
	for _, d := range s.collections[collection] {
		if d.Id == id {
			return json.Unmarshal(d.Body, dest)
		}
	}
	return ErrNotFound
}

func (s *StoreStub) Put(ctx context.Context, collection string, id string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	docs := s.collections[collection]
	for i, d := range docs {
		if d.Id == id {
			docs[i].Body = body
			return nil
		}
	}
	s.collections[collection] = append(docs, Document{Id: id, Body: body})
	return nil
}

func (s *StoreStub) List(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]Document(nil), s.collections[collection]...), nil
}

func (s *StoreStub) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.collections[collection]
	for i, d := range docs {
		if d.Id == id {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *StoreStub) DeleteAll(ctx context.Context, collection string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := len(s.collections[collection])
	delete(s.collections, collection)
	return count, nil
}

// SetGetError makes every following Get fail with err (nil resets).
func (s *StoreStub) SetGetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// SetPutError makes every following Put fail with err (nil resets).
func (s *StoreStub) SetPutError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putErr = err
}

// SetListError makes every following List fail with err (nil resets).
func (s *StoreStub) SetListError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listErr = err
}
