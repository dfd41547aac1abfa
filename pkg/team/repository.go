package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmdash/pmdash/internal/docstore"
)

const collection = "team_members"

var ErrMemberNotFound = errors.New("team member not found")

type Repository interface {
	ListMembers(ctx context.Context) ([]TeamMember, error)
	GetMember(ctx context.Context, id string) (TeamMember, error)
	StoreMember(ctx context.Context, member TeamMember) error
}

type memberDocument struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Notes string `json:"notes,omitempty"`
}

type repositoryImpl struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repositoryImpl{store: store}
}

func (r *repositoryImpl) ListMembers(ctx context.Context) ([]TeamMember, error) {
	docs, err := r.store.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	members := make([]TeamMember, 0, len(docs))
	for _, d := range docs {
		var doc memberDocument
		if err := d.Decode(&doc); err != nil {
			return nil, fmt.Errorf("could not decode team member %s: %w", d.Id, err)
		}
		members = append(members, documentToMember(d.Id, doc))
	}
	return members, nil
}

func (r *repositoryImpl) GetMember(ctx context.Context, id string) (TeamMember, error) {
	var doc memberDocument
	if err := r.store.Get(ctx, collection, id, &doc); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return TeamMember{}, ErrMemberNotFound
		}
		return TeamMember{}, err
	}
	return documentToMember(id, doc), nil
}

func (r *repositoryImpl) StoreMember(ctx context.Context, member TeamMember) error {
	return r.store.Put(ctx, collection, member.Id, memberDocument{
		Name:  member.Name,
		Role:  member.Role,
		Notes: member.Notes,
	})
}

func documentToMember(id string, doc memberDocument) TeamMember {
	return TeamMember{
		Id:    id,
		Name:  doc.Name,
		Role:  doc.Role,
		Notes: doc.Notes,
	}
}
