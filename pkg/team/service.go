package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pmdash/pmdash/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

var ErrMemberNameRequired = fmt.Errorf("team member name is required")

type Service interface {
	ListMembers(ctx context.Context) ([]TeamMember, error)
	GetMember(ctx context.Context, id string) (TeamMember, error)
	CreateMember(ctx context.Context, member TeamMember) (TeamMember, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) ListMembers(ctx context.Context) ([]TeamMember, error) {
	return s.repo.ListMembers(ctx)
}

func (s *ServiceImpl) GetMember(ctx context.Context, id string) (TeamMember, error) {
	return s.repo.GetMember(ctx, id)
}

func (s *ServiceImpl) CreateMember(ctx context.Context, member TeamMember) (TeamMember, error) {
	member.Name = strings.TrimSpace(member.Name)
	if member.Name == "" {
		return TeamMember{}, ErrMemberNameRequired
	}
	if member.Id == "" {
		member.Id = uuid.NewString()
	}
	if err := s.repo.StoreMember(ctx, member); err != nil {
		log.Errorf("failed to store team member: %v", err)
		return TeamMember{}, err
	}
	log.Debugf("team member created: %s (%s)", member.Id, member.Name)

	if s.eventBus != nil {
		err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.TeamMemberCreated, event_bus.TeamMemberCreatedPayload{
			Id:   member.Id,
			Name: member.Name,
			Role: member.Role,
		}))
		if err != nil {
			// the member exists; subscribers only prepare derived documents
			log.Warnf("team member created event not fully handled: %v", err)
		}
	}
	return member, nil
}
