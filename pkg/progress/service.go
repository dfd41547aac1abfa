package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmdash/pmdash/pkg/project"
	"github.com/pmdash/pmdash/pkg/team"
	log "github.com/sirupsen/logrus"
)

type MemberLister interface {
	ListMembers(ctx context.Context) ([]team.TeamMember, error)
}

type ProjectReader interface {
	GetInfo(ctx context.Context) (project.Info, error)
	TaskBoard(ctx context.Context) project.TaskBoard
}

type Service interface {
	Dashboard(ctx context.Context) (Summary, error)
	TeamProgress(ctx context.Context) ([]MemberProgress, error)
}

type ServiceImpl struct {
	members MemberLister
	project ProjectReader
}

func NewService(members MemberLister, project ProjectReader) *ServiceImpl {
	return &ServiceImpl{members: members, project: project}
}

func (s *ServiceImpl) Dashboard(ctx context.Context) (Summary, error) {
	var info *project.Info
	stored, err := s.project.GetInfo(ctx)
	switch {
	case err == nil:
		info = &stored
	case errors.Is(err, project.ErrProjectNotFound):
		log.Debug("no project info stored")
	default:
		log.Errorf("failed to read project info: %v", err)
	}

	members, err := s.members.ListMembers(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list team members: %w", err)
	}
	return Summarize(info, s.project.TaskBoard(ctx), members), nil
}

func (s *ServiceImpl) TeamProgress(ctx context.Context) ([]MemberProgress, error) {
	members, err := s.members.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return MemberStats(members, s.project.TaskBoard(ctx)), nil
}
