package project

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidProgress = errors.New("progress percent must be between 0 and 100")

type Service interface {
	GetInfo(ctx context.Context) (Info, error)
	UpdateInfo(ctx context.Context, info Info) (Info, error)
	// TaskBoard reads all status lists. A list that cannot be read is returned empty.
	TaskBoard(ctx context.Context) TaskBoard
	UpdateTasks(ctx context.Context, status TaskStatus, items []string) ([]string, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetInfo(ctx context.Context) (Info, error) {
	return s.repo.GetInfo(ctx)
}

func (s *ServiceImpl) UpdateInfo(ctx context.Context, info Info) (Info, error) {
	if info.Status.ProgressPercent < 0 || info.Status.ProgressPercent > 100 {
		return Info{}, ErrInvalidProgress
	}
	if err := s.repo.StoreInfo(ctx, info); err != nil {
		return Info{}, fmt.Errorf("failed to store project info: %w", err)
	}
	return info, nil
}

func (s *ServiceImpl) TaskBoard(ctx context.Context) TaskBoard {
	board := make(TaskBoard, len(TaskStatuses))
	for _, status := range TaskStatuses {
		items, err := s.repo.GetTasks(ctx, status)
		if err != nil {
			log.Errorf("failed to read %s tasks: %v", status, err)
			items = []string{}
		}
		board[status] = items
	}
	return board
}

func (s *ServiceImpl) UpdateTasks(ctx context.Context, status TaskStatus, items []string) ([]string, error) {
	if err := s.repo.StoreTasks(ctx, status, items); err != nil {
		return nil, fmt.Errorf("failed to store %s tasks: %w", status, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}
