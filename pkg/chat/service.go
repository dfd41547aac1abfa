package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pmdash/pmdash/internal/utils"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyMessage = errors.New("message text is empty")

type Service interface {
	ListMessages(ctx context.Context) ([]Message, error)
	// Send stores the user's message and the assistant reply, returning both.
	Send(ctx context.Context, text string) ([]Message, error)
	DeleteMessage(ctx context.Context, id string) error
	ClearMessages(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	repo         Repository
	orchestrator Orchestrator
	clock        utils.Clock
}

func NewService(repo Repository, orchestrator Orchestrator, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, orchestrator: orchestrator, clock: clock}
}

func (s *ServiceImpl) ListMessages(ctx context.Context) ([]Message, error) {
	return s.repo.ListMessages(ctx, CurrentUser(ctx))
}

func (s *ServiceImpl) Send(ctx context.Context, text string) ([]Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	userId := CurrentUser(ctx)

	history, err := s.repo.ListMessages(ctx, userId)
	if err != nil {
		log.Errorf("failed to read chat history of %s: %v", userId, err)
		history = nil
	}

	userMessage := s.newMessage(text, SenderUser)
	if err := s.repo.StoreMessage(ctx, userId, userMessage); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	reply, err := s.orchestrator.Ask(ctx, userMessage.Text, append(history, userMessage))
	if err != nil {
		log.Errorf("orchestrator call failed: %v", err)
	}
	if err != nil || reply == "" {
		reply = FallbackReply
	}

	botMessage := s.newMessage(reply, SenderBot)
	if err := s.repo.StoreMessage(ctx, userId, botMessage); err != nil {
		log.Errorf("failed to store assistant reply: %v", err)
		botMessage = s.newMessage(UnreachableReply, SenderBot)
	}
	return []Message{userMessage, botMessage}, nil
}

func (s *ServiceImpl) DeleteMessage(ctx context.Context, id string) error {
	return s.repo.DeleteMessage(ctx, CurrentUser(ctx), id)
}

func (s *ServiceImpl) ClearMessages(ctx context.Context) (int, error) {
	userId := CurrentUser(ctx)
	count, err := s.repo.DeleteAllMessages(ctx, userId)
	if err != nil {
		return 0, fmt.Errorf("failed to clear chat of %s: %w", userId, err)
	}
	log.Debugf("cleared %d chat messages of %s", count, userId)
	return count, nil
}

func (s *ServiceImpl) newMessage(text string, sender Sender) Message {
	return Message{
		Id:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.clock.Now(),
	}
}
