package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pmdash/pmdash/internal/docstore"
)

var ErrMessageNotFound = errors.New("message not found")

type Repository interface {
	ListMessages(ctx context.Context, userId string) ([]Message, error)
	StoreMessage(ctx context.Context, userId string, message Message) error
	DeleteMessage(ctx context.Context, userId string, id string) error
	// DeleteAllMessages removes the user's whole history and returns how many messages were removed.
	DeleteAllMessages(ctx context.Context, userId string) (int, error)
}

type messageDocument struct {
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

type repositoryImpl struct {
	store docstore.Store
}

func NewRepository(store docstore.Store) Repository {
	return &repositoryImpl{store: store}
}

func userCollection(userId string) string {
	return "chats/" + userId
}

func (r *repositoryImpl) ListMessages(ctx context.Context, userId string) ([]Message, error) {
	docs, err := r.store.List(ctx, userCollection(userId))
	if err != nil {
		return nil, err
	}
	messages := make([]Message, 0, len(docs))
	for _, d := range docs {
		var doc messageDocument
		if err := d.Decode(&doc); err != nil {
			return nil, fmt.Errorf("could not decode message %s: %w", d.Id, err)
		}
		messages = append(messages, Message{
			Id:        d.Id,
			Text:      doc.Text,
			Sender:    doc.Sender,
			Timestamp: doc.Timestamp,
		})
	}
	return messages, nil
}

func (r *repositoryImpl) StoreMessage(ctx context.Context, userId string, message Message) error {
	return r.store.Put(ctx, userCollection(userId), message.Id, messageDocument{
		Text:      message.Text,
		Sender:    message.Sender,
		Timestamp: message.Timestamp,
	})
}

func (r *repositoryImpl) DeleteMessage(ctx context.Context, userId string, id string) error {
	err := r.store.Delete(ctx, userCollection(userId), id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrMessageNotFound
	}
	return err
}

func (r *repositoryImpl) DeleteAllMessages(ctx context.Context, userId string) (int, error) {
	return r.store.DeleteAll(ctx, userCollection(userId))
}
