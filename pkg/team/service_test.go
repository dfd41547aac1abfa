package team

import (
	"context"
	"errors"
	"testing"

	"github.com/pmdash/pmdash/internal/docstore"
	"github.com/pmdash/pmdash/internal/event_bus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*ServiceImpl, *docstore.StoreStub, *event_bus.EventBus) {
	store := docstore.NewStoreStub()
	bus := event_bus.NewEventBus()
	return NewService(NewRepository(store), bus), store, bus
}

func TestServiceImpl_CreateMember(t *testing.T) {
	ctx := context.Background()

	t.Run("generates id and publishes event", func(t *testing.T) {
		service, _, bus := setupService(t)
		var published []event_bus.TeamMemberCreatedPayload
		event_bus.SubscribeTyped[event_bus.TeamMemberCreatedPayload](bus, event_bus.TeamMemberCreated,
			func(e event_bus.EventT[event_bus.TeamMemberCreatedPayload]) error {
				published = append(published, e.Data)
				return nil
			})

		created, err := service.CreateMember(ctx, TeamMember{Name: "  Ann Lee ", Role: "Designer"})

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "Ann Lee", created.Name)
		require.Len(t, published, 1)
		assert.Equal(t, created.Id, published[0].Id)

		stored, err := service.GetMember(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, "Designer", stored.Role)
	})

	t.Run("keeps given id", func(t *testing.T) {
		service, _, _ := setupService(t)

		created, err := service.CreateMember(ctx, TeamMember{Id: "m1", Name: "Ann"})

		require.NoError(t, err)
		assert.Equal(t, "m1", created.Id)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.CreateMember(ctx, TeamMember{Name: "   "})

		assert.ErrorIs(t, err, ErrMemberNameRequired)
	})

	t.Run("subscriber failure does not fail creation", func(t *testing.T) {
		service, _, bus := setupService(t)
		bus.Subscribe(event_bus.TeamMemberCreated, func(e event_bus.Event) error {
			return errors.New("calendar init failed")
		})

		_, err := service.CreateMember(ctx, TeamMember{Name: "Ann"})

		assert.NoError(t, err)
	})

	t.Run("store failure", func(t *testing.T) {
		service, store, _ := setupService(t)
		store.SetPutError(errors.New("store down"))

		_, err := service.CreateMember(ctx, TeamMember{Name: "Ann"})

		assert.Error(t, err)
	})
}

func TestServiceImpl_ListMembers_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	service, _, _ := setupService(t)
	for _, name := range []string{"Cid", "Ann", "Bob"} {
		_, err := service.CreateMember(ctx, TeamMember{Name: name})
		require.NoError(t, err)
	}

	members, err := service.ListMembers(ctx)

	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, []string{"Cid", "Ann", "Bob"}, []string{members[0].Name, members[1].Name, members[2].Name})
}

func TestServiceImpl_GetMember_NotFound(t *testing.T) {
	service, _, _ := setupService(t)

	_, err := service.GetMember(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestTeamMember_FirstName(t *testing.T) {
	assert.Equal(t, "Ann", TeamMember{Name: "Ann Lee"}.FirstName())
	assert.Equal(t, "Bob", TeamMember{Name: "Bob"}.FirstName())
	assert.Equal(t, "", TeamMember{}.FirstName())
}
