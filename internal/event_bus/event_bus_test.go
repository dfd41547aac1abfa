package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string
	bus.Subscribe(TeamMemberCreated, func(e Event) error {
		calls = append(calls, "first")
		return nil
	})
	bus.Subscribe(TeamMemberCreated, func(e Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), TeamMemberCreated, TeamMemberCreatedPayload{Id: "m1"}))

	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEventBus_SubscribeTyped(t *testing.T) {
	bus := NewEventBus()
	var received []TeamMemberCreatedPayload
	SubscribeTyped[TeamMemberCreatedPayload](bus, TeamMemberCreated, func(e EventT[TeamMemberCreatedPayload]) error {
		received = append(received, e.Data)
		return nil
	})

	require.NoError(t, bus.Publish(NewEvent(context.Background(), TeamMemberCreated, TeamMemberCreatedPayload{Id: "m1", Name: "Ann"})))
	require.NoError(t, bus.Publish(NewEvent(context.Background(), TeamMemberCreated, "not a payload")))

	require.Len(t, received, 1)
	assert.Equal(t, "Ann", received[0].Name)
}

func TestEventBus_CollectsErrorsAndPanics(t *testing.T) {
	bus := NewEventBus()
	failure := errors.New("handler failed")
	ran := false
	bus.Subscribe(TeamMemberCreated, func(e Event) error { return failure })
	bus.Subscribe(TeamMemberCreated, func(e Event) error { panic("boom") })
	bus.Subscribe(TeamMemberCreated, func(e Event) error {
		ran = true
		return nil
	})

	err := bus.Publish(NewEvent(context.Background(), TeamMemberCreated, TeamMemberCreatedPayload{}))

	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
	assert.True(t, ran)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	count := 0
	unsubscribe := bus.Subscribe(TeamMemberCreated, func(e Event) error {
		count++
		return nil
	})
	unsubscribe()

	require.NoError(t, bus.Publish(NewEvent(context.Background(), TeamMemberCreated, nil)))
	assert.Equal(t, 0, count)
}

func TestEventBus_CancelledContext(t *testing.T) {
	bus := NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Publish(NewEvent(ctx, TeamMemberCreated, nil))

	assert.ErrorIs(t, err, context.Canceled)
}
