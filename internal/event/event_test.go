package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		assert.Equal(t, eventType, event.Type)
		assert.Equal(t, "payload", event.Payload)
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType, Payload: "payload"})
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	var order []int

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error { order = append(order, 1); return nil })
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error { order = append(order, 2); return nil })

	require.NoError(t, bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType}))
	assert.Equal(t, []int{1, 2}, order)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "nobody"}))
}

func TestMemoryBus_ErrorDoesNotStopOtherHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	secondRan := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		secondRan = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	assert.Error(t, err)
	assert.True(t, secondRan)
}

func TestMemoryBus_PanicRecovered(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		panic("boom")
	})

	var err error
	assert.NotPanics(t, func() {
		err = bus.Publish(context.Background(), Event{Type: eventType})
	})
	assert.ErrorContains(t, err, "panicked")
}

func TestNewLevelUpEvent(t *testing.T) {
	tiers := []domain.RewardTier{{Level: 5, RoleID: "r5", Name: "Active Member"}}
	evt := NewLevelUpEvent("u1", 4, 5, 2500, domain.SourceMessage, tiers)

	assert.Equal(t, LevelUp, evt.Type)
	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, domain.SourceMessage, evt.GetMetadataValue(MetadataKeySource))

	payload, err := DecodePayload[LevelUpPayloadV1](evt.Payload)
	require.NoError(t, err)
	assert.Equal(t, 4, payload.OldLevel)
	assert.Equal(t, 5, payload.NewLevel)
	assert.Equal(t, tiers, payload.CrossedTiers)
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"user_id": "u1", "amount": 100, "claimed_at": 42}

	payload, err := DecodePayload[DailyBonusPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", payload.UserID)
	assert.Equal(t, int64(100), payload.Amount)
	assert.Equal(t, int64(42), payload.ClaimedAt)
}

func TestDecodePayload_Pointer(t *testing.T) {
	payload, err := DecodePayload[VerificationPayloadV1](&VerificationPayloadV1{UserID: "u2", RoleID: "r"})
	require.NoError(t, err)
	assert.Equal(t, "u2", payload.UserID)

	var nilPayload *VerificationPayloadV1
	empty, err := DecodePayload[VerificationPayloadV1](nilPayload)
	require.NoError(t, err)
	assert.Empty(t, empty.UserID)
}
