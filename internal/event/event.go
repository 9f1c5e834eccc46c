package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/logger"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types published after XP mutations and verification transitions
const (
	XPAwarded          Type = "xp.awarded"
	LevelUp            Type = "xp.level_up"
	DailyBonusGranted  Type = "daily.granted"
	MemberVerified     Type = "verification.verified"
	MemberUnverified   Type = "verification.unverified"
	VerificationCounts Type = "verification.counts_changed"
)

// Typed event payloads for type safety

// XPAwardedPayloadV1 is published for every successful award
type XPAwardedPayloadV1 struct {
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	Source    string `json:"source"`
	TotalXP   int64  `json:"total_xp"`
	Level     int    `json:"level"`
	Timestamp int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is published when an award raised the user's level.
// CrossedTiers lists the tiers whose level lies in (OldLevel, NewLevel].
type LevelUpPayloadV1 struct {
	UserID       string              `json:"user_id"`
	OldLevel     int                 `json:"old_level"`
	NewLevel     int                 `json:"new_level"`
	TotalXP      int64               `json:"total_xp"`
	Source       string              `json:"source"`
	CrossedTiers []domain.RewardTier `json:"crossed_tiers,omitempty"`
}

// DailyBonusPayloadV1 is published when a daily bonus was claimed
type DailyBonusPayloadV1 struct {
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	ClaimedAt int64  `json:"claimed_at"`
}

// VerificationPayloadV1 is published on verification transitions
type VerificationPayloadV1 struct {
	UserID    string `json:"user_id"`
	RoleID    string `json:"role_id"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewXPAwardedEvent creates an XP awarded event
func NewXPAwardedEvent(userID string, amount int64, source string, totalXP int64, level int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    XPAwarded,
		Payload: XPAwardedPayloadV1{
			UserID:    userID,
			Amount:    amount,
			Source:    source,
			TotalXP:   totalXP,
			Level:     level,
			Timestamp: time.Now().UnixMilli(),
		},
		Metadata: map[string]interface{}{MetadataKeySource: source},
	}
}

// NewLevelUpEvent creates a level-up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, totalXP int64, source string, crossed []domain.RewardTier) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:       userID,
			OldLevel:     oldLevel,
			NewLevel:     newLevel,
			TotalXP:      totalXP,
			Source:       source,
			CrossedTiers: crossed,
		},
		Metadata: map[string]interface{}{MetadataKeySource: source},
	}
}

// NewDailyBonusEvent creates a daily bonus event
func NewDailyBonusEvent(userID string, amount int64, claimedAt time.Time) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DailyBonusGranted,
		Payload: DailyBonusPayloadV1{
			UserID:    userID,
			Amount:    amount,
			ClaimedAt: claimedAt.UnixMilli(),
		},
	}
}

// NewVerificationEvent creates a verified or unverified event
func NewVerificationEvent(eventType Type, userID, roleID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: VerificationPayloadV1{
			UserID:    userID,
			RoleID:    roleID,
			Timestamp: time.Now().UnixMilli(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type in subscription order.
// A failing or panicking handler does not stop the others; errors are
// aggregated into the returned error.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := safeCall(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

func safeCall(ctx context.Context, handler Handler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgHandlerPanicked, "type", event.Type, "panic", r)
			err = fmt.Errorf("handler for %s panicked: %v", event.Type, r)
		}
	}()
	return handler(ctx, event)
}
