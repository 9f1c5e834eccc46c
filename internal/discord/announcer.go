package discord

import (
	"context"
	"fmt"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/embed"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/platform"
)

// Announcer posts level-up embeds to the level-up channel
type Announcer struct {
	gateway   platform.Gateway
	renderer  *embed.Renderer
	channelID string
}

// NewAnnouncer creates an announcer posting to channelID
func NewAnnouncer(gateway platform.Gateway, renderer *embed.Renderer, channelID string) *Announcer {
	return &Announcer{gateway: gateway, renderer: renderer, channelID: channelID}
}

// Register subscribes the announcer to level-up events
func (a *Announcer) Register(bus event.Bus) {
	bus.Subscribe(event.LevelUp, a.HandleLevelUp)
}

// HandleLevelUp announces one level-up. A member that left is skipped.
func (a *Announcer) HandleLevelUp(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)

	member, err := a.gateway.Member(ctx, p.UserID)
	if domain.IsMissing(err) {
		log.Debug(LogMsgAnnounceSkipped, "user_id", p.UserID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve member: %w", err)
	}

	msg := a.renderer.LevelUp(member, p.OldLevel, p.NewLevel, p.TotalXP, p.CrossedTiers)
	if _, err := a.gateway.SendEmbed(ctx, a.channelID, msg); err != nil {
		return fmt.Errorf("failed to announce level-up: %w", err)
	}
	log.Info(LogMsgLevelUpAnnounced, "user_id", p.UserID, "level", p.NewLevel)
	return nil
}
