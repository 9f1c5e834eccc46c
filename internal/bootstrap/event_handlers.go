package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/LevelBot_Go/internal/discord"
	"github.com/osse101/LevelBot_Go/internal/embed"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/metrics"
	"github.com/osse101/LevelBot_Go/internal/platform"
	"github.com/osse101/LevelBot_Go/internal/reward"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus         event.Bus
	Resolver         *reward.Resolver
	Gateway          platform.Gateway
	Renderer         *embed.Renderer
	LevelUpChannelID string
}

// RegisterEventHandlers subscribes everything that reacts to award effects:
// - Metrics collector (event counters)
// - Reward granter (milestone roles on level-up)
// - Announcer (level-up embed in the level-up channel)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	reward.NewGranter(deps.Resolver, deps.Gateway).Register(deps.EventBus)
	slog.Info(LogMsgRewardGranterRegistered, "tiers", len(deps.Resolver.Tiers()))

	discord.NewAnnouncer(deps.Gateway, deps.Renderer, deps.LevelUpChannelID).Register(deps.EventBus)
	slog.Info(LogMsgAnnouncerRegistered, "channel_id", deps.LevelUpChannelID)

	return nil
}
