package reward

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
	"github.com/osse101/LevelBot_Go/internal/platform"
)

// Log messages
const (
	LogMsgRoleGranted       = "Granted reward role"
	LogMsgRoleGrantFailed   = "Failed to grant reward role"
	LogMsgMemberGone        = "Member no longer resolvable, skipping role rewards"
	LogMsgRolesLookupFailed = "Failed to fetch member roles"
)

// Granter grants the roles a level-up made due
type Granter struct {
	resolver *Resolver
	gateway  platform.Gateway
}

// NewGranter creates a granter
func NewGranter(resolver *Resolver, gateway platform.Gateway) *Granter {
	return &Granter{resolver: resolver, gateway: gateway}
}

// Register subscribes the granter to level-up events
func (g *Granter) Register(bus event.Bus) {
	bus.Subscribe(event.LevelUp, g.HandleLevelUp)
}

// HandleLevelUp grants every due role for the new level
func (g *Granter) HandleLevelUp(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return fmt.Errorf("invalid level-up payload: %w", err)
	}
	_, err = g.Grant(ctx, payload.UserID, payload.NewLevel)
	return err
}

// Grant reads userID's roles from the platform and adds every role due at
// level that is missing. Roles removed by hand are therefore re-granted on the
// next level-affecting event. A member that cannot be resolved is skipped.
func (g *Granter) Grant(ctx context.Context, userID string, level int) ([]domain.RewardTier, error) {
	log := logger.FromContext(ctx)

	held, err := g.gateway.MemberRoles(ctx, userID)
	if err != nil {
		if domain.IsMissing(err) {
			log.Debug(LogMsgMemberGone, "user_id", userID)
			return nil, nil
		}
		log.Warn(LogMsgRolesLookupFailed, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to fetch roles for %s: %w", userID, err)
	}

	var granted []domain.RewardTier
	var errs []error
	for _, tier := range g.resolver.Resolve(level, held) {
		if err := g.gateway.AddRole(ctx, userID, tier.RoleID); err != nil {
			if domain.IsMissing(err) {
				metrics.RoleGrants.WithLabelValues(metrics.ResultSkipped).Inc()
				log.Debug(LogMsgRoleGrantFailed, "user_id", userID, "role_id", tier.RoleID, "error", err)
				continue
			}
			metrics.RoleGrants.WithLabelValues(metrics.ResultFailure).Inc()
			log.Warn(LogMsgRoleGrantFailed, "user_id", userID, "role_id", tier.RoleID, "tier", tier.Name, "error", err)
			errs = append(errs, err)
			continue
		}
		metrics.RoleGrants.WithLabelValues(metrics.ResultSuccess).Inc()
		log.Info(LogMsgRoleGranted, "user_id", userID, "role_id", tier.RoleID, "tier", tier.Name)
		granted = append(granted, tier)
	}
	return granted, errors.Join(errs...)
}
