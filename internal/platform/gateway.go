// Package platform defines what the engine needs from the chat platform.
package platform

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

// Gateway is the outbound side of the chat platform, scoped to one guild.
// Lookups of unknown members, channels or roles return errors wrapping the
// domain "not found" sentinels.
type Gateway interface {
	SendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (string, error)
	EditEmbed(ctx context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) error
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error

	AddRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
	MemberRoles(ctx context.Context, userID string) ([]string, error)

	Presence(ctx context.Context, userID string) (domain.Presence, error)
	Member(ctx context.Context, userID string) (domain.Member, error)

	// MemberCounts returns the guild member count and how many of them hold roleID
	MemberCounts(ctx context.Context, roleID string) (total int, withRole int, err error)
}

// HasRole reports whether userID currently holds roleID
func HasRole(ctx context.Context, gw Gateway, userID, roleID string) (bool, error) {
	roles, err := gw.MemberRoles(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, id := range roles {
		if id == roleID {
			return true, nil
		}
	}
	return false, nil
}
