package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/platform"
)

// Gateway implements platform.Gateway on a discordgo session, scoped to one
// guild. Member, presence and count lookups read the session state first,
// which requires the guild members and presences intents.
type Gateway struct {
	session *discordgo.Session
	guildID string
}

// NewGateway creates a gateway for guildID
func NewGateway(session *discordgo.Session, guildID string) *Gateway {
	return &Gateway{session: session, guildID: guildID}
}

// SendEmbed implements platform.Gateway
func (g *Gateway) SendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (string, error) {
	msg, err := g.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
	if err != nil {
		return "", mapError(err, domain.ErrChannelNotFound, channelID)
	}
	return msg.ID, nil
}

// EditEmbed implements platform.Gateway
func (g *Gateway) EditEmbed(ctx context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) error {
	if _, err := g.session.ChannelMessageEditEmbed(channelID, messageID, embed, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, domain.ErrNotFound, messageID)
	}
	return nil
}

// AddReaction implements platform.Gateway
func (g *Gateway) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := g.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, domain.ErrNotFound, messageID)
	}
	return nil
}

// AddRole implements platform.Gateway
func (g *Gateway) AddRole(ctx context.Context, userID, roleID string) error {
	if err := g.session.GuildMemberRoleAdd(g.guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, domain.ErrMemberNotFound, userID)
	}
	return nil
}

// RemoveRole implements platform.Gateway
func (g *Gateway) RemoveRole(ctx context.Context, userID, roleID string) error {
	if err := g.session.GuildMemberRoleRemove(g.guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, domain.ErrMemberNotFound, userID)
	}
	return nil
}

// MemberRoles implements platform.Gateway. Roles are always fetched from the
// API so that grants racing a stale cache are not lost.
func (g *Gateway) MemberRoles(ctx context.Context, userID string) ([]string, error) {
	m, err := g.session.GuildMember(g.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapError(err, domain.ErrMemberNotFound, userID)
	}
	return append([]string(nil), m.Roles...), nil
}

// Presence implements platform.Gateway. A cached member without a cached
// presence is offline, since the gateway only sends presences of online
// members.
func (g *Gateway) Presence(_ context.Context, userID string) (domain.Presence, error) {
	if p, err := g.session.State.Presence(g.guildID, userID); err == nil {
		return domain.Presence(p.Status), nil
	}
	if _, err := g.session.State.Member(g.guildID, userID); err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrPresenceUnknown, userID)
	}
	return domain.PresenceOffline, nil
}

// Member implements platform.Gateway
func (g *Gateway) Member(ctx context.Context, userID string) (domain.Member, error) {
	m, err := g.session.State.Member(g.guildID, userID)
	if err != nil {
		m, err = g.session.GuildMember(g.guildID, userID, discordgo.WithContext(ctx))
		if err != nil {
			return domain.Member{}, mapError(err, domain.ErrMemberNotFound, userID)
		}
	}
	return toMember(m), nil
}

// MemberCounts implements platform.Gateway
func (g *Gateway) MemberCounts(_ context.Context, roleID string) (int, int, error) {
	guild, err := g.session.State.Guild(g.guildID)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: guild %s", domain.ErrNotFound, g.guildID)
	}

	g.session.State.RLock()
	defer g.session.State.RUnlock()

	withRole := 0
	for _, m := range guild.Members {
		for _, id := range m.Roles {
			if id == roleID {
				withRole++
				break
			}
		}
	}
	total := guild.MemberCount
	if total < len(guild.Members) {
		total = len(guild.Members)
	}
	return total, withRole, nil
}

func toMember(m *discordgo.Member) domain.Member {
	var out domain.Member
	if m.User != nil {
		out.AvatarURL = m.AvatarURL("")
		out.UserID = m.User.ID
		out.Username = m.User.Username
		out.Bot = m.User.Bot
	}
	return out
}

// mapError wraps a 404 from the API in the given "not found" sentinel
func mapError(err error, notFound error, what string) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s: %w", notFound, what, err)
	}
	return err
}

var _ platform.Gateway = (*Gateway)(nil)
