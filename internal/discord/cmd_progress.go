package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/embed"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/platform"
	"github.com/osse101/LevelBot_Go/internal/xp"
)

// Ranker returns the top n users by XP
type Ranker interface {
	Ranked(n int) []domain.UserProgress
}

// ProgressCommands serves the profile and leaderboard commands
type ProgressCommands struct {
	xp       xp.Service
	ranker   Ranker
	gateway  platform.Gateway
	renderer *embed.Renderer
	size     int
	now      func() time.Time
}

// NewProgressCommands creates the progress commands
func NewProgressCommands(xpSvc xp.Service, ranker Ranker, gateway platform.Gateway, renderer *embed.Renderer, leaderboardSize int) *ProgressCommands {
	if leaderboardSize <= 0 {
		leaderboardSize = domain.LeaderboardSize
	}
	return &ProgressCommands{
		xp:       xpSvc,
		ranker:   ranker,
		gateway:  gateway,
		renderer: renderer,
		size:     leaderboardSize,
		now:      time.Now,
	}
}

// Register adds the commands to r
func (c *ProgressCommands) Register(r *CommandRegistry) {
	r.Register(&Command{
		Name:        CommandProfile,
		Aliases:     []string{CommandLevel},
		Description: "Show your level and XP, or another member's",
	}, c.Profile)
	r.Register(&Command{
		Name:        CommandLeaderboard,
		Aliases:     []string{CommandTop},
		Description: "Show the top members by XP",
	}, c.Leaderboard)
}

// Profile shows the first mentioned member, or the author. A member without
// a record gets a zero record.
func (c *ProgressCommands) Profile(ctx context.Context, inv Invocation) error {
	target := inv.AuthorID
	if len(inv.Mentions) > 0 {
		target = inv.Mentions[0]
	}

	rec, err := c.xp.EnsureUser(ctx, target, c.now())
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	member, err := c.gateway.Member(ctx, target)
	if err != nil {
		if !domain.IsMissing(err) {
			return fmt.Errorf("failed to resolve member: %w", err)
		}
		member = domain.Member{UserID: target, Username: target}
	}

	_, err = c.gateway.SendEmbed(ctx, inv.ChannelID, c.renderer.Profile(member, rec))
	return err
}

// Leaderboard shows the top members. Users that can't be resolved are
// listed by mention.
func (c *ProgressCommands) Leaderboard(ctx context.Context, inv Invocation) error {
	log := logger.FromContext(ctx)
	ranked := c.ranker.Ranked(c.size)

	entries := make([]embed.LeaderboardEntry, 0, len(ranked))
	for _, up := range ranked {
		entry := embed.LeaderboardEntry{UserID: up.UserID, Level: up.Record.Level, XP: up.Record.XP}
		member, err := c.gateway.Member(ctx, up.UserID)
		switch {
		case err == nil:
			entry.Name = member.Username
		case !domain.IsMissing(err):
			log.Warn(LogMsgMemberLookup, "user_id", up.UserID, "error", err)
		}
		entries = append(entries, entry)
	}

	_, err := c.gateway.SendEmbed(ctx, inv.ChannelID, c.renderer.Leaderboard(entries, c.now()))
	return err
}
