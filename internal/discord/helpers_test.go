package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LevelBot_Go/internal/activity"
	"github.com/osse101/LevelBot_Go/internal/cooldown"
	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/embed"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/platform"
	"github.com/osse101/LevelBot_Go/internal/progress"
	"github.com/osse101/LevelBot_Go/internal/reward"
	"github.com/osse101/LevelBot_Go/internal/verification"
	"github.com/osse101/LevelBot_Go/internal/voice"
	"github.com/osse101/LevelBot_Go/internal/xp"
)

const (
	testGuild         = "guild-1"
	testWelcome       = "welcome"
	testLevelChannel  = "levels"
	testGeneral       = "general"
	testVerifiedRole  = "role-verified"
	testVerifyEmoji   = "✅"
	testCommandPrefix = "!"
)

// TestContext wires a bot to in-memory engine components and a fake guild
type TestContext struct {
	Bot     *Bot
	Gateway *platform.Fake
	Store   *progress.Store
	Bus     *event.MemoryBus
	Verify  *verification.Service
	Authors map[string]*discordgo.User
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	tc := &TestContext{
		Gateway: platform.NewFake(),
		Store:   progress.NewStore(progress.NewMemoryBackend()),
		Bus:     event.NewMemoryBus(),
		Authors: make(map[string]*discordgo.User),
	}
	for _, ch := range []string{testWelcome, testLevelChannel, testGeneral} {
		tc.Gateway.AddChannel(ch)
	}

	resolver := reward.NewResolver(domain.DefaultRewardTiers(testVerifiedRole))
	xpSvc := xp.NewService(tc.Store, resolver)
	exec := xp.NewExecutor(tc.Bus)
	renderer := embed.NewRenderer(testVerifyEmoji, embed.Rates{MessageMin: 15, MessageMax: 25, VoicePerMinute: 10, ReactionGiven: 5, DailyBonus: 100})

	tc.Verify = verification.NewService(verification.Config{
		ChannelID: testWelcome,
		RoleID:    testVerifiedRole,
		Emoji:     testVerifyEmoji,
		Bonus:     domain.VerificationBonusXP,
	}, tc.Gateway, xpSvc, exec, renderer)

	act := activity.NewService(activity.DefaultConfig(), xpSvc, exec,
		cooldown.NewTracker(cooldown.DefaultConfig()), voice.NewTracker(), tc.Verify)

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	tc.Bot = newBot(session, Config{GuildID: testGuild, Prefix: testCommandPrefix}, act, tc.Verify)
	tc.Bot.fetchAuthor = func(_ context.Context, _, messageID string) (*discordgo.User, error) {
		if u, ok := tc.Authors[messageID]; ok {
			return u, nil
		}
		return nil, domain.ErrNotFound
	}

	NewProgressCommands(xpSvc, tc.Store, tc.Gateway, renderer, domain.LeaderboardSize).Register(tc.Bot.Registry)
	NewAnnouncer(tc.Gateway, renderer, testLevelChannel).Register(tc.Bus)
	return tc
}

func (tc *TestContext) XP(userID string) int64 {
	rec, _ := tc.Store.Get(userID)
	return rec.XP
}

func (tc *TestContext) AddMember(userID, username string, roles ...string) {
	tc.Gateway.AddMember(domain.Member{UserID: userID, Username: username}, domain.PresenceOnline, roles...)
}

func userMessage(guildID, channelID, authorID, content string, mentions ...*discordgo.User) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m-" + authorID,
		GuildID:   guildID,
		ChannelID: channelID,
		Author:    &discordgo.User{ID: authorID},
		Content:   content,
		Mentions:  mentions,
	}}
}

func reactionAdd(userID, channelID, messageID, emoji string) *discordgo.MessageReactionAdd {
	return &discordgo.MessageReactionAdd{MessageReaction: &discordgo.MessageReaction{
		UserID:    userID,
		MessageID: messageID,
		ChannelID: channelID,
		GuildID:   testGuild,
		Emoji:     discordgo.Emoji{Name: emoji},
	}}
}
