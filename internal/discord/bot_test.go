package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

func TestMessageCreate_AwardsOncePerCooldown(t *testing.T) {
	tc := SetupTestContext(t)

	tc.Bot.messageCreate(nil, userMessage(testGuild, testGeneral, "u1", "hello"))
	first := tc.XP("u1")
	assert.GreaterOrEqual(t, first, int64(domain.MessageXPMin))
	assert.LessOrEqual(t, first, int64(domain.MessageXPMax))

	tc.Bot.messageCreate(nil, userMessage(testGuild, testGeneral, "u1", "again"))
	assert.Equal(t, first, tc.XP("u1"))

	rec, _ := tc.Store.Get("u1")
	assert.Equal(t, int64(1), rec.TotalMessages)
}

func TestMessageCreate_Ignored(t *testing.T) {
	tc := SetupTestContext(t)

	bot := userMessage(testGuild, testGeneral, "b1", "beep")
	bot.Author.Bot = true
	tc.Bot.messageCreate(nil, bot)
	tc.Bot.messageCreate(nil, userMessage("other-guild", testGeneral, "u1", "hi"))

	assert.Equal(t, 0, tc.Store.Len())
}

func TestMessageCreate_ProfileCommand(t *testing.T) {
	tc := SetupTestContext(t)
	tc.AddMember("u1", "alice")

	tc.Bot.messageCreate(nil, userMessage(testGuild, testGeneral, "u1", "!profile"))

	sent := tc.Gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, testGeneral, sent[0].ChannelID)
	assert.Equal(t, "📊 alice's Profile", sent[0].Embed.Title)
}

func TestMessageCreate_ProfileOfMention(t *testing.T) {
	tc := SetupTestContext(t)
	tc.AddMember("u1", "alice")
	tc.AddMember("u2", "bob")

	tc.Bot.messageCreate(nil, userMessage(testGuild, testGeneral, "u1", "!LEVEL <@u2>", &discordgo.User{ID: "u2"}))

	sent := tc.Gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "📊 bob's Profile", sent[0].Embed.Title)

	_, ok := tc.Store.Get("u2")
	assert.True(t, ok, "profile lookup creates a zero record")
}

func TestMessageCreate_LeaderboardEmpty(t *testing.T) {
	tc := SetupTestContext(t)

	// invoked directly: a command message would itself earn XP
	err := tc.Bot.Registry.Handlers[CommandTop](context.Background(), Invocation{Name: CommandTop, ChannelID: testGeneral})
	require.NoError(t, err)

	sent := tc.Gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "No data available", sent[0].Embed.Description)
}

func TestMessageCreate_Leaderboard(t *testing.T) {
	tc := SetupTestContext(t)
	tc.AddMember("u1", "alice")

	tc.Bot.messageCreate(nil, userMessage(testGuild, testGeneral, "u1", "!leaderboard"))

	sent := tc.Gateway.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Embed.Description, "🥇 **alice** - Level 0")
}

func TestReactionAdd_AwardsGiverAndAuthor(t *testing.T) {
	tc := SetupTestContext(t)
	tc.Authors["msg-a"] = &discordgo.User{ID: "author"}

	tc.Bot.reactionAdd(nil, reactionAdd("giver", testGeneral, "msg-a", "👍"))

	assert.Equal(t, int64(domain.ReactionGivenXP), tc.XP("giver"))
	assert.Equal(t, int64(domain.ReactionReceivedXP), tc.XP("author"))
}

func TestReactionAdd_BotAuthorEarnsNothing(t *testing.T) {
	tc := SetupTestContext(t)
	tc.Authors["msg-a"] = &discordgo.User{ID: "bot", Bot: true}

	tc.Bot.reactionAdd(nil, reactionAdd("giver", testGeneral, "msg-a", "👍"))

	assert.Equal(t, int64(domain.ReactionGivenXP), tc.XP("giver"))
	_, ok := tc.Store.Get("bot")
	assert.False(t, ok)
}

func TestReactionAdd_ByBotIgnored(t *testing.T) {
	tc := SetupTestContext(t)
	r := reactionAdd("b1", testGeneral, "msg-a", "👍")
	r.Member = &discordgo.Member{User: &discordgo.User{ID: "b1", Bot: true}}

	tc.Bot.reactionAdd(nil, r)

	assert.Equal(t, 0, tc.Store.Len())
}

func TestVerificationFlow(t *testing.T) {
	tc := SetupTestContext(t)
	tc.AddMember("u1", "alice")
	ctx := context.Background()

	id, err := tc.Verify.Post(ctx)
	require.NoError(t, err)

	tc.Bot.reactionAdd(nil, reactionAdd("u1", testWelcome, id, testVerifyEmoji))

	assert.Contains(t, tc.Gateway.Roles("u1"), testVerifiedRole)
	assert.Equal(t, int64(domain.VerificationBonusXP), tc.XP("u1"), "verification earns the bonus and no reaction XP")

	// 100 XP is level 1: the level-up is announced
	var announced bool
	for _, s := range tc.Gateway.Sent() {
		if s.ChannelID == testLevelChannel {
			announced = true
			assert.Equal(t, "<@u1> reached **Level 1**!", s.Embed.Description)
		}
	}
	assert.True(t, announced)

	tc.Bot.reactionRemove(nil, &discordgo.MessageReactionRemove{MessageReaction: &discordgo.MessageReaction{
		UserID: "u1", MessageID: id, ChannelID: testWelcome, GuildID: testGuild, Emoji: discordgo.Emoji{Name: testVerifyEmoji},
	}})
	assert.NotContains(t, tc.Gateway.Roles("u1"), testVerifiedRole)
	assert.Equal(t, int64(domain.VerificationBonusXP), tc.XP("u1"), "unverifying keeps XP")
}

func TestReady_ReconnectKeepsVerificationMessage(t *testing.T) {
	tc := SetupTestContext(t)
	tc.AddMember("u1", "alice")
	var readies int
	tc.Bot.OnReady = func(context.Context) { readies++ }

	tc.Bot.ready(tc.Bot.Session, &discordgo.Ready{User: &discordgo.User{Username: "levelbot"}})
	first := tc.Verify.MessageID()
	require.NotEmpty(t, first)

	tc.Bot.ready(tc.Bot.Session, &discordgo.Ready{User: &discordgo.User{Username: "levelbot"}})
	assert.Equal(t, first, tc.Verify.MessageID())
	assert.Equal(t, 2, readies)

	var posts int
	for _, s := range tc.Gateway.Sent() {
		if s.ChannelID == testWelcome {
			posts++
		}
	}
	assert.Equal(t, 1, posts)
	require.Len(t, tc.Gateway.Edits(), 1, "second ready refreshes the counts")
	assert.Equal(t, first, tc.Gateway.Edits()[0].MessageID)

	tc.Bot.reactionAdd(nil, reactionAdd("u1", testWelcome, first, testVerifyEmoji))
	require.Contains(t, tc.Gateway.Roles("u1"), testVerifiedRole)

	tc.Bot.reactionRemove(nil, &discordgo.MessageReactionRemove{MessageReaction: &discordgo.MessageReaction{
		UserID: "u1", MessageID: first, ChannelID: testWelcome, GuildID: testGuild, Emoji: discordgo.Emoji{Name: testVerifyEmoji},
	}})
	assert.NotContains(t, tc.Gateway.Roles("u1"), testVerifiedRole)
}

func TestVoiceStateUpdate_OrphanLeave(t *testing.T) {
	tc := SetupTestContext(t)

	tc.Bot.voiceStateUpdate(nil, &discordgo.VoiceStateUpdate{
		VoiceState:   &discordgo.VoiceState{GuildID: testGuild, UserID: "u1"},
		BeforeUpdate: &discordgo.VoiceState{GuildID: testGuild, UserID: "u1", ChannelID: "vc"},
	})

	assert.Equal(t, 0, tc.Store.Len())
}

func TestVoiceStateUpdate_JoinCreatesRecord(t *testing.T) {
	tc := SetupTestContext(t)

	tc.Bot.voiceStateUpdate(nil, &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{GuildID: testGuild, UserID: "u1", ChannelID: "vc"},
	})

	_, ok := tc.Store.Get("u1")
	assert.True(t, ok)
}

func TestMemberAdd(t *testing.T) {
	tc := SetupTestContext(t)
	_, err := tc.Verify.Post(context.Background())
	require.NoError(t, err)
	tc.AddMember("u9", "newbie")

	tc.Bot.memberAdd(nil, &discordgo.GuildMemberAdd{Member: &discordgo.Member{GuildID: testGuild, User: &discordgo.User{ID: "u9"}}})

	_, ok := tc.Store.Get("u9")
	assert.True(t, ok)
	require.Len(t, tc.Gateway.Edits(), 1)
	assert.Contains(t, tc.Gateway.Edits()[0].Embed.Description, "**Total Members:** 1")

	tc.Gateway.RemoveMember("u9")
	tc.Bot.memberRemove(nil, &discordgo.GuildMemberRemove{Member: &discordgo.Member{GuildID: testGuild, User: &discordgo.User{ID: "u9"}}})
	require.Len(t, tc.Gateway.Edits(), 2)
	assert.Contains(t, tc.Gateway.Edits()[1].Embed.Description, "**Total Members:** 0")
}

func TestHealth(t *testing.T) {
	tc := SetupTestContext(t)
	before := tc.Bot.Health().CommandsReceived

	RecordCommand()

	h := tc.Bot.Health()
	assert.Equal(t, before+1, h.CommandsReceived)
	assert.False(t, h.Connected)
	assert.Equal(t, HealthStatusDegraded, h.Status)
	assert.False(t, h.LastCommandTime.IsZero())
}
