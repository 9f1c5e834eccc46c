package discord

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/embed"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/platform"
)

func newTestAnnouncer(gw *platform.Fake) *Announcer {
	return NewAnnouncer(gw, embed.NewRenderer(testVerifyEmoji, embed.Rates{}), testLevelChannel)
}

func TestAnnouncer_PostsLevelUp(t *testing.T) {
	gw := platform.NewFake()
	gw.AddChannel(testLevelChannel)
	gw.AddMember(domain.Member{UserID: "u1", Username: "alice"}, domain.PresenceOnline)
	tiers := []domain.RewardTier{{Level: 5, Name: "Active Member"}}

	err := newTestAnnouncer(gw).HandleLevelUp(context.Background(), event.NewLevelUpEvent("u1", 4, 5, 2500, domain.SourceMessage, tiers))
	require.NoError(t, err)

	sent := gw.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, testLevelChannel, sent[0].ChannelID)
	assert.Equal(t, embed.TitleLevelUp, sent[0].Embed.Title)
	assert.Len(t, sent[0].Embed.Fields, 4)
}

func TestAnnouncer_MemberLeft(t *testing.T) {
	gw := platform.NewFake()
	gw.AddChannel(testLevelChannel)

	err := newTestAnnouncer(gw).HandleLevelUp(context.Background(), event.NewLevelUpEvent("gone", 0, 1, 100, domain.SourceMessage, nil))
	require.NoError(t, err)
	assert.Empty(t, gw.Sent())
}

func TestAnnouncer_MissingChannel(t *testing.T) {
	gw := platform.NewFake()
	gw.AddMember(domain.Member{UserID: "u1"}, domain.PresenceOnline)

	err := newTestAnnouncer(gw).HandleLevelUp(context.Background(), event.NewLevelUpEvent("u1", 0, 1, 100, domain.SourceMessage, nil))
	assert.ErrorIs(t, err, domain.ErrChannelNotFound)
}
