package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/LevelBot_Go/internal/activity"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
	"github.com/osse101/LevelBot_Go/internal/verification"
)

// Intents the bot needs: message content for prefix commands, members and
// presences for verification counts and the daily bonus.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMessageReactions |
	discordgo.IntentsGuildVoiceStates |
	discordgo.IntentsGuildMembers |
	discordgo.IntentsGuildPresences |
	discordgo.IntentsMessageContent

// Config holds the bot configuration
type Config struct {
	GuildID string
	Prefix  string
}

// Bot routes gateway events of one guild to the engine
type Bot struct {
	Session  *discordgo.Session
	GuildID  string
	Registry *CommandRegistry

	activity     *activity.Service
	verification *verification.Service

	// OnReady runs on every ready event after the verification message is posted
	OnReady func(ctx context.Context)

	// fetchAuthor resolves the author of a reacted-to message
	fetchAuthor func(ctx context.Context, channelID, messageID string) (*discordgo.User, error)
}

// NewSession creates a Discord session with the intents and state cache the
// bot relies on. The connection is opened by Bot.Start.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	s.Identify.Intents = Intents
	s.StateEnabled = true
	return s, nil
}

// New creates a bot on a session from NewSession
func New(s *discordgo.Session, cfg Config, act *activity.Service, verify *verification.Service) *Bot {
	b := newBot(s, cfg, act, verify)
	b.fetchAuthor = b.sessionAuthor
	return b
}

func newBot(s *discordgo.Session, cfg Config, act *activity.Service, verify *verification.Service) *Bot {
	return &Bot{
		Session:      s,
		GuildID:      cfg.GuildID,
		Registry:     NewCommandRegistry(cfg.Prefix),
		activity:     act,
		verification: verify,
	}
}

// Start registers the handlers and opens the gateway connection
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.messageCreate)
	b.Session.AddHandler(b.reactionAdd)
	b.Session.AddHandler(b.reactionRemove)
	b.Session.AddHandler(b.voiceStateUpdate)
	b.Session.AddHandler(b.memberAdd)
	b.Session.AddHandler(b.memberRemove)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info(LogMsgBotRunning, "guild_id", b.GuildID)
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() error {
	err := b.Session.Close()
	slog.Info(LogMsgBotStopped)
	return err
}

// eventContext tags one gateway event with a fresh request id
func (b *Bot) eventContext(kind string) context.Context {
	metrics.GatewayEvents.WithLabelValues(kind).Inc()
	return logger.WithNewRequestID(context.Background())
}

func (b *Bot) inGuild(guildID string) bool {
	if guildID != b.GuildID {
		metrics.GatewayEvents.WithLabelValues(EventIgnoredOutsider).Inc()
		return false
	}
	return true
}

func (b *Bot) logErr(ctx context.Context, kind string, err error) {
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgHandlerFailed, "event", kind, "error", err)
	}
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	ctx := b.eventContext(EventReady)
	log := logger.FromContext(ctx)
	if r.User != nil {
		log.Info(LogMsgBotReady, "user", r.User.Username)
	}

	// populate the member cache used for counts and presences
	if err := s.RequestGuildMembers(b.GuildID, "", 0, "", true); err != nil {
		log.Warn(LogMsgMemberRequestFail, "error", err)
	}

	// reconnects reuse the tracked message
	if b.verification.MessageID() == "" {
		if _, err := b.verification.Post(ctx); err != nil {
			log.Error(LogMsgVerifyPostFailed, "error", err)
		}
	} else if err := b.verification.RefreshCounts(ctx); err != nil {
		log.Warn(LogMsgVerifyRefreshFail, "error", err)
	}
	if b.OnReady != nil {
		b.OnReady(ctx)
	}
}

func (b *Bot) messageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || !b.inGuild(m.GuildID) {
		return
	}
	ctx := b.eventContext(EventMessageCreate)

	_, err := b.activity.OnMessage(ctx, m.Author.ID, m.Author.Bot)
	b.logErr(ctx, EventMessageCreate, err)

	name, args, ok := b.Registry.Parse(m.Content)
	if !ok {
		return
	}
	inv := Invocation{
		Name:      name,
		Args:      args,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
	}
	for _, u := range m.Mentions {
		inv.Mentions = append(inv.Mentions, u.ID)
	}
	b.Registry.Handle(ctx, inv)
}

func (b *Bot) reactionAdd(_ *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if !b.inGuild(r.GuildID) || memberIsBot(r.Member) {
		return
	}
	ctx := b.eventContext(EventReactionAdd)

	if b.verification.IsVerificationMessage(r.MessageID) {
		_, err := b.verification.OnReactionAdd(ctx, r.UserID, r.MessageID, r.Emoji.Name)
		b.logErr(ctx, EventReactionAdd, err)
		return
	}

	reaction := activity.Reaction{UserID: r.UserID, MessageID: r.MessageID}
	if author, err := b.fetchAuthor(ctx, r.ChannelID, r.MessageID); err == nil && author != nil {
		reaction.AuthorID = author.ID
		reaction.AuthorBot = author.Bot
	} else if err != nil {
		logger.FromContext(ctx).Debug(LogMsgAuthorLookup, "message_id", r.MessageID, "error", err)
	}
	b.logErr(ctx, EventReactionAdd, b.activity.OnReactionAdd(ctx, reaction))
}

func (b *Bot) reactionRemove(_ *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if !b.inGuild(r.GuildID) || !b.verification.IsVerificationMessage(r.MessageID) {
		return
	}
	ctx := b.eventContext(EventReactionRemove)
	_, err := b.verification.OnReactionRemove(ctx, r.UserID, r.MessageID, r.Emoji.Name)
	b.logErr(ctx, EventReactionRemove, err)
}

func (b *Bot) voiceStateUpdate(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.VoiceState == nil || !b.inGuild(v.GuildID) {
		return
	}
	ctx := b.eventContext(EventVoiceState)

	change := activity.VoiceChange{
		UserID:    v.UserID,
		Bot:       memberIsBot(v.Member),
		ChannelID: v.ChannelID,
	}
	if v.BeforeUpdate != nil {
		change.BeforeID = v.BeforeUpdate.ChannelID
	}
	b.logErr(ctx, EventVoiceState, b.activity.OnVoiceChange(ctx, change))
}

func (b *Bot) memberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil || !b.inGuild(m.GuildID) {
		return
	}
	ctx := b.eventContext(EventMemberAdd)
	b.verification.RefreshOnMembership(ctx)
	b.logErr(ctx, EventMemberAdd, b.activity.OnMemberJoin(ctx, m.User.ID, m.User.Bot))
}

func (b *Bot) memberRemove(_ *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.Member == nil || !b.inGuild(m.GuildID) {
		return
	}
	ctx := b.eventContext(EventMemberRemove)
	b.verification.RefreshOnMembership(ctx)
}

// sessionAuthor reads the message from the state cache, falling back to the API
func (b *Bot) sessionAuthor(ctx context.Context, channelID, messageID string) (*discordgo.User, error) {
	if msg, err := b.Session.State.Message(channelID, messageID); err == nil {
		return msg.Author, nil
	}
	msg, err := b.Session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return msg.Author, nil
}

func memberIsBot(m *discordgo.Member) bool {
	return m != nil && m.User != nil && m.User.Bot
}
