// Package activity turns platform activity into XP awards.
package activity

import (
	"context"
	"time"

	"github.com/osse101/LevelBot_Go/internal/cooldown"
	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
	"github.com/osse101/LevelBot_Go/internal/utils"
	"github.com/osse101/LevelBot_Go/internal/voice"
	"github.com/osse101/LevelBot_Go/internal/xp"
)

// VerificationMessage tells whether a message is the tracked verification
// message, which never earns reaction XP
type VerificationMessage interface {
	IsVerificationMessage(messageID string) bool
}

// Reaction is a reaction added to a guild message
type Reaction struct {
	UserID    string
	UserBot   bool
	MessageID string

	// AuthorID is empty when the message author could not be resolved
	AuthorID  string
	AuthorBot bool
}

// VoiceChange is one voice state transition
type VoiceChange struct {
	UserID    string
	Bot       bool
	ChannelID string // empty when the user left voice
	BeforeID  string // empty when the user was not in voice
}

// Service applies the XP rules for each kind of activity
type Service struct {
	cfg      Config
	xp       xp.Service
	exec     *xp.Executor
	cooldown *cooldown.Tracker
	voice    *voice.Tracker
	verify   VerificationMessage

	roll func(min, max int64) int64
	now  func() time.Time
}

// NewService creates the activity rules
func NewService(cfg Config, xpSvc xp.Service, exec *xp.Executor, cd *cooldown.Tracker, vt *voice.Tracker, verify VerificationMessage) *Service {
	return &Service{
		cfg:      cfg,
		xp:       xpSvc,
		exec:     exec,
		cooldown: cd,
		voice:    vt,
		verify:   verify,
		roll:     utils.RandomInt64,
		now:      time.Now,
	}
}

// OnMessage awards a random message amount when the author is off cooldown.
// It returns nil without error when the message earned nothing.
func (s *Service) OnMessage(ctx context.Context, userID string, bot bool) (*xp.AwardResult, error) {
	if bot {
		return nil, nil
	}
	now := s.now()
	if err := s.cooldown.TryAcquire(ctx, userID, now); err != nil {
		metrics.AwardsSkipped.WithLabelValues(domain.SourceMessage, metrics.ReasonCooldown).Inc()
		logger.FromContext(ctx).Debug(LogMsgMessageOnCooldown, "user_id", userID, "error", err)
		return nil, nil
	}

	amount := s.roll(s.cfg.MessageXPMin, s.cfg.MessageXPMax)
	return xp.Run(ctx, s.xp, s.exec, userID, amount, domain.SourceMessage, xp.At(now), xp.CountMessage())
}

// OnReactionAdd awards the reacting user and the message author. Reactions
// on the verification message and reactions by bots earn nothing; bot authors
// receive nothing.
func (s *Service) OnReactionAdd(ctx context.Context, r Reaction) error {
	if r.UserBot {
		return nil
	}
	if s.verify != nil && s.verify.IsVerificationMessage(r.MessageID) {
		return nil
	}
	now := s.now()

	if s.cfg.ReactionGivenXP > 0 {
		if _, err := xp.Run(ctx, s.xp, s.exec, r.UserID, s.cfg.ReactionGivenXP, domain.SourceReactionGiven, xp.At(now)); err != nil {
			return err
		}
	}

	if r.AuthorID == "" || r.AuthorBot || s.cfg.ReactionReceivedXP <= 0 {
		return nil
	}
	_, err := xp.Run(ctx, s.xp, s.exec, r.AuthorID, s.cfg.ReactionReceivedXP, domain.SourceReactionReceived, xp.At(now))
	return err
}

// OnVoiceChange opens, moves or closes the user's voice session
func (s *Service) OnVoiceChange(ctx context.Context, c VoiceChange) error {
	if c.Bot {
		return nil
	}
	defer func() { metrics.VoiceSessionsOpen.Set(float64(s.voice.Open())) }()
	log := logger.FromContext(ctx)
	now := s.now()

	switch {
	case c.BeforeID == "" && c.ChannelID != "":
		s.voice.OnJoin(c.UserID, c.ChannelID, now)
		if _, err := s.xp.EnsureUser(ctx, c.UserID, now); err != nil {
			return err
		}
		log.Debug(LogMsgVoiceJoined, "user_id", c.UserID, "channel_id", c.ChannelID)

	case c.BeforeID != "" && c.ChannelID == "":
		d, ok := s.voice.OnLeave(c.UserID, now)
		if !ok {
			log.Debug(LogMsgVoiceOrphanLeave, "user_id", c.UserID)
			break
		}
		log.Debug(LogMsgVoiceLeft, "user_id", c.UserID, "duration", d)
		return s.creditVoice(ctx, c.UserID, d)

	case c.BeforeID != "" && c.ChannelID != "" && c.BeforeID != c.ChannelID:
		// sessions started before a restart are picked up on the first move
		if !s.voice.OnMove(c.UserID, c.ChannelID) {
			s.voice.OnJoin(c.UserID, c.ChannelID, now)
		}
		log.Debug(LogMsgVoiceMoved, "user_id", c.UserID, "from", c.BeforeID, "to", c.ChannelID)
	}
	return nil
}

// creditVoice awards whole minutes of a closed session and always adds its
// duration to the voice accumulator
func (s *Service) creditVoice(ctx context.Context, userID string, d time.Duration) error {
	minutes := voice.WholeMinutes(d)
	if minutes < 1 || s.cfg.VoiceXPPerMinute <= 0 {
		return s.xp.AddVoiceTime(ctx, userID, d)
	}
	_, err := xp.Run(ctx, s.xp, s.exec, userID, minutes*s.cfg.VoiceXPPerMinute, domain.SourceVoice, xp.WithVoiceTime(d))
	return err
}

// DrainVoice closes and credits every open session, used on shutdown
func (s *Service) DrainVoice(ctx context.Context) int {
	log := logger.FromContext(ctx)
	closed := s.voice.Drain(s.now())
	for _, c := range closed {
		if err := s.creditVoice(ctx, c.UserID, c.Duration); err != nil {
			log.Error(LogMsgVoiceCreditFailed, "user_id", c.UserID, "error", err)
		}
	}
	metrics.VoiceSessionsOpen.Set(0)
	log.Info(LogMsgVoiceDrained, "sessions", len(closed))
	return len(closed)
}

// OnMemberJoin creates the member's record
func (s *Service) OnMemberJoin(ctx context.Context, userID string, bot bool) error {
	if bot {
		return nil
	}
	if _, err := s.xp.EnsureUser(ctx, userID, s.now()); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgMemberJoined, "user_id", userID)
	return nil
}
