// Package verification drives the Unverified/Verified state of members from
// reactions on the verification message.
package verification

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/LevelBot_Go/internal/concurrency"
	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/embed"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/platform"
	"github.com/osse101/LevelBot_Go/internal/xp"
)

// Config names the platform resources verification works with
type Config struct {
	ChannelID string
	RoleID    string
	Emoji     string
	Bonus     int64
}

// Service is the verification state machine. The platform is the source of
// truth for role membership; nothing about verification is persisted.
type Service struct {
	cfg      Config
	gateway  platform.Gateway
	xp       xp.Service
	exec     *xp.Executor
	renderer *embed.Renderer
	locks    *concurrency.LockManager

	mu        sync.RWMutex
	messageID string
}

// NewService creates the verification state machine
func NewService(cfg Config, gateway platform.Gateway, xpSvc xp.Service, exec *xp.Executor, renderer *embed.Renderer) *Service {
	return &Service{
		cfg:      cfg,
		gateway:  gateway,
		xp:       xpSvc,
		exec:     exec,
		renderer: renderer,
		locks:    concurrency.NewLockManager(),
	}
}

// MessageID returns the tracked verification message, empty until posted
func (s *Service) MessageID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.messageID
}

// IsVerificationMessage reports whether messageID is the tracked message
func (s *Service) IsVerificationMessage(messageID string) bool {
	id := s.MessageID()
	return id != "" && id == messageID
}

// Post sends a fresh verification message with the current counts, seeds the
// verify reaction and starts tracking the new message.
func (s *Service) Post(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	total, verified, err := s.gateway.MemberCounts(ctx, s.cfg.RoleID)
	if err != nil {
		return "", fmt.Errorf("failed to count members: %w", err)
	}

	id, err := s.gateway.SendEmbed(ctx, s.cfg.ChannelID, s.renderer.Verification(total, verified))
	if err != nil {
		return "", fmt.Errorf("failed to post verification message: %w", err)
	}

	s.mu.Lock()
	s.messageID = id
	s.mu.Unlock()

	if err := s.gateway.AddReaction(ctx, s.cfg.ChannelID, id, s.cfg.Emoji); err != nil {
		log.Warn(LogMsgReactionAddFailed, "message_id", id, "error", err)
	}

	log.Info(LogMsgMessagePosted, "channel_id", s.cfg.ChannelID, "message_id", id, "total", total, "verified", verified)
	return id, nil
}

// RefreshCounts rewrites the verification message with current counts
func (s *Service) RefreshCounts(ctx context.Context) error {
	id := s.MessageID()
	if id == "" {
		return domain.ErrNoVerifyMessage
	}

	total, verified, err := s.gateway.MemberCounts(ctx, s.cfg.RoleID)
	if err != nil {
		return fmt.Errorf("failed to count members: %w", err)
	}
	if err := s.gateway.EditEmbed(ctx, s.cfg.ChannelID, id, s.renderer.Verification(total, verified)); err != nil {
		return fmt.Errorf("failed to edit verification message: %w", err)
	}

	logger.FromContext(ctx).Debug(LogMsgCountsRefreshed, "total", total, "verified", verified)
	return nil
}

// OnReactionAdd verifies userID when they react with the verify emoji on the
// verification message. It reports whether the member was newly verified.
func (s *Service) OnReactionAdd(ctx context.Context, userID, messageID, emoji string) (bool, error) {
	if !s.matches(messageID, emoji) {
		return false, nil
	}
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(userID)
	defer unlock()

	held, err := platform.HasRole(ctx, s.gateway, userID, s.cfg.RoleID)
	if domain.IsMissing(err) {
		log.Debug(LogMsgMemberMissing, "user_id", userID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read roles: %w", err)
	}
	if held {
		return false, nil
	}

	if err := s.gateway.AddRole(ctx, userID, s.cfg.RoleID); err != nil {
		if domain.IsMissing(err) {
			log.Debug(LogMsgMemberMissing, "user_id", userID)
			return false, nil
		}
		return false, fmt.Errorf("failed to grant verified role: %w", err)
	}
	log.Info(LogMsgMemberVerified, "user_id", userID)

	if _, err := xp.Run(ctx, s.xp, s.exec, userID, s.cfg.Bonus, domain.SourceVerification); err != nil {
		log.Error(LogMsgBonusFailed, "user_id", userID, "error", err)
	}
	s.exec.Execute(ctx, []event.Event{event.NewVerificationEvent(event.MemberVerified, userID, s.cfg.RoleID)})
	s.refresh(ctx)
	return true, nil
}

// OnReactionRemove unverifies userID when they withdraw the verify reaction.
// It reports whether the role was removed.
func (s *Service) OnReactionRemove(ctx context.Context, userID, messageID, emoji string) (bool, error) {
	if !s.matches(messageID, emoji) {
		return false, nil
	}
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(userID)
	defer unlock()

	held, err := platform.HasRole(ctx, s.gateway, userID, s.cfg.RoleID)
	if domain.IsMissing(err) {
		log.Debug(LogMsgMemberMissing, "user_id", userID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read roles: %w", err)
	}
	if !held {
		return false, nil
	}

	if err := s.gateway.RemoveRole(ctx, userID, s.cfg.RoleID); err != nil {
		if domain.IsMissing(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to remove verified role: %w", err)
	}
	log.Info(LogMsgMemberUnverified, "user_id", userID)

	s.exec.Execute(ctx, []event.Event{event.NewVerificationEvent(event.MemberUnverified, userID, s.cfg.RoleID)})
	s.refresh(ctx)
	return true, nil
}

// refresh updates the counts and only logs failures
func (s *Service) refresh(ctx context.Context) {
	if err := s.RefreshCounts(ctx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRefreshFailed, "error", err)
	}
}

// RefreshOnMembership refreshes the counts after a member joined or left
func (s *Service) RefreshOnMembership(ctx context.Context) {
	if s.MessageID() == "" {
		return
	}
	s.refresh(ctx)
}

func (s *Service) matches(messageID, emoji string) bool {
	return s.IsVerificationMessage(messageID) && emoji == s.cfg.Emoji
}
