// Package cooldown throttles message XP per user.
//
// Entries live in an expirable LRU whose TTL equals the cooldown window, so a
// user's entry disappears on its own once the window has passed. A missing
// entry is equivalent to "never awarded".
package cooldown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/LevelBot_Go/internal/logger"
)

// Tracker gates awards per user by the time of their last award
type Tracker struct {
	config Config

	// mu makes check-then-record atomic for concurrent events of one user
	mu      sync.Mutex
	entries *expirable.LRU[string, time.Time]
}

// NewTracker creates a cooldown tracker
func NewTracker(config Config) *Tracker {
	onEvict := func(userID string, _ time.Time) {
		logger.FromContext(context.Background()).Debug(LogMsgCooldownExpired, "user_id", userID)
	}
	return &Tracker{
		config: config,
		// size 0 disables LRU eviction: entries only leave once their window expires
		entries: expirable.NewLRU[string, time.Time](0, onEvict, config.GetWindow()),
	}
}

// IsEligible reports whether userID may receive an award at now
func (t *Tracker) IsEligible(userID string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	onCooldown, _ := t.check(userID, now)
	return !onCooldown
}

// RecordAward stores now as the user's last award time
func (t *Tracker) RecordAward(userID string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries.Add(userID, now)
}

// TryAcquire checks eligibility and records the award in one step.
// It returns ErrOnCooldown when the user is still inside the window.
func (t *Tracker) TryAcquire(ctx context.Context, userID string, now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.config.DevMode {
		logger.FromContext(ctx).Debug(LogMsgDevModeBypass, "user_id", userID)
		t.entries.Add(userID, now)
		return nil
	}

	if onCooldown, remaining := t.check(userID, now); onCooldown {
		return ErrOnCooldown{UserID: userID, Remaining: remaining}
	}
	t.entries.Add(userID, now)
	return nil
}

// Remaining returns how long userID still has to wait at now
func (t *Tracker) Remaining(userID string, now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, remaining := t.check(userID, now)
	return remaining
}

// Reset forgets userID's last award
func (t *Tracker) Reset(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries.Remove(userID)
}

// Len returns the number of users currently on cooldown or not yet evicted
func (t *Tracker) Len() int {
	return t.entries.Len()
}

// check must be called with mu held
func (t *Tracker) check(userID string, now time.Time) (bool, time.Duration) {
	if t.config.DevMode {
		return false, 0
	}
	last, ok := t.entries.Peek(userID)
	if !ok {
		return false, 0
	}
	return checkCooldownInternal(now, last, t.config.GetWindow())
}

// checkCooldownInternal compares the elapsed time since last with window.
// Reaching the window exactly ends the cooldown.
func checkCooldownInternal(now, last time.Time, window time.Duration) (bool, time.Duration) {
	elapsed := now.Sub(last)
	if elapsed >= window {
		return false, 0
	}
	return true, window - elapsed
}

// ErrOnCooldown is returned when a user is still inside the cooldown window
type ErrOnCooldown struct {
	UserID    string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	minutes := int(e.Remaining.Minutes())
	seconds := int(e.Remaining.Seconds()) % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, e.UserID, minutes, seconds)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, e.UserID, seconds)
}

// Is allows errors.Is() to work with ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}
