// Package daily grants the daily bonus to online members.
package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
	"github.com/osse101/LevelBot_Go/internal/platform"
	"github.com/osse101/LevelBot_Go/internal/xp"
)

// Log messages
const (
	LogMsgSweepStarted     = "Daily bonus sweep started"
	LogMsgSweepCompleted   = "Daily bonus sweep completed"
	LogMsgPresenceSkipped  = "Presence unresolvable, retrying next tick"
	LogMsgBonusGranted     = "Daily bonus granted"
	LogMsgBonusAwardFailed = "Daily bonus award failed"
)

// Records is what the sweep reads from the progress store
type Records interface {
	UserIDs() []string
	Get(userID string) (domain.ProgressRecord, bool)
}

// Result summarizes one sweep
type Result struct {
	Checked int
	Granted int
	Skipped int
}

// Sweep is the periodic daily bonus job
type Sweep struct {
	records Records
	xp      xp.Service
	exec    *xp.Executor
	gateway platform.Gateway
	amount  int64
	now     func() time.Time
}

// NewSweep creates the daily bonus job
func NewSweep(records Records, xpSvc xp.Service, exec *xp.Executor, gateway platform.Gateway, amount int64) *Sweep {
	return &Sweep{
		records: records,
		xp:      xpSvc,
		exec:    exec,
		gateway: gateway,
		amount:  amount,
		now:     time.Now,
	}
}

// Process implements worker.Job
func (s *Sweep) Process(ctx context.Context) error {
	_, err := s.Run(ctx, s.now())
	return err
}

// Run checks every user known when the sweep starts. A user is granted the
// bonus when the interval since their last claim has elapsed and their
// presence is anything but offline. The claim itself is atomic, so
// overlapping sweeps grant at most once.
func (s *Sweep) Run(ctx context.Context, now time.Time) (Result, error) {
	log := logger.FromContext(ctx)
	ids := s.records.UserIDs()
	log.Debug(LogMsgSweepStarted, "users", len(ids))

	var res Result
	var errs []error
	for _, userID := range ids {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res.Checked++

		rec, ok := s.records.Get(userID)
		if !ok || !rec.DailyBonusDue(now) {
			continue
		}

		presence, err := s.gateway.Presence(ctx, userID)
		if err != nil {
			res.Skipped++
			log.Debug(LogMsgPresenceSkipped, "user_id", userID, "error", err)
			continue
		}
		if !presence.Active() {
			continue
		}

		award, err := s.xp.Award(ctx, userID, s.amount, domain.SourceDaily, xp.ClaimDaily(), xp.At(now))
		if errors.Is(err, domain.ErrDailyNotDue) {
			metrics.AwardsSkipped.WithLabelValues(domain.SourceDaily, metrics.ReasonNotDue).Inc()
			continue
		}
		if err != nil {
			log.Error(LogMsgBonusAwardFailed, "user_id", userID, "error", err)
			errs = append(errs, fmt.Errorf("daily bonus for %s: %w", userID, err))
			continue
		}

		effects := append(award.Effects, event.NewDailyBonusEvent(userID, s.amount, now))
		s.exec.Execute(ctx, effects)
		res.Granted++
		log.Info(LogMsgBonusGranted, "user_id", userID, "amount", s.amount, "presence", presence)
	}

	log.Debug(LogMsgSweepCompleted, "checked", res.Checked, "granted", res.Granted, "skipped", res.Skipped)
	return res, errors.Join(errs...)
}
