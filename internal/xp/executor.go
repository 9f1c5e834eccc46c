package xp

import (
	"context"

	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/logger"
	"github.com/osse101/LevelBot_Go/internal/metrics"
)

// Executor dispatches award side effects to their subscribers
type Executor struct {
	bus event.Bus
}

// NewExecutor creates an executor publishing on bus
func NewExecutor(bus event.Bus) *Executor {
	return &Executor{bus: bus}
}

// Execute publishes every effect in order. Failures are logged and counted,
// never returned.
func (e *Executor) Execute(ctx context.Context, effects []event.Event) {
	if len(effects) == 0 {
		return
	}
	log := logger.FromContext(ctx)

	failed := 0
	for _, evt := range effects {
		if err := e.bus.Publish(ctx, evt); err != nil {
			failed++
			metrics.EffectFailures.WithLabelValues(string(evt.Type)).Inc()
			metrics.EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			log.Warn(LogMsgEffectFailed, "type", evt.Type, "error", err)
		}
	}
	log.Debug(LogMsgEffectsExecuted, "count", len(effects), "failed", failed)
}

// Run awards and executes the resulting effects in one call
func Run(ctx context.Context, svc Service, exec *Executor, userID string, amount int64, source string, opts ...AwardOption) (*AwardResult, error) {
	res, err := svc.Award(ctx, userID, amount, source, opts...)
	if err != nil {
		return nil, err
	}
	exec.Execute(ctx, res.Effects)
	return res, nil
}
