package metrics

import (
	"context"

	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.XPAwarded,
		event.LevelUp,
		event.DailyBonusGranted,
		event.MemberVerified,
		event.MemberUnverified,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.XPAwarded:
		payload, err := event.DecodePayload[event.XPAwardedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type, "error", err)
			return nil
		}
		XPAwarded.WithLabelValues(payload.Source).Add(float64(payload.Amount))
		Awards.WithLabelValues(payload.Source).Inc()
	case event.LevelUp:
		LevelUps.Inc()
	case event.DailyBonusGranted:
		DailyBonuses.Inc()
	case event.MemberVerified:
		Verifications.WithLabelValues(ActionVerified).Inc()
	case event.MemberUnverified:
		Verifications.WithLabelValues(ActionUnverified).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
