package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Engine Metrics
var (
	XPAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameXPAwarded,
			Help: HelpTextXPAwarded,
		},
		[]string{LabelSource},
	)

	Awards = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAwards,
			Help: HelpTextAwards,
		},
		[]string{LabelSource},
	)

	AwardsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAwardsSkipped,
			Help: HelpTextAwardsSkipped,
		},
		[]string{LabelSource, LabelReason},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	RoleGrants = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoleGrants,
			Help: HelpTextRoleGrants,
		},
		[]string{LabelResult},
	)

	EffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEffectFailures,
			Help: HelpTextEffectFailures,
		},
		[]string{LabelEffect},
	)

	PersistenceWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistenceWrites,
			Help: HelpTextPersistenceWrites,
		},
		[]string{LabelBackend, LabelResult},
	)

	PersistenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNamePersistenceSeconds,
			Help:    HelpTextPersistenceSeconds,
			Buckets: PersistenceLatencyBuckets,
		},
		[]string{LabelBackend},
	)

	VoiceSessionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameVoiceSessionsOpen,
			Help: HelpTextVoiceSessionsOpen,
		},
	)

	DailyBonuses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyBonuses,
			Help: HelpTextDailyBonuses,
		},
	)

	Verifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVerifications,
			Help: HelpTextVerifications,
		},
		[]string{LabelAction},
	)

	TrackedUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameTrackedUsers,
			Help: HelpTextTrackedUsers,
		},
	)
)

// Gateway Metrics
var (
	GatewayEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameGatewayEvents,
			Help: HelpTextGatewayEvents,
		},
		[]string{LabelType},
	)

	Commands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommands,
			Help: HelpTextCommands,
		},
		[]string{LabelCommand, LabelResult},
	)
)
