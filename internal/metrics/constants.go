package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Engine metric names
const (
	MetricNameXPAwarded          = "xp_awarded_total"
	MetricNameAwards             = "xp_awards_total"
	MetricNameAwardsSkipped      = "xp_awards_skipped_total"
	MetricNameLevelUps           = "level_ups_total"
	MetricNameRoleGrants         = "role_grants_total"
	MetricNameEffectFailures     = "effect_failures_total"
	MetricNamePersistenceWrites  = "persistence_writes_total"
	MetricNamePersistenceSeconds = "persistence_write_duration_seconds"
	MetricNameVoiceSessionsOpen  = "voice_sessions_open"
	MetricNameDailyBonuses       = "daily_bonuses_total"
	MetricNameVerifications      = "verifications_total"
	MetricNameTrackedUsers       = "tracked_users"
)

// Gateway metric names
const (
	MetricNameGatewayEvents = "gateway_events_total"
	MetricNameCommands      = "commands_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Engine metric help text
const (
	HelpTextXPAwarded          = "Total XP awarded, by source"
	HelpTextAwards             = "Total number of successful XP awards, by source"
	HelpTextAwardsSkipped      = "Total number of skipped XP awards, by reason"
	HelpTextLevelUps           = "Total number of level-ups"
	HelpTextRoleGrants         = "Total number of role reward grant attempts, by result"
	HelpTextEffectFailures     = "Total number of failed side effects, by effect"
	HelpTextPersistenceWrites  = "Total number of snapshot writes, by backend and result"
	HelpTextPersistenceSeconds = "Snapshot write latency in seconds"
	HelpTextVoiceSessionsOpen  = "Current number of open voice sessions"
	HelpTextDailyBonuses       = "Total number of daily bonuses granted"
	HelpTextVerifications      = "Total number of verification transitions, by action"
	HelpTextTrackedUsers       = "Current number of users with a progress record"
)

// Gateway metric help text
const (
	HelpTextGatewayEvents = "Total number of gateway events received, by type"
	HelpTextCommands      = "Total number of commands handled, by command and result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSource  = "source"
	LabelReason  = "reason"
	LabelResult  = "result"
	LabelEffect  = "effect"
	LabelBackend = "backend"
	LabelAction  = "action"
	LabelCommand = "command"
)

// Label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"

	ReasonCooldown = "cooldown"
	ReasonInvalid  = "invalid"
	ReasonNotDue   = "not_due"

	ActionVerified   = "verified"
	ActionUnverified = "unverified"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PersistenceLatencyBuckets covers local file writes up to slow remote stores
var PersistenceLatencyBuckets = []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
