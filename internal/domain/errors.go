package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgInvalidAward     = "invalid XP award"
	ErrMsgNotFound         = "resource not found"
	ErrMsgMemberNotFound   = "member not found"
	ErrMsgChannelNotFound  = "channel not found"
	ErrMsgRoleNotFound     = "role not found"
	ErrMsgPresenceUnknown  = "presence unknown"
	ErrMsgSnapshotCorrupt  = "snapshot is corrupt"
	ErrMsgStoreClosed      = "progress store is closed"
	ErrMsgNoVerifyMessage  = "verification message not posted"
	ErrMsgInvalidTierEntry = "invalid reward tier entry"
	ErrMsgDailyNotDue      = "daily bonus not due yet"
)

// Common domain errors.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidAward is returned when a non-positive XP amount is requested.
	// It is a caller error and never shown to users.
	ErrInvalidAward = errors.New(ErrMsgInvalidAward)

	// ErrNotFound marks a platform resource (guild, channel, role, member,
	// message) that could not be resolved at use time. Handlers treat it as a
	// soft no-op.
	ErrNotFound = errors.New(ErrMsgNotFound)

	ErrMemberNotFound  = errors.New(ErrMsgMemberNotFound)
	ErrChannelNotFound = errors.New(ErrMsgChannelNotFound)
	ErrRoleNotFound    = errors.New(ErrMsgRoleNotFound)

	// ErrPresenceUnknown is returned when a member's presence can't be resolved
	ErrPresenceUnknown = errors.New(ErrMsgPresenceUnknown)

	ErrSnapshotCorrupt  = errors.New(ErrMsgSnapshotCorrupt)
	ErrStoreClosed      = errors.New(ErrMsgStoreClosed)
	ErrNoVerifyMessage  = errors.New(ErrMsgNoVerifyMessage)
	ErrInvalidTierEntry = errors.New(ErrMsgInvalidTierEntry)

	// ErrDailyNotDue is returned when a daily claim races an earlier claim
	ErrDailyNotDue = errors.New(ErrMsgDailyNotDue)
)

// IsMissing reports whether err denotes a platform resource that could not be
// resolved. Such failures are expected and handled as no-ops.
func IsMissing(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrChannelNotFound) ||
		errors.Is(err, ErrRoleNotFound)
}
