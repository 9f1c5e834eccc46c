package domain

import "time"

// XP sources recorded with every award. They label metrics and logs and let
// the pipeline fold source-specific counters into the same mutation.
const (
	SourceMessage          = "message"
	SourceReactionGiven    = "reaction_given"
	SourceReactionReceived = "reaction_received"
	SourceVoice            = "voice"
	SourceDaily            = "daily"
	SourceVerification     = "verification"
)

// Timing constants of the reference configuration
const (
	// MessageCooldown is the minimum gap between two message-XP awards for one user
	MessageCooldown = 60 * time.Second

	// VoiceMinute is the unit voice sessions are converted to XP in
	VoiceMinute = time.Minute

	// DailyBonusInterval is how long a user waits between two daily bonuses
	DailyBonusInterval = 24 * time.Hour

	// DailySweepInterval is how often the daily bonus sweep runs
	DailySweepInterval = time.Minute
)

// XP amounts of the reference configuration
const (
	MessageXPMin        = 15
	MessageXPMax        = 25
	ReactionGivenXP     = 5
	ReactionReceivedXP  = 3
	VoiceXPPerMinute    = 10
	DailyBonusXP        = 100
	VerificationBonusXP = 100
)

// Presentation and storage defaults
const (
	LeaderboardSize      = 10
	DefaultCommandPrefix = "!"
	DefaultVerifyEmoji   = "✅"
	DefaultSnapshotFile  = "userdata.json"
	DefaultSnapshotKey   = "userdata"

	MillisecondsPerMinute = int64(time.Minute / time.Millisecond)
)
