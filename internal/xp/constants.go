package xp

// Log messages
const (
	LogMsgAwarded         = "Awarded XP"
	LogMsgLeveledUp       = "User leveled up"
	LogMsgInvalidAward    = "Rejected invalid XP award"
	LogMsgVoiceTimeAdded  = "Voice time credited without XP"
	LogMsgEffectFailed    = "Side effect failed"
	LogMsgEffectsExecuted = "Side effects executed"
)
