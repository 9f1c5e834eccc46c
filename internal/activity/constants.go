package activity

// Log messages
const (
	LogMsgMessageOnCooldown = "Message XP suppressed by cooldown"
	LogMsgVoiceJoined       = "Voice session opened"
	LogMsgVoiceMoved        = "Voice session moved channel"
	LogMsgVoiceLeft         = "Voice session closed"
	LogMsgVoiceOrphanLeave  = "Voice leave without open session"
	LogMsgVoiceDrained      = "Open voice sessions drained"
	LogMsgVoiceCreditFailed = "Failed to credit voice session"
	LogMsgMemberJoined      = "Member record ensured"
)
