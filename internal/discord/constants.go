package discord

// Log messages
const (
	LogMsgBotReady          = "Bot is ready"
	LogMsgBotRunning        = "Discord bot is now running"
	LogMsgBotStopped        = "Discord bot stopped"
	LogMsgCommandFailed     = "Command failed"
	LogMsgHandlerFailed     = "Event handler failed"
	LogMsgAuthorLookup      = "Could not resolve message author"
	LogMsgMemberLookup      = "Could not resolve member"
	LogMsgVerifyPostFailed  = "Failed to post verification message"
	LogMsgVerifyRefreshFail = "Failed to refresh verification message"
	LogMsgAnnounceSkipped   = "Level-up member not found, skipping announcement"
	LogMsgLevelUpAnnounced  = "Level-up announced"
	LogMsgMemberRequestFail = "Failed to request guild members"
)

// Gateway event labels
const (
	EventMessageCreate   = "message_create"
	EventReactionAdd     = "reaction_add"
	EventReactionRemove  = "reaction_remove"
	EventVoiceState      = "voice_state_update"
	EventMemberAdd       = "member_add"
	EventMemberRemove    = "member_remove"
	EventReady           = "ready"
	EventIgnoredOutsider = "ignored"
)

// Command names
const (
	CommandProfile     = "profile"
	CommandLevel       = "level"
	CommandLeaderboard = "leaderboard"
	CommandTop         = "top"
)
