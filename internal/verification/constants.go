package verification

// Log messages
const (
	LogMsgMessagePosted     = "Verification message posted"
	LogMsgReactionAddFailed = "Failed to add verification reaction"
	LogMsgCountsRefreshed   = "Verification counts refreshed"
	LogMsgRefreshFailed     = "Failed to refresh verification counts"
	LogMsgMemberVerified    = "Member verified"
	LogMsgMemberUnverified  = "Member verification removed"
	LogMsgMemberMissing     = "Member not found, skipping verification change"
	LogMsgBonusFailed       = "Failed to award verification bonus"
)
