package embed

// Embed colors
const (
	ColorLevelUp      = 0x00ff00
	ColorVerification = 0xff9900
	ColorProfile      = 0x0099ff
	ColorLeaderboard  = 0xffd700
)

// Titles and labels
const (
	TitleLevelUp      = "🎉 Level Up!"
	TitleVerification = "🔒 Member Verification"
	TitleLeaderboard  = "🏆 Server Leaderboard"
	TitleProfileFmt   = "📊 %s's Profile"

	FieldPreviousLevel = "📈 Previous Level"
	FieldNewLevel      = "🆙 New Level"
	FieldTotalXP       = "💎 Total XP"
	FieldMilestones    = "🏅 Milestones"
	FieldLevel         = "🎯 Level"
	FieldProgress      = "📈 Progress"
	FieldMessages      = "💬 Messages"
	FieldVoiceTime     = "🎤 Voice Time"
	FieldMemberSince   = "📅 Member Since"
	FieldLevelSystem   = "🎮 Level System"

	MsgNoData          = "No data available"
	FooterVerification = "React to get full access to the server"
	MedalFirst         = "🥇"
	MedalSecond        = "🥈"
	MedalThird         = "🥉"
)
