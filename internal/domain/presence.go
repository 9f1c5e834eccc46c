package domain

// Presence is a member's gateway status
type Presence string

const (
	PresenceOnline    Presence = "online"
	PresenceIdle      Presence = "idle"
	PresenceDND       Presence = "dnd"
	PresenceInvisible Presence = "invisible"
	PresenceOffline   Presence = "offline"
)

// Active reports whether the member counts as online for the daily bonus.
// Anything other than offline (including invisible, which the gateway
// reports as offline anyway) is treated as active.
func (p Presence) Active() bool {
	return p != "" && p != PresenceOffline
}

// Member is the subset of a guild member the engine displays
type Member struct {
	UserID    string
	Username  string
	AvatarURL string
	Bot       bool
}

// Mention formats the member as a Discord mention
func (m Member) Mention() string {
	return "<@" + m.UserID + ">"
}
