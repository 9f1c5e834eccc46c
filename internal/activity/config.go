package activity

import "github.com/osse101/LevelBot_Go/internal/domain"

// Config holds the XP amounts per activity
type Config struct {
	MessageXPMin       int64 `validate:"gt=0"`
	MessageXPMax       int64 `validate:"gtefield=MessageXPMin"`
	ReactionGivenXP    int64 `validate:"gte=0"`
	ReactionReceivedXP int64 `validate:"gte=0"`
	VoiceXPPerMinute   int64 `validate:"gte=0"`
}

// DefaultConfig returns the reference amounts
func DefaultConfig() Config {
	return Config{
		MessageXPMin:       domain.MessageXPMin,
		MessageXPMax:       domain.MessageXPMax,
		ReactionGivenXP:    domain.ReactionGivenXP,
		ReactionReceivedXP: domain.ReactionReceivedXP,
		VoiceXPPerMinute:   domain.VoiceXPPerMinute,
	}
}
