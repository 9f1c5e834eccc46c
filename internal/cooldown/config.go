package cooldown

import (
	"time"

	"github.com/osse101/LevelBot_Go/internal/domain"
)

// Config holds cooldown tracker configuration
type Config struct {
	// DevMode bypasses all cooldowns when true
	DevMode bool

	// Window is the minimum gap between two awards for the same user.
	// Zero falls back to domain.MessageCooldown.
	Window time.Duration
}

// DefaultConfig returns the reference message cooldown configuration
func DefaultConfig() Config {
	return Config{
		Window: domain.MessageCooldown,
	}
}

// GetWindow returns the effective cooldown window
func (c *Config) GetWindow() time.Duration {
	if c.Window <= 0 {
		return domain.MessageCooldown
	}
	return c.Window
}
