package level

// XP formula constants
const (
	// Coefficient is k in level = floor(k * sqrt(xp))
	Coefficient = 0.1

	// MaxLevel is the level reached at math.MaxInt64 XP, the highest level
	// whose threshold fits in int64
	MaxLevel = 303700049
)
