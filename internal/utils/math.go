package utils

import "math/rand/v2"

// RandomInt64 returns a uniform integer in [min, max]. When max < min it
// returns min.
func RandomInt64(min, max int64) int64 {
	if min >= max {
		return min
	}
	return rand.Int64N(max-min+1) + min //nolint:gosec // XP rolls, not security critical
}
