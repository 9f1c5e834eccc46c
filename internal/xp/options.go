package xp

import "time"

type awardOptions struct {
	now          time.Time
	countMessage bool
	voiceTime    time.Duration
	dailyClaim   bool
}

// AwardOption folds an extra change into the award's mutation
type AwardOption func(*awardOptions)

// At stamps the award with now instead of the wall clock
func At(now time.Time) AwardOption {
	return func(o *awardOptions) { o.now = now }
}

// CountMessage increments the message counter
func CountMessage() AwardOption {
	return func(o *awardOptions) { o.countMessage = true }
}

// WithVoiceTime adds a closed session's duration to the voice accumulator
func WithVoiceTime(d time.Duration) AwardOption {
	return func(o *awardOptions) { o.voiceTime = d }
}

// ClaimDaily makes the award conditional on the daily bonus being due and
// stamps the claim. A second claim inside the interval fails with
// domain.ErrDailyNotDue and changes nothing.
func ClaimDaily() AwardOption {
	return func(o *awardOptions) { o.dailyClaim = true }
}
