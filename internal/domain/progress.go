package domain

import "time"

// ProgressRecord is the persisted progress of one member.
//
// Level is derived from XP and is only ever written by the code path that
// changes XP, immediately after the change. JSON field names match the
// legacy userdata.json layout so existing snapshots load unchanged.
type ProgressRecord struct {
	XP               int64 `json:"xp"`
	Level            int   `json:"level"`
	TotalMessages    int64 `json:"totalMessages"`
	VoiceTimeMs      int64 `json:"voiceTime"`
	LastDailyBonusAt int64 `json:"lastDaily"`
	JoinedAt         int64 `json:"joinedAt"`
}

// NewProgressRecord returns the zero-state record for a member first seen at now
func NewProgressRecord(now time.Time) *ProgressRecord {
	return &ProgressRecord{JoinedAt: now.UnixMilli()}
}

// Clone returns a copy that can be handed out without holding the store lock
func (r *ProgressRecord) Clone() *ProgressRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// VoiceMinutes is the accumulated voice time in whole minutes
func (r *ProgressRecord) VoiceMinutes() int64 {
	return r.VoiceTimeMs / MillisecondsPerMinute
}

// DailyBonusDue reports whether the daily bonus interval has elapsed at now
func (r *ProgressRecord) DailyBonusDue(now time.Time) bool {
	return now.UnixMilli()-r.LastDailyBonusAt >= DailyBonusInterval.Milliseconds()
}

// UserProgress pairs a record with its owner, used for rankings
type UserProgress struct {
	UserID string
	Record ProgressRecord
}
