// Package voice tracks open voice sessions per user.
package voice

import (
	"sync"
	"time"
)

// Session is an open voice session
type Session struct {
	StartedAt time.Time
	ChannelID string
}

// Closed is a session that has been ended
type Closed struct {
	UserID   string
	Session  Session
	Duration time.Duration
}

// Tracker maps user id to the start of their current voice session
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]Session)}
}

// OnJoin opens a session for userID. A second join without a leave replaces
// the earlier start time.
func (t *Tracker) OnJoin(userID, channelID string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[userID] = Session{StartedAt: now, ChannelID: channelID}
}

// OnMove records a channel switch without touching the start time.
// It returns false when the user had no open session.
func (t *Tracker) OnMove(userID, channelID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	if !ok {
		return false
	}
	s.ChannelID = channelID
	t.sessions[userID] = s
	return true
}

// OnLeave closes userID's session and returns its duration.
// ok is false when no session was open.
func (t *Tracker) OnLeave(userID string, now time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	if !ok {
		return 0, false
	}
	delete(t.sessions, userID)
	return clampDuration(now.Sub(s.StartedAt)), true
}

// Get returns the open session for userID
func (t *Tracker) Get(userID string) (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[userID]
	return s, ok
}

// Open returns the number of open sessions
func (t *Tracker) Open() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Drain closes every open session at now
func (t *Tracker) Drain(now time.Time) []Closed {
	t.mu.Lock()
	defer t.mu.Unlock()

	closed := make([]Closed, 0, len(t.sessions))
	for userID, s := range t.sessions {
		closed = append(closed, Closed{
			UserID:   userID,
			Session:  s,
			Duration: clampDuration(now.Sub(s.StartedAt)),
		})
	}
	t.sessions = make(map[string]Session)
	return closed
}

// clock skew between events must not produce negative time
func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// WholeMinutes floors d to complete minutes
func WholeMinutes(d time.Duration) int64 {
	return int64(d / time.Minute)
}
