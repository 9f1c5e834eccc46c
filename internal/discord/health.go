package discord

import (
	"sync/atomic"
	"time"
)

// HealthStatus represents the bot's health status
type HealthStatus struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	Connected        bool      `json:"connected"`
	CommandsReceived int64     `json:"commands_received"`
	LastCommandTime  time.Time `json:"last_command_time,omitempty"`
}

const (
	HealthStatusHealthy  = "healthy"
	HealthStatusDegraded = "degraded"
)

var (
	startTime       = time.Now()
	commandCounter  atomic.Int64
	lastCommandTime atomic.Int64
)

// RecordCommand increments the command counter
func RecordCommand() {
	commandCounter.Add(1)
	lastCommandTime.Store(time.Now().UnixNano())
}

// Connected reports whether the gateway session is up
func (b *Bot) Connected() bool {
	return b.Session != nil && b.Session.DataReady
}

// Health returns the bot's health status
func (b *Bot) Health() HealthStatus {
	connected := b.Connected()
	status := HealthStatusHealthy
	if !connected {
		status = HealthStatusDegraded
	}

	h := HealthStatus{
		Status:           status,
		Uptime:           time.Since(startTime).Round(time.Second).String(),
		Connected:        connected,
		CommandsReceived: commandCounter.Load(),
	}
	if ns := lastCommandTime.Load(); ns > 0 {
		h.LastCommandTime = time.Unix(0, ns)
	}
	return h
}
