package bootstrap

import (
	"context"
	"log/slog"
)

type stopper interface {
	Stop()
}

type errStopper interface {
	Stop() error
}

type voiceDrainer interface {
	DrainVoice(ctx context.Context) int
}

type storeCloser interface {
	Close(ctx context.Context) error
}

type serverStopper interface {
	Stop(ctx context.Context) error
}

type connCloser interface {
	Close() error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Bot       errStopper
	Scheduler stopper
	Pool      stopper
	Voice     voiceDrainer
	Store     storeCloser
	Server    serverStopper
	Storage   connCloser
}

// GracefulShutdown stops the components in dependency order:
// 1. Discord gateway (no new events)
// 2. Scheduler and worker pool (no sweep in flight)
// 3. Open voice sessions are credited
// 4. Progress store flushes its final snapshot
// 5. Health server and storage connection
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDown)

	if c.Bot != nil {
		if err := c.Bot.Stop(); err != nil {
			slog.Error(LogMsgBotStopFailed, "error", err)
		}
	}
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}
	if c.Voice != nil {
		n := c.Voice.DrainVoice(ctx)
		slog.Info(LogMsgVoiceSessionsDrained, "sessions", n)
	}
	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}
	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil {
			slog.Error(LogMsgStorageCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgShutdownComplete)
}
