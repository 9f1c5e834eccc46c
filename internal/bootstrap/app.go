// Package bootstrap wires the bot's components together and runs them.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/osse101/LevelBot_Go/internal/activity"
	"github.com/osse101/LevelBot_Go/internal/config"
	"github.com/osse101/LevelBot_Go/internal/cooldown"
	"github.com/osse101/LevelBot_Go/internal/daily"
	"github.com/osse101/LevelBot_Go/internal/discord"
	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/embed"
	"github.com/osse101/LevelBot_Go/internal/event"
	"github.com/osse101/LevelBot_Go/internal/progress"
	"github.com/osse101/LevelBot_Go/internal/reward"
	"github.com/osse101/LevelBot_Go/internal/scheduler"
	"github.com/osse101/LevelBot_Go/internal/server"
	"github.com/osse101/LevelBot_Go/internal/verification"
	"github.com/osse101/LevelBot_Go/internal/voice"
	"github.com/osse101/LevelBot_Go/internal/worker"
	"github.com/osse101/LevelBot_Go/internal/xp"
)

// ShutdownTimeout bounds the whole shutdown sequence
const ShutdownTimeout = 15 * time.Second

// App holds the running components
type App struct {
	Storage      *Storage
	Store        *progress.Store
	Bus          *event.MemoryBus
	Activity     *activity.Service
	Verification *verification.Service
	Bot          *discord.Bot
	Pool         *worker.Pool
	Scheduler    *scheduler.Scheduler
	Server       *server.Server

	sweep     *daily.Sweep
	sweepOnce sync.Once
}

// New connects storage, loads progress and builds every component. Nothing
// talks to Discord until Run.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := progress.NewStore(storage.Backend, progress.WithRetryInterval(cfg.SaveRetryInterval))
	if err := store.Load(ctx); err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadStore, err)
	}

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		_ = storage.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateBot, err)
	}
	gateway := discord.NewGateway(session, cfg.GuildID)

	bus := event.NewMemoryBus()
	slog.Info(LogMsgEventSystemInitialized)

	resolver := reward.NewResolver(cfg.RewardTiers)
	renderer := embed.NewRenderer(cfg.VerifyEmoji, embed.Rates{
		MessageMin:     cfg.Activity.MessageXPMin,
		MessageMax:     cfg.Activity.MessageXPMax,
		VoicePerMinute: cfg.Activity.VoiceXPPerMinute,
		ReactionGiven:  cfg.Activity.ReactionGivenXP,
		DailyBonus:     cfg.DailyBonusXP,
	})

	if err := RegisterEventHandlers(EventHandlerDependencies{
		EventBus:         bus,
		Resolver:         resolver,
		Gateway:          gateway,
		Renderer:         renderer,
		LevelUpChannelID: cfg.LevelUpChannelID,
	}); err != nil {
		_ = storage.Close()
		return nil, err
	}

	xpSvc := xp.NewService(store, resolver)
	exec := xp.NewExecutor(bus)

	verify := verification.NewService(verification.Config{
		ChannelID: cfg.WelcomeChannelID,
		RoleID:    cfg.VerifiedRoleID,
		Emoji:     cfg.VerifyEmoji,
		Bonus:     cfg.VerificationBonusXP,
	}, gateway, xpSvc, exec, renderer)

	cd := cooldown.NewTracker(cooldown.Config{
		DevMode: cfg.DevMode,
		Window:  cfg.MessageCooldown,
	})
	act := activity.NewService(cfg.Activity, xpSvc, exec, cd, voice.NewTracker(), verify)

	bot := discord.New(session, discord.Config{GuildID: cfg.GuildID, Prefix: cfg.CommandPrefix}, act, verify)
	discord.NewProgressCommands(xpSvc, store, gateway, renderer, domain.LeaderboardSize).Register(bot.Registry)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)

	app := &App{
		Storage:      storage,
		Store:        store,
		Bus:          bus,
		Activity:     act,
		Verification: verify,
		Bot:          bot,
		Pool:         pool,
		Scheduler:    scheduler.New(pool),
		sweep:        daily.NewSweep(store, xpSvc, exec, gateway, cfg.DailyBonusXP),
	}
	bot.OnReady = app.startDailySweep

	checks := append([]server.ReadinessCheck{{Name: ReadinessCheckDiscord, Check: app.discordReady}}, storage.Checks...)
	app.Server = server.NewServer(cfg.MetricsPort, cfg.Version, func() any { return bot.Health() }, checks...)

	return app, nil
}

// startDailySweep schedules the sweep on the first ready event and runs one
// pass right away. Reconnects only trigger the immediate pass.
func (a *App) startDailySweep(ctx context.Context) {
	a.sweepOnce.Do(func() {
		a.Scheduler.Schedule(domain.DailySweepInterval, a.sweep)
		slog.Info(LogMsgDailySweepScheduled, "interval", domain.DailySweepInterval)
	})
	a.Pool.TryEnqueue(a.sweep)
}

func (a *App) discordReady(context.Context) error {
	if !a.Bot.Connected() {
		return errors.New(ErrMsgDiscordNotReady)
	}
	return nil
}

// Run starts every component and blocks until ctx is cancelled, then shuts
// everything down.
func (a *App) Run(ctx context.Context) error {
	a.Store.Start(context.WithoutCancel(ctx))
	a.Pool.Start()

	go func() {
		if err := a.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(LogMsgMetricsServerFailed, "error", err)
		}
	}()

	var runErr error
	if err := a.Bot.Start(); err != nil {
		runErr = fmt.Errorf("%s: %w", ErrMsgFailedStartBot, err)
	} else {
		<-ctx.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	GracefulShutdown(shutdownCtx, a.ShutdownComponents())
	return runErr
}

// ShutdownComponents lists the app's components in shutdown form
func (a *App) ShutdownComponents() ShutdownComponents {
	return ShutdownComponents{
		Bot:       a.Bot,
		Scheduler: a.Scheduler,
		Pool:      a.Pool,
		Voice:     a.Activity,
		Store:     a.Store,
		Server:    a.Server,
		Storage:   a.Storage,
	}
}
