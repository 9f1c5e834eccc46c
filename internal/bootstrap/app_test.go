package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LevelBot_Go/internal/activity"
	"github.com/osse101/LevelBot_Go/internal/config"
	"github.com/osse101/LevelBot_Go/internal/domain"
	"github.com/osse101/LevelBot_Go/internal/server"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DiscordToken:        "test-token",
		GuildID:             "guild-1",
		WelcomeChannelID:    "welcome",
		LevelUpChannelID:    "levelup",
		VerifiedRoleID:      "role-verified",
		VerifyEmoji:         domain.DefaultVerifyEmoji,
		CommandPrefix:       domain.DefaultCommandPrefix,
		Activity:            activity.DefaultConfig(),
		MessageCooldown:     domain.MessageCooldown,
		DailyBonusXP:        domain.DailyBonusXP,
		VerificationBonusXP: domain.VerificationBonusXP,
		RewardTiers:         domain.DefaultRewardTiers("role-verified"),
		Backend:             config.BackendFile,
		SnapshotFile:        filepath.Join(t.TempDir(), "userdata.json"),
		SnapshotKey:         domain.DefaultSnapshotKey,
		SaveRetryInterval:   time.Second,
		WorkerCount:         1,
		WorkerQueueSize:     4,
		LogFormat:           "text",
		Version:             "test",
	}
}

func TestOpenStorage_File(t *testing.T) {
	cfg := testConfig(t)

	st, err := OpenStorage(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "file", st.Backend.Name())
	assert.Empty(t, st.Checks)
	assert.NoError(t, st.Close())
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Backend = "tape"

	_, err := OpenStorage(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownBackend)
}

func TestNew_LoadsLegacySnapshot(t *testing.T) {
	cfg := testConfig(t)
	legacy := `{"u1":{"xp":450,"level":9,"totalMessages":12,"voiceTime":120000,"lastDaily":0,"joinedAt":1700000000000}}`
	require.NoError(t, os.WriteFile(cfg.SnapshotFile, []byte(legacy), 0o644))

	app, err := New(context.Background(), cfg)
	require.NoError(t, err)

	rec, ok := app.Store.Get("u1")
	require.True(t, ok)
	assert.EqualValues(t, 450, rec.XP)
	assert.Equal(t, 2, rec.Level)

	assert.Contains(t, app.Bot.Registry.Handlers, "profile")
	assert.Contains(t, app.Bot.Registry.Handlers, "leaderboard")
	assert.NotNil(t, app.Bot.OnReady)
}

func TestNew_CorruptSnapshotFails(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.SnapshotFile, []byte("{not json"), 0o644))

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSnapshotCorrupt)
}

func TestNew_ReadinessReportsDisconnectedBot(t *testing.T) {
	app, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.PathReadyz, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), ReadinessCheckDiscord)

	rec = httptest.NewRecorder()
	app.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.PathStatus, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connected":false`)
}

func TestShutdown_FlushesStore(t *testing.T) {
	cfg := testConfig(t)
	app, err := New(context.Background(), cfg)
	require.NoError(t, err)

	app.Pool.Start()
	_, err = app.Store.GetOrCreate("u1", time.Now())
	require.NoError(t, err)

	GracefulShutdown(context.Background(), ShutdownComponents{
		Scheduler: app.Scheduler,
		Pool:      app.Pool,
		Voice:     app.Activity,
		Store:     app.Store,
		Storage:   app.Storage,
	})

	data, err := os.ReadFile(cfg.SnapshotFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"u1"`)
}
