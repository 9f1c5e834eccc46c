package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/osse101/LevelBot_Go/internal/activity"
	"github.com/osse101/LevelBot_Go/internal/domain"
)

// Config holds the application configuration
type Config struct {
	// Discord
	DiscordToken     string `validate:"required"`
	GuildID          string `validate:"required"`
	WelcomeChannelID string `validate:"required"`
	LevelUpChannelID string `validate:"required"`
	VerifiedRoleID   string `validate:"required"`
	VerifyEmoji      string `validate:"required"`
	CommandPrefix    string `validate:"required"`

	// XP rules
	Activity            activity.Config
	MessageCooldown     time.Duration       `validate:"gte=0"`
	DailyBonusXP        int64               `validate:"gt=0"`
	VerificationBonusXP int64               `validate:"gt=0"`
	RewardTiers         []domain.RewardTier `validate:"dive"`
	DevMode             bool

	// Storage
	Backend           string        `validate:"oneof=file postgres redis"`
	SnapshotFile      string        `validate:"required_if=Backend file"`
	SnapshotKey       string        `validate:"required"`
	SaveRetryInterval time.Duration `validate:"gt=0"`

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"gt=0"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	RedisAddr     string `validate:"required_if=Backend redis"`
	RedisPassword string
	RedisDB       int `validate:"gte=0"`

	// Runtime
	WorkerCount     int `validate:"gt=0"`
	WorkerQueueSize int `validate:"gt=0"`
	MetricsPort     int `validate:"gte=0,lte=65535"`

	// Logging
	LogLevel    string
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string
	Version     string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:     getEnv("DISCORD_TOKEN", ""),
		GuildID:          getEnv("DISCORD_GUILD_ID", ""),
		WelcomeChannelID: getEnv("WELCOME_CHANNEL_ID", ""),
		LevelUpChannelID: getEnv("LEVELUP_CHANNEL_ID", ""),
		VerifiedRoleID:   getEnv("VERIFIED_ROLE_ID", ""),
		VerifyEmoji:      getEnv("VERIFY_EMOJI", domain.DefaultVerifyEmoji),
		CommandPrefix:    getEnv("COMMAND_PREFIX", domain.DefaultCommandPrefix),

		Activity: activity.Config{
			MessageXPMin:       getEnvAsInt64("MESSAGE_XP_MIN", domain.MessageXPMin),
			MessageXPMax:       getEnvAsInt64("MESSAGE_XP_MAX", domain.MessageXPMax),
			ReactionGivenXP:    getEnvAsInt64("REACTION_GIVEN_XP", domain.ReactionGivenXP),
			ReactionReceivedXP: getEnvAsInt64("REACTION_RECEIVED_XP", domain.ReactionReceivedXP),
			VoiceXPPerMinute:   getEnvAsInt64("VOICE_XP_PER_MINUTE", domain.VoiceXPPerMinute),
		},
		MessageCooldown:     getEnvAsDuration("MESSAGE_COOLDOWN", domain.MessageCooldown),
		DailyBonusXP:        getEnvAsInt64("DAILY_BONUS_XP", domain.DailyBonusXP),
		VerificationBonusXP: getEnvAsInt64("VERIFICATION_BONUS_XP", domain.VerificationBonusXP),
		DevMode:             getEnv("DEV_MODE", "") == "true",

		Backend:           strings.ToLower(getEnv("STORAGE_BACKEND", DefaultBackend)),
		SnapshotFile:      getEnv("SNAPSHOT_FILE", domain.DefaultSnapshotFile),
		SnapshotKey:       getEnv("SNAPSHOT_KEY", domain.DefaultSnapshotKey),
		SaveRetryInterval: getEnvAsDuration("SAVE_RETRY_INTERVAL", DefaultSaveRetryInterval),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "levelbot"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		RedisAddr:     getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		MetricsPort:     getEnvAsInt("METRICS_PORT", DefaultMetricsPort),

		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", "dev"),
	}

	tiers, err := ParseRewardTiers(getEnv("REWARD_TIERS", ""), cfg.VerifiedRoleID)
	if err != nil {
		return nil, err
	}
	cfg.RewardTiers = tiers

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ParseRewardTiers parses "level:roleID:name" entries separated by commas.
// roleID may be empty for display-only milestones. An empty table yields the
// default milestones with the verified role at level 1.
func ParseRewardTiers(raw, verifiedRoleID string) ([]domain.RewardTier, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.DefaultRewardTiers(verifiedRoleID), nil
	}

	var tiers []domain.RewardTier
	for _, entry := range strings.Split(raw, TierEntrySeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, TierFieldSeparator, 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTierEntry, entry)
		}
		lvl, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || lvl < 1 {
			return nil, fmt.Errorf("%w: %q: level must be a positive integer", domain.ErrInvalidTierEntry, entry)
		}
		name := strings.TrimSpace(parts[2])
		if name == "" {
			return nil, fmt.Errorf("%w: %q: name is required", domain.ErrInvalidTierEntry, entry)
		}
		tiers = append(tiers, domain.RewardTier{Level: lvl, RoleID: strings.TrimSpace(parts[1]), Name: name})
	}
	return tiers, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns the
// default when unset or unparsable
func getEnvAsInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if v, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return v
	}
	return defaultValue
}

// getEnvAsDuration retrieves a duration environment variable ("30s", "5m")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
