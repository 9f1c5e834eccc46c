package bootstrap

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	ServiceName = "levelbot"

	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	LogFileNamePattern = "session_%s.log"
	LogFileExtension   = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new session's file
	LogFileRetentionCount = 9
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingLevelBot    = "Starting LevelBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStorageSelected = "Progress storage selected"
	LogMsgMigrationsDone  = "Database migrations applied"

	ErrMsgUnknownBackend  = "unknown storage backend"
	ErrMsgFailedConnectDB = "failed to connect to database"
	ErrMsgFailedMigrate   = "failed to run migrations"
	ErrMsgFailedConnRedis = "failed to connect to redis"
	ErrMsgFailedLoadStore = "failed to load progress"
	ErrMsgFailedCreateBot = "failed to create discord bot"
	ErrMsgFailedStartBot  = "failed to start discord bot"
	ErrMsgDiscordNotReady = "discord gateway not connected"
	ReadinessCheckStore   = "storage"
	ReadinessCheckDiscord = "discord"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgRewardGranterRegistered    = "Reward granter registered"
	LogMsgAnnouncerRegistered        = "Level-up announcer registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
)

// =============================================================================
// Runtime
// =============================================================================

const (
	LogMsgDailySweepScheduled = "Daily bonus sweep scheduled"
	LogMsgMetricsServerFailed = "Metrics server failed"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown         = "Shutting down..."
	LogMsgVoiceSessionsDrained = "Open voice sessions credited"
	LogMsgShutdownComplete     = "Shutdown complete"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgBotStopFailed        = "Discord bot stop failed"
	LogMsgStoreCloseFailed     = "Progress store close failed"
	LogMsgStorageCloseFailed   = "Storage connection close failed"
)
