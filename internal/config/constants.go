package config

import "time"

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Defaults
const (
	DefaultLogLevel          = "INFO"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultEnvironment       = "dev"
	DefaultMetricsPort       = 9090
	DefaultBackend           = BackendFile
	DefaultRedisAddr         = "localhost:6379"
	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultSaveRetryInterval = 30 * time.Second
	DefaultWorkerCount       = 2
	DefaultWorkerQueueSize   = 16
)

// Reward tier table format: level:roleID:name entries separated by commas
const (
	TierEntrySeparator = ","
	TierFieldSeparator = ":"
)
