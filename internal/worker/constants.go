package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	// LogMsgWorkerJobFailed is logged when a worker fails to process a job
	LogMsgWorkerJobFailed = "Worker job failed"

	// LogMsgWorkerJobPanicked is logged when a job panics
	LogMsgWorkerJobPanicked = "Worker job panicked"

	// LogMsgQueueFull is logged when a job is dropped because the queue is full
	LogMsgQueueFull = "Worker queue full, job dropped"
)

// ============================================================================
// Pool Defaults
// ============================================================================

const (
	DefaultWorkerCount = 2
	DefaultQueueSize   = 16
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
