package progress

import "time"

// Persistence defaults
const (
	// DefaultRetryInterval is how often a dirty store retries a failed write
	DefaultRetryInterval = 30 * time.Second

	// SnapshotFilePermission is the mode of the snapshot file
	SnapshotFilePermission = 0644

	// SnapshotDirPermission is the mode of directories created for the snapshot file
	SnapshotDirPermission = 0755

	// tempFilePattern is passed to os.CreateTemp next to the target file
	tempFilePattern = ".userdata-*.tmp"
)

// Backend names used as metric labels
const (
	BackendNameFile   = "file"
	BackendNameMemory = "memory"
)

// Log messages
const (
	LogMsgSnapshotLoaded     = "Progress snapshot loaded"
	LogMsgSnapshotMissing    = "No progress snapshot found, starting empty"
	LogMsgSnapshotSaved      = "Progress snapshot saved"
	LogMsgSnapshotSaveFailed = "Progress snapshot save failed, will retry"
	LogMsgLevelRepaired      = "Stored level disagreed with XP, recomputed"
	LogMsgPersisterStarted   = "Progress persister started"
	LogMsgPersisterStopped   = "Progress persister stopped"
	LogMsgFlushing           = "Flushing progress snapshot"
)
