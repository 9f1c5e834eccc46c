package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Metadata keys
const (
	MetadataKeySource = "source"
)

// Log message constants
const (
	// LogMsgHandlerErrorFormat formats aggregated handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"

	// LogMsgHandlerPanicked is logged when a subscriber panics
	LogMsgHandlerPanicked = "Event handler panicked"
)
