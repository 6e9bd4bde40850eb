package slack

// Export internal functions for testing

var (
	BuildPendingActionBlocks = buildPendingActionBlocks
	SeverityEmoji            = severityEmoji
	PriorityLabel            = priorityLabel
)
