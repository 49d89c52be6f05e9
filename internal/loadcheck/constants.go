package loadcheck

// Submission outcomes.
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultFailed   = "failed"
)

// Worker configuration constants.
const (
	workerChannelMultiplier = 2
	percentageMultiplier    = 100
)
