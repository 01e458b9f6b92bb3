package fsm

// Creation workflow states.
const (
	StateCollecting = "collecting"
	StateValidating = "validating"
	StatePersisting = "persisting"
	StateSucceeded  = "succeeded"
	StateFailed     = "failed"
)

// Tick session states.
const (
	SessionRunning = "running"
	SessionDone    = "done"
)
