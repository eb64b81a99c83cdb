package monitor

import "time"

// State represents the lifecycle state of the monitor.
type State string

const (
	StateLoading      State = "loading"
	StateConnecting   State = "connecting"
	StateReady        State = "ready"
	StateDisconnected State = "disconnected"
	StateError        State = "error"
)

// Snapshot is a read-only projection of the monitor state.
type Snapshot struct {
	State          State
	SubscriptionID string
	Err            string
	LastEvent      time.Time
}
