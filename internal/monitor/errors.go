package monitor

// notReadyError signals that the network has not been loaded yet (503 at the HTTP layer).
type notReadyError struct{}

func (notReadyError) Error() string { return "network not loaded" }

// ErrNotReady is returned by queries issued before Init succeeded.
var ErrNotReady error = notReadyError{}

// IsNotReady reports whether err indicates the network is not loaded.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}
