package monitor

// Event names published by the monitor.
const (
	EventLayoutLoaded  = "layout_loaded"
	EventConnected     = "connected"
	EventSubscribed    = "subscribed"
	EventDisconnected  = "disconnected"
	EventEventRejected = "event_rejected"
)

// Event represents a monitor lifecycle event: a name plus optional fields.
type Event struct {
	Name   string
	Fields map[string]any
}

// EventPublisher receives events from the monitor. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
