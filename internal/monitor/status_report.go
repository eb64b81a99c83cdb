package monitor

import (
	"time"

	"network-monitor/pkg/types"
)

// Snapshot returns a read-only view of the monitor state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{State: m.state, SubscriptionID: m.subscriptionID, Err: m.err, LastEvent: m.lastEvent}
}

// Status builds a detailed status response for /status.
func (m *Monitor) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	resp := types.StatusResponse{
		State:           string(m.state),
		Connected:       m.state == StateReady,
		SubscriptionID:  m.subscriptionID,
		Endpoint:        m.Endpoint(),
		EventsApplied:   m.eventsApplied,
		EventsRejected:  m.eventsRejected,
		ConnectAttempts: m.connectAttempts,
		LastError:       m.err,
		UptimeSeconds:   int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:  now.Unix(),
	}
	if !m.lastEvent.IsZero() {
		resp.LastEventUnix = m.lastEvent.Unix()
	}
	if m.nw != nil {
		resp.Stations, resp.Lines = m.nw.Size()
	}
	return resp
}
