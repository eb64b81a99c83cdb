package monitor

import (
	"context"
	"errors"
	"time"

	"network-monitor/internal/network"
	"network-monitor/internal/stomp"
)

var errConnectionClosed = errors.New("connection closed by server")

// Run keeps a subscription to the passenger feed alive until ctx is done. After a
// failed or lost session it waits ReconnectDelay and tries again. Init must have
// succeeded first.
func (m *Monitor) Run(ctx context.Context) error {
	if m.loaded() == nil {
		return ErrNotReady
	}
	for {
		err := m.session(ctx)
		if ctx.Err() != nil {
			m.setState(StateDisconnected, "")
			return nil
		}
		msg := ""
		if err != nil {
			msg = err.Error()
		}
		m.setState(StateDisconnected, msg)
		m.log.Warn().Err(err).Dur("retry_in", m.cfg.ReconnectDelay).Msg("feed session ended")
		m.publisher.Publish(Event{Name: EventDisconnected, Fields: map[string]any{"error": msg}})

		t := time.NewTimer(m.cfg.ReconnectDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// session runs one connect-subscribe-consume cycle and returns why it ended.
func (m *Monitor) session(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateConnecting
	m.connectAttempts++
	m.mu.Unlock()
	connectAttemptsTotal.Inc()

	t, err := m.dial()
	if err != nil {
		return err
	}
	lost := make(chan error, 1)
	client := stomp.NewClient(t, m.cfg.Host,
		stomp.WithLogger(m.base),
		stomp.WithContentType("application/json"),
		stomp.WithDisconnectHandler(func(err error) {
			select {
			case lost <- err:
			default:
			}
		}),
	)

	if err := client.Connect(ctx, m.cfg.Username, m.cfg.Password); err != nil {
		m.closeClient(client)
		return err
	}
	m.publisher.Publish(Event{Name: EventConnected, Fields: map[string]any{"endpoint": m.Endpoint()}})

	id, err := client.Subscribe(ctx, m.cfg.Destination, m.handleMessage)
	if err != nil {
		m.closeClient(client)
		return err
	}
	m.mu.Lock()
	m.state = StateReady
	m.subscriptionID = id
	m.err = ""
	m.mu.Unlock()
	connectedGauge.Set(1)
	defer connectedGauge.Set(0)
	m.log.Info().Str("subscription", id).Str("destination", m.cfg.Destination).Msg("subscribed")
	m.publisher.Publish(Event{Name: EventSubscribed, Fields: map[string]any{
		"subscription": id, "destination": m.cfg.Destination,
	}})

	select {
	case <-ctx.Done():
		m.closeClient(client)
		return ctx.Err()
	case err := <-lost:
		if err == nil {
			err = errConnectionClosed
		}
		return err
	}
}

func (m *Monitor) closeClient(c *stomp.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultCloseTimeout)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		m.log.Debug().Err(err).Msg("close")
	}
}

func (m *Monitor) setState(s State, errMsg string) {
	m.mu.Lock()
	m.state = s
	m.subscriptionID = ""
	if errMsg != "" {
		m.err = errMsg
	}
	m.mu.Unlock()
}

// handleMessage applies one feed message to the network.
func (m *Monitor) handleMessage(msg stomp.Message, err error) {
	if err != nil {
		reason := "client_error"
		switch stomp.ErrorCode(err) {
		case stomp.CodeUnexpectedSubscriptionMismatch:
			reason = "subscription_mismatch"
		case stomp.CodeUnexpectedContentType:
			reason = "content_type"
		}
		m.reject(reason, "", err)
		return
	}
	ev, err := network.ParsePassengerEvent([]byte(msg.Body))
	if err != nil {
		m.reject("malformed", "", err)
		return
	}
	n := m.loaded()
	if err := n.RecordPassengerEvent(ev); err != nil {
		reason := "invalid"
		if network.IsStationNotFound(err) {
			reason = "unknown_station"
		}
		m.reject(reason, ev.StationID, err)
		return
	}
	passengerEventsTotal.WithLabelValues(string(ev.Type)).Inc()

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	m.mu.Lock()
	m.eventsApplied++
	m.lastEvent = ts
	m.mu.Unlock()
	m.log.Debug().Str("station", ev.StationID).Str("type", string(ev.Type)).Msg("passenger event")
}

func (m *Monitor) reject(reason, station string, err error) {
	rejectedEventsTotal.WithLabelValues(reason).Inc()
	m.mu.Lock()
	m.eventsRejected++
	m.mu.Unlock()
	m.log.Warn().Err(err).Str("reason", reason).Str("station", station).Msg("event rejected")
	m.publisher.Publish(Event{Name: EventEventRejected, Fields: map[string]any{
		"reason": reason, "station": station, "error": err.Error(),
	}})
}
