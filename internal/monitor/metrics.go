package monitor

import "github.com/prometheus/client_golang/prometheus"

var (
	passengerEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "network_monitor",
			Subsystem: "feed",
			Name:      "passenger_events_total",
			Help:      "Passenger events applied to the network",
		},
		[]string{"type"},
	)

	rejectedEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "network_monitor",
			Subsystem: "feed",
			Name:      "rejected_events_total",
			Help:      "Passenger events that could not be applied",
		},
		[]string{"reason"},
	)

	connectAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "network_monitor",
			Subsystem: "feed",
			Name:      "connect_attempts_total",
			Help:      "STOMP connection attempts",
		},
	)

	connectedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "network_monitor",
			Subsystem: "feed",
			Name:      "connected",
			Help:      "1 while subscribed to the passenger feed",
		},
	)
)

func init() {
	prometheus.MustRegister(passengerEventsTotal, rejectedEventsTotal, connectAttemptsTotal, connectedGauge)
}
