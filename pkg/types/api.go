package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: station not found: station_999
	Error string `json:"error" example:"station not found: station_999"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Monitor state: loading, connecting, ready, disconnected or error.
	// example: ready
	State string `json:"state" example:"ready"`
	// Whether the STOMP session is established.
	// example: true
	Connected bool `json:"connected" example:"true"`
	// Active subscription id, if subscribed.
	// example: 0d6c3a5e-8f8b-4a3e-9c1e-7a3f2b1d4c5e
	SubscriptionID string `json:"subscription_id,omitempty" example:"0d6c3a5e-8f8b-4a3e-9c1e-7a3f2b1d4c5e"`
	// STOMP endpoint URL.
	// example: wss://ltnm.learncppthroughprojects.com:443/network-events
	Endpoint string `json:"endpoint" example:"wss://ltnm.learncppthroughprojects.com:443/network-events"`
	// Number of stations in the loaded network.
	// example: 412
	Stations int `json:"stations" example:"412"`
	// Number of lines in the loaded network.
	// example: 11
	Lines int `json:"lines" example:"11"`
	// Passenger events applied since start.
	// example: 10240
	EventsApplied uint64 `json:"events_applied" example:"10240"`
	// Passenger events rejected since start.
	// example: 3
	EventsRejected uint64 `json:"events_rejected" example:"3"`
	// Connection attempts since start.
	// example: 1
	ConnectAttempts uint64 `json:"connect_attempts" example:"1"`
	// Last error observed by the monitor (if any).
	LastError string `json:"last_error,omitempty"`
	// Time of the last applied event (unix seconds).
	// example: 1604215130
	LastEventUnix int64 `json:"last_event_unix,omitempty" example:"1604215130"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// StationsResponse wraps the list returned by GET /stations.
type StationsResponse struct {
	Stations []Station `json:"stations"`
}

// StationResponse is returned by GET /stations/{id}.
type StationResponse struct {
	Station
	// Net passengers currently in the station.
	// example: 17
	Passengers int64 `json:"passengers" example:"17"`
	// Ids of the routes stopping at the station, sorted.
	// example: ["route_0","route_1"]
	Routes []string `json:"routes" example:"route_0,route_1"`
}

// TravelTimeResponse is returned by the travel-time endpoints.
type TravelTimeResponse struct {
	// example: station_0
	From string `json:"from" example:"station_0"`
	// example: station_1
	To string `json:"to" example:"station_1"`
	// Line id, for route travel times.
	Line string `json:"line,omitempty"`
	// Route id, for route travel times.
	Route string `json:"route,omitempty"`
	// Travel time in minutes; 0 when the stations are not connected.
	// example: 2
	Minutes uint `json:"minutes" example:"2"`
}
