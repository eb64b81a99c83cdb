package types

// Station is a station of the transport network.
type Station struct {
	// Stable identifier.
	// example: station_0
	ID string `json:"id" example:"station_0"`
	// Human-friendly name.
	// example: Aldgate East
	Name string `json:"name" example:"Aldgate East"`
}
