package network

import (
	"encoding/json"
	"fmt"
	"time"

	"network-monitor/internal/download"
)

// Layout is the network-layout.json document.
type Layout struct {
	Stations    []LayoutStation    `json:"stations"`
	Lines       []LayoutLine       `json:"lines"`
	TravelTimes []LayoutTravelTime `json:"travel_times"`
}

type LayoutStation struct {
	StationID string `json:"station_id"`
	Name      string `json:"name"`
}

type LayoutLine struct {
	LineID string        `json:"line_id"`
	Name   string        `json:"name"`
	Routes []LayoutRoute `json:"routes"`
}

type LayoutRoute struct {
	RouteID        string   `json:"route_id"`
	Name           string   `json:"name,omitempty"`
	Direction      string   `json:"direction"`
	LineID         string   `json:"line_id"`
	StartStationID string   `json:"start_station_id"`
	EndStationID   string   `json:"end_station_id"`
	RouteStops     []string `json:"route_stops"`
}

type LayoutTravelTime struct {
	StartStationID string `json:"start_station_id"`
	EndStationID   string `json:"end_station_id"`
	TravelTime     uint   `json:"travel_time"`
}

// FromLayout builds a network from a layout document: stations first, then lines,
// then travel times. Any inconsistency aborts the build.
func FromLayout(doc Layout) (*Network, error) {
	n := New()
	for _, s := range doc.Stations {
		if err := n.AddStation(Station{ID: s.StationID, Name: s.Name}); err != nil {
			return nil, fmt.Errorf("layout: %w", err)
		}
	}
	for _, l := range doc.Lines {
		line := Line{ID: l.LineID, Name: l.Name, Routes: make([]Route, 0, len(l.Routes))}
		for _, r := range l.Routes {
			name := r.Name
			if name == "" {
				name = r.Direction
			}
			lineID := r.LineID
			if lineID == "" {
				lineID = l.LineID
			}
			line.Routes = append(line.Routes, Route{
				ID:             r.RouteID,
				Name:           name,
				LineID:         lineID,
				StartStationID: r.StartStationID,
				EndStationID:   r.EndStationID,
				Stops:          r.RouteStops,
			})
		}
		if err := n.AddLine(line); err != nil {
			return nil, fmt.Errorf("layout: line %s: %w", l.LineID, err)
		}
	}
	for _, tt := range doc.TravelTimes {
		if err := n.SetTravelTime(tt.StartStationID, tt.EndStationID, tt.TravelTime); err != nil {
			return nil, fmt.Errorf("layout: travel time: %w", err)
		}
	}
	return n, nil
}

// LoadLayout reads a layout file and builds the network from it.
func LoadLayout(path string) (*Network, error) {
	var doc Layout
	if err := download.ParseJSONFile(path, &doc); err != nil {
		return nil, err
	}
	return FromLayout(doc)
}

type eventMessage struct {
	Datetime       string `json:"datetime"`
	PassengerEvent string `json:"passenger_event"`
	StationID      string `json:"station_id"`
}

// ParsePassengerEvent decodes a network-events message body such as
// {"datetime":"2020-11-01T07:18:50.234000Z","passenger_event":"in","station_id":"station_211"}.
func ParsePassengerEvent(body []byte) (PassengerEvent, error) {
	var m eventMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return PassengerEvent{}, invalidEventError{msg: err.Error()}
	}
	if m.StationID == "" {
		return PassengerEvent{}, invalidEventError{msg: "missing station_id"}
	}
	ev := PassengerEvent{StationID: m.StationID, Type: EventType(m.PassengerEvent)}
	if ev.Type != EventIn && ev.Type != EventOut {
		return PassengerEvent{}, invalidEventError{msg: "passenger_event must be in or out, got " + m.PassengerEvent}
	}
	if m.Datetime != "" {
		ts, err := time.Parse(time.RFC3339Nano, m.Datetime)
		if err != nil {
			return PassengerEvent{}, invalidEventError{msg: "bad datetime: " + err.Error()}
		}
		ev.Timestamp = ts
	}
	return ev, nil
}
