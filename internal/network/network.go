// Package network models the transport network as a graph of stations joined by
// per-route edges, and tracks passenger counts per station.
package network

import (
	"sort"
	"sync"
	"time"
)

type Station struct {
	ID   string
	Name string
}

// Route is an ordered list of station ids served by one line in one direction.
type Route struct {
	ID             string
	Name           string
	LineID         string
	StartStationID string
	EndStationID   string
	Stops          []string
}

type Line struct {
	ID     string
	Name   string
	Routes []Route
}

// EventType is the direction of a passenger event.
type EventType string

const (
	EventIn  EventType = "in"
	EventOut EventType = "out"
)

// PassengerEvent records a passenger entering or leaving a station.
type PassengerEvent struct {
	StationID string
	Type      EventType
	Timestamp time.Time
}

// TravelTime is the time in minutes between two adjacent stations.
type TravelTime struct {
	StartStationID string
	EndStationID   string
	Minutes        uint
}

type node struct {
	id         string
	name       string
	passengers int64
	edges      []*edge
}

type edge struct {
	route   *route
	next    *node
	minutes uint
}

type route struct {
	id    string
	name  string
	line  *line
	stops []*node
}

type line struct {
	id     string
	name   string
	routes map[string]*route
}

// Network is safe for concurrent use.
type Network struct {
	mu       sync.RWMutex
	stations map[string]*node
	lines    map[string]*line
}

func New() *Network {
	return &Network{
		stations: make(map[string]*node),
		lines:    make(map[string]*line),
	}
}

// AddStation adds a station with no connections and a zero passenger count.
func (n *Network) AddStation(s Station) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.stations[s.ID]; ok {
		return duplicateError{kind: "station", id: s.ID}
	}
	n.stations[s.ID] = &node{id: s.ID, name: s.Name}
	return nil
}

// AddLine adds a line and all its routes. Every stop must already be a station.
// The line is validated as a whole first; on error the network is unchanged.
func (n *Network) AddLine(l Line) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.lines[l.ID]; ok {
		return duplicateError{kind: "line", id: l.ID}
	}

	li := &line{id: l.ID, name: l.Name, routes: make(map[string]*route, len(l.Routes))}
	for _, r := range l.Routes {
		if _, ok := li.routes[r.ID]; ok {
			return duplicateError{kind: "route", id: r.ID}
		}
		ri := &route{id: r.ID, name: r.Name, line: li, stops: make([]*node, 0, len(r.Stops))}
		for _, stop := range r.Stops {
			s, ok := n.stations[stop]
			if !ok {
				return ErrStationNotFound(stop)
			}
			ri.stops = append(ri.stops, s)
		}
		li.routes[r.ID] = ri
	}

	// Validation done: wire the edges.
	for _, ri := range li.routes {
		for i := 0; i+1 < len(ri.stops); i++ {
			from := ri.stops[i]
			from.edges = append(from.edges, &edge{route: ri, next: ri.stops[i+1]})
		}
	}
	n.lines[l.ID] = li
	return nil
}

// RecordPassengerEvent applies ev to its station's passenger count.
func (n *Network) RecordPassengerEvent(ev PassengerEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	s, ok := n.stations[ev.StationID]
	if !ok {
		return ErrStationNotFound(ev.StationID)
	}
	switch ev.Type {
	case EventIn:
		s.passengers++
	case EventOut:
		s.passengers--
	default:
		return invalidEventError{msg: "unknown type " + string(ev.Type)}
	}
	return nil
}

// PassengerCount returns the net number of passengers at a station. It can be
// negative when events were missed.
func (n *Network) PassengerCount(station string) (int64, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.stations[station]
	if !ok {
		return 0, ErrStationNotFound(station)
	}
	return s.passengers, nil
}

// Station returns the station with the given id.
func (n *Network) Station(id string) (Station, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.stations[id]
	if !ok {
		return Station{}, false
	}
	return Station{ID: s.id, Name: s.name}, true
}

// Stations returns all stations sorted by id.
func (n *Network) Stations() []Station {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Station, 0, len(n.stations))
	for _, s := range n.stations {
		out = append(out, Station{ID: s.id, Name: s.name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RoutesServingStation returns the ids of routes that stop at station: those with an
// edge leaving it and those ending at it. The result is sorted and has no repeats.
func (n *Network) RoutesServingStation(station string) ([]string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.stations[station]
	if !ok {
		return nil, ErrStationNotFound(station)
	}

	seen := make(map[string]struct{})
	for _, e := range s.edges {
		seen[e.route.id] = struct{}{}
	}
	for _, l := range n.lines {
		for _, r := range l.routes {
			if len(r.stops) > 0 && r.stops[len(r.stops)-1] == s {
				seen[r.id] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// SetTravelTime sets the travel time on every edge between a and b, in both
// directions and across all routes.
func (n *Network) SetTravelTime(a, b string, minutes uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	na, ok := n.stations[a]
	if !ok {
		return ErrStationNotFound(a)
	}
	nb, ok := n.stations[b]
	if !ok {
		return ErrStationNotFound(b)
	}

	found := false
	set := func(from, to *node) {
		for _, e := range from.edges {
			if e.next == to {
				e.minutes = minutes
				found = true
			}
		}
	}
	set(na, nb)
	set(nb, na)
	if !found {
		return notAdjacentError{a: a, b: b}
	}
	return nil
}

// TravelTime returns the time between two adjacent stations, or 0 when they are the
// same, unknown or not adjacent.
func (n *Network) TravelTime(a, b string) uint {
	if a == b {
		return 0
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	na, okA := n.stations[a]
	nb, okB := n.stations[b]
	if !okA || !okB {
		return 0
	}
	for _, e := range na.edges {
		if e.next == nb {
			return e.minutes
		}
	}
	for _, e := range nb.edges {
		if e.next == na {
			return e.minutes
		}
	}
	return 0
}

// RouteTravelTime sums edge times along a route from a to b. It returns 0 when a
// equals b, an id is unknown, or b does not come after a on the route.
func (n *Network) RouteTravelTime(lineID, routeID, a, b string) uint {
	if a == b {
		return 0
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	l, ok := n.lines[lineID]
	if !ok {
		return 0
	}
	r, ok := l.routes[routeID]
	if !ok {
		return 0
	}
	na, okA := n.stations[a]
	nb, okB := n.stations[b]
	if !okA || !okB {
		return 0
	}

	var total uint
	started := false
	for _, stop := range r.stops {
		if stop == nb && started {
			return total
		}
		if stop == na {
			started = true
		}
		if !started {
			continue
		}
		e := stop.edgeFor(r)
		if e == nil {
			return 0
		}
		total += e.minutes
	}
	return 0
}

// HasRoute reports whether lineID has a route routeID.
func (n *Network) HasRoute(lineID, routeID string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	l, ok := n.lines[lineID]
	if !ok {
		return false
	}
	_, ok = l.routes[routeID]
	return ok
}

// Size returns the number of stations and lines.
func (n *Network) Size() (stations, lines int) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.stations), len(n.lines)
}

func (s *node) edgeFor(r *route) *edge {
	for _, e := range s.edges {
		if e.route == r {
			return e
		}
	}
	return nil
}
