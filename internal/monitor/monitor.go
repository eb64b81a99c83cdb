package monitor

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"network-monitor/internal/common/fsutil"
	"network-monitor/internal/download"
	"network-monitor/internal/network"
	"network-monitor/pkg/types"
)

type Monitor struct {
	cfg       Config
	dial      TransportFactory
	publisher EventPublisher
	base      zerolog.Logger
	log       zerolog.Logger
	startTime time.Time

	mu              sync.RWMutex
	state           State
	err             string
	nw              *network.Network
	subscriptionID  string
	eventsApplied   uint64
	eventsRejected  uint64
	connectAttempts uint64
	lastEvent       time.Time
}

// Init obtains the network layout and builds the network. The layout is
// downloaded first when the file is missing or a refresh is requested.
func (m *Monitor) Init(ctx context.Context) error {
	path := m.cfg.LayoutFile
	if path == "" {
		return m.fail(fmt.Errorf("no layout file configured"))
	}
	if m.cfg.LayoutURL != "" && (m.cfg.RefreshLayout || !fsutil.FileExists(path)) {
		m.log.Info().Str("url", m.cfg.LayoutURL).Str("path", path).Msg("downloading network layout")
		opts := download.Options{CAFile: m.cfg.CAFile, Client: m.cfg.HTTPClient, Logger: &m.base}
		if err := download.File(ctx, m.cfg.LayoutURL, path, opts); err != nil {
			return m.fail(err)
		}
	}
	n, err := network.LoadLayout(path)
	if err != nil {
		return m.fail(err)
	}
	stations, lines := n.Size()

	m.mu.Lock()
	m.nw = n
	m.state = StateConnecting
	m.err = ""
	m.mu.Unlock()

	m.log.Info().Int("stations", stations).Int("lines", lines).Msg("network loaded")
	m.publisher.Publish(Event{Name: EventLayoutLoaded, Fields: map[string]any{
		"path": path, "stations": stations, "lines": lines,
	}})
	return nil
}

func (m *Monitor) fail(err error) error {
	m.mu.Lock()
	m.state = StateError
	m.err = err.Error()
	m.mu.Unlock()
	m.log.Error().Err(err).Msg("monitor error")
	return err
}

func (m *Monitor) loaded() *network.Network {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nw
}

// Ready reports whether the network is loaded and the feed is subscribed.
func (m *Monitor) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state == StateReady && m.nw != nil
}

// Endpoint returns the wss URL of the events service.
func (m *Monitor) Endpoint() string {
	u := url.URL{Scheme: "wss", Host: net.JoinHostPort(m.cfg.Host, m.cfg.Port), Path: m.cfg.Endpoint}
	return u.String()
}

// Stations lists every station, sorted by id.
func (m *Monitor) Stations() ([]types.Station, error) {
	n := m.loaded()
	if n == nil {
		return nil, ErrNotReady
	}
	all := n.Stations()
	out := make([]types.Station, len(all))
	for i, s := range all {
		out[i] = types.Station{ID: s.ID, Name: s.Name}
	}
	return out, nil
}

// Station returns a station with its passenger count and serving routes.
func (m *Monitor) Station(id string) (types.StationResponse, error) {
	n := m.loaded()
	if n == nil {
		return types.StationResponse{}, ErrNotReady
	}
	s, ok := n.Station(id)
	if !ok {
		return types.StationResponse{}, network.ErrStationNotFound(id)
	}
	count, err := n.PassengerCount(id)
	if err != nil {
		return types.StationResponse{}, err
	}
	routes, err := n.RoutesServingStation(id)
	if err != nil {
		return types.StationResponse{}, err
	}
	return types.StationResponse{
		Station:    types.Station{ID: s.ID, Name: s.Name},
		Passengers: count,
		Routes:     routes,
	}, nil
}

// TravelTime returns the time between two adjacent stations; 0 when not adjacent.
func (m *Monitor) TravelTime(from, to string) (uint, error) {
	n := m.loaded()
	if n == nil {
		return 0, ErrNotReady
	}
	if err := requireStations(n, from, to); err != nil {
		return 0, err
	}
	return n.TravelTime(from, to), nil
}

// RouteTravelTime returns the time from one stop to a later one along a route.
func (m *Monitor) RouteTravelTime(line, route, from, to string) (uint, error) {
	n := m.loaded()
	if n == nil {
		return 0, ErrNotReady
	}
	if !n.HasRoute(line, route) {
		return 0, network.ErrLineNotFound(line + "/" + route)
	}
	if err := requireStations(n, from, to); err != nil {
		return 0, err
	}
	return n.RouteTravelTime(line, route, from, to), nil
}

func requireStations(n *network.Network, ids ...string) error {
	for _, id := range ids {
		if _, ok := n.Station(id); !ok {
			return network.ErrStationNotFound(id)
		}
	}
	return nil
}
