package httpapi

import (
	"network-monitor/internal/monitor"
	"network-monitor/internal/network"
	"network-monitor/pkg/types"
)

type mockService struct {
	ready      bool
	status     types.StatusResponse
	stations   []types.Station
	station    types.StationResponse
	minutes    uint
	err        error
	lastLine   string
	lastRoute  string
	lastFromTo [2]string
}

func (m *mockService) Ready() bool                  { return m.ready }
func (m *mockService) Status() types.StatusResponse { return m.status }

func (m *mockService) Stations() ([]types.Station, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stations, nil
}

func (m *mockService) Station(id string) (types.StationResponse, error) {
	if m.err != nil {
		return types.StationResponse{}, m.err
	}
	if id != m.station.ID {
		return types.StationResponse{}, network.ErrStationNotFound(id)
	}
	return m.station, nil
}

func (m *mockService) TravelTime(from, to string) (uint, error) {
	m.lastFromTo = [2]string{from, to}
	return m.minutes, m.err
}

func (m *mockService) RouteTravelTime(line, route, from, to string) (uint, error) {
	m.lastLine, m.lastRoute = line, route
	m.lastFromTo = [2]string{from, to}
	return m.minutes, m.err
}

func loadedService() *mockService {
	return &mockService{
		ready:  true,
		status: types.StatusResponse{State: "ready", Connected: true, Stations: 2, Lines: 1},
		stations: []types.Station{
			{ID: "station_0", Name: "Station 0"},
			{ID: "station_1", Name: "Station 1"},
		},
		station: types.StationResponse{
			Station:    types.Station{ID: "station_0", Name: "Station 0"},
			Passengers: 3,
			Routes:     []string{"route_0"},
		},
		minutes: 2,
	}
}

func notLoadedService() *mockService {
	return &mockService{
		status: types.StatusResponse{State: "loading"},
		err:    monitor.ErrNotReady,
	}
}
