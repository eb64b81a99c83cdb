package httpapi

import (
	"errors"
	"net/http"
	"testing"

	"network-monitor/internal/network"
)

type teapotError struct{}

func (teapotError) Error() string   { return "teapot" }
func (teapotError) StatusCode() int { return http.StatusTeapot }

func TestStations_NotLoadedMaps503(t *testing.T) {
	w := get(t, NewMux(notLoadedService()), "/stations")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestRouteTravelTime_UnknownLineMaps404(t *testing.T) {
	svc := loadedService()
	svc.err = network.ErrLineNotFound("line_9/route_0")
	w := get(t, NewMux(svc), "/lines/line_9/routes/route_0/travel-time?from=a&to=b")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{notLoadedService().err, http.StatusServiceUnavailable},
		{network.ErrStationNotFound("x"), http.StatusNotFound},
		{network.ErrLineNotFound("x"), http.StatusNotFound},
		{teapotError{}, http.StatusTeapot},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
