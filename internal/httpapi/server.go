package httpapi

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"network-monitor/internal/manifest"
	"network-monitor/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Ready() bool
	Status() types.StatusResponse
	Stations() ([]types.Station, error)
	Station(id string) (types.StationResponse, error)
	TravelTime(from, to string) (uint, error)
	RouteTravelTime(line, route, from, to string) (uint, error)
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, logging, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}
	r.Use(MetricsMiddleware)

	// getStatus godoc
	// @Summary  Monitor status
	// @Tags     monitor
	// @Produce  json
	// @Success  200 {object} types.StatusResponse
	// @Router   /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	// listStations godoc
	// @Summary  List stations
	// @Tags     network
	// @Produce  json
	// @Success  200 {object} types.StationsResponse
	// @Failure  503 {object} types.ErrorResponse
	// @Router   /stations [get]
	r.Get("/stations", func(w http.ResponseWriter, r *http.Request) {
		stations, err := svc.Stations()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, types.StationsResponse{Stations: stations})
	})

	// getStation godoc
	// @Summary  Station detail with passenger count and serving routes
	// @Tags     network
	// @Produce  json
	// @Param    id path string true "Station id"
	// @Success  200 {object} types.StationResponse
	// @Failure  404 {object} types.ErrorResponse
	// @Router   /stations/{id} [get]
	r.Get("/stations/{id}", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.Station(chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, st)
	})

	// getTravelTime godoc
	// @Summary  Travel time between two adjacent stations
	// @Tags     network
	// @Produce  json
	// @Param    from query string true "Start station id"
	// @Param    to   query string true "End station id"
	// @Success  200 {object} types.TravelTimeResponse
	// @Failure  400 {object} types.ErrorResponse
	// @Failure  404 {object} types.ErrorResponse
	// @Router   /travel-time [get]
	r.Get("/travel-time", func(w http.ResponseWriter, r *http.Request) {
		from, to, ok := fromTo(w, r)
		if !ok {
			return
		}
		minutes, err := svc.TravelTime(from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, types.TravelTimeResponse{From: from, To: to, Minutes: minutes})
	})

	// getRouteTravelTime godoc
	// @Summary  Travel time along a route
	// @Tags     network
	// @Produce  json
	// @Param    line  path  string true "Line id"
	// @Param    route path  string true "Route id"
	// @Param    from  query string true "Start station id"
	// @Param    to    query string true "End station id"
	// @Success  200 {object} types.TravelTimeResponse
	// @Failure  400 {object} types.ErrorResponse
	// @Failure  404 {object} types.ErrorResponse
	// @Router   /lines/{line}/routes/{route}/travel-time [get]
	r.Get("/lines/{line}/routes/{route}/travel-time", func(w http.ResponseWriter, r *http.Request) {
		from, to, ok := fromTo(w, r)
		if !ok {
			return
		}
		line, route := chi.URLParam(r, "line"), chi.URLParam(r, "route")
		minutes, err := svc.RouteTravelTime(line, route, from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, types.TravelTimeResponse{From: from, To: to, Line: line, Route: route, Minutes: minutes})
	})

	// getManifest godoc
	// @Summary  Build manifest of the monitor
	// @Tags     meta
	// @Produce  json
	// @Param    format query string false "json, yaml or toml"
	// @Success  200 {object} manifest.Manifest
	// @Failure  400 {object} types.ErrorResponse
	// @Router   /manifest [get]
	r.Get("/manifest", func(w http.ResponseWriter, r *http.Request) {
		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = "json"
		}
		var buf bytes.Buffer
		if err := manifest.Encode(&buf, manifest.Default(), format); err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.Header().Set("Content-Type", manifestContentType(format))
		_, _ = w.Write(buf.Bytes())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(svc.Status().State))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// fromTo reads the required from/to query parameters, answering 400 when one is missing.
func fromTo(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	from, to := strings.TrimSpace(q.Get("from")), strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		writeJSONError(w, http.StatusBadRequest, "from and to are required")
		return "", "", false
	}
	return from, to, true
}

func manifestContentType(format string) string {
	switch format {
	case "yaml", "yml":
		return "application/yaml"
	case "toml":
		return "application/toml"
	default:
		return "application/json"
	}
}
