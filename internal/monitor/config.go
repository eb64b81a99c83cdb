package monitor

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"network-monitor/internal/stomp"
	"network-monitor/internal/websocket"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultEndpoint       = "/network-events"
	defaultDestination    = "/passengers"
	defaultPort           = "443"
	defaultReconnectDelay = 5 * time.Second
	defaultCloseTimeout   = 5 * time.Second
)

// TransportFactory returns a fresh, unconnected transport for each session.
type TransportFactory func() (stomp.Transport, error)

// Config encapsulates all tunables for Monitor construction.
type Config struct {
	// STOMP server
	Host        string
	Port        string
	Endpoint    string
	Destination string
	Username    string
	Password    string
	// CAFile verifies both the WebSocket and the layout download.
	CAFile string

	// Layout source. The file is downloaded from LayoutURL when missing or when
	// RefreshLayout is set; an empty LayoutURL means the file must exist.
	LayoutURL     string
	LayoutFile    string
	RefreshLayout bool
	HTTPClient    *http.Client

	ReconnectDelay time.Duration
	// Transport overrides the default wss client built from Host/Port/Endpoint.
	Transport TransportFactory
	Publisher EventPublisher
	Logger    *zerolog.Logger
}

// New constructs a Monitor from Config.
func New(cfg Config) *Monitor {
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Destination == "" {
		cfg.Destination = defaultDestination
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	m := &Monitor{
		cfg:       cfg,
		state:     StateLoading,
		publisher: cfg.Publisher,
		base:      zerolog.Nop(),
		startTime: time.Now(),
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.base = *cfg.Logger
	}
	m.log = m.base.With().Str("component", "monitor").Logger()
	if cfg.Transport != nil {
		m.dial = cfg.Transport
	} else {
		m.dial = m.websocketTransport
	}
	return m
}

func (m *Monitor) websocketTransport() (stomp.Transport, error) {
	tlsCfg, err := websocket.LoadTLSConfig(m.cfg.CAFile)
	if err != nil {
		return nil, err
	}
	return websocket.New(m.cfg.Host, m.cfg.Port, m.cfg.Endpoint,
		websocket.WithTLSConfig(tlsCfg),
		websocket.WithLogger(m.base),
	), nil
}
