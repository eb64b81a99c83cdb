// Package websocket is a secure WebSocket client with callback delivery of
// incoming text messages. It satisfies stomp.Transport.
package websocket

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const defaultHandshakeTimeout = 5 * time.Second

var (
	ErrNotConnected     = errors.New("websocket: not connected")
	ErrAlreadyConnected = errors.New("websocket: already connected")
)

// Option configures a Client.
type Option func(*Client)

// WithTLSConfig sets the TLS configuration used for wss connections.
func WithTLSConfig(cfg *tls.Config) Option { return func(c *Client) { c.tlsConfig = cfg } }

// WithHandshakeTimeout bounds the TCP, TLS and WebSocket handshakes together.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.handshakeTimeout = d
		}
	}
}

func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithDialer replaces the base dialer. Its TLS config and handshake timeout are
// overridden by the corresponding options.
func WithDialer(d *gorilla.Dialer) Option { return func(c *Client) { c.dialer = d } }

// Client connects to a single wss endpoint. One connection at a time; Connect can
// be called again once the previous connection ended.
type Client struct {
	url              string
	dialer           *gorilla.Dialer
	tlsConfig        *tls.Config
	handshakeTimeout time.Duration
	log              zerolog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	conn    *gorilla.Conn
	done    chan struct{}
	closing bool
}

// New returns a client for wss://host:port/endpoint.
func New(host, port, endpoint string, opts ...Option) *Client {
	u := url.URL{Scheme: "wss", Host: net.JoinHostPort(host, port), Path: endpoint}
	c := &Client{
		url:              u.String(),
		dialer:           gorilla.DefaultDialer,
		handshakeTimeout: defaultHandshakeTimeout,
		log:              zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With().Str("component", "websocket").Str("url", c.url).Logger()
	return c
}

// URL returns the endpoint the client dials.
func (c *Client) URL() string { return c.url }

// Connect dials the server and starts the read loop. onMessage receives every text
// message; onDisconnect is called once when the connection ends, with nil after a
// clean close.
func (c *Client) Connect(ctx context.Context, onMessage func(string), onDisconnect func(error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return ErrAlreadyConnected
	}

	d := *c.dialer
	d.TLSClientConfig = c.tlsConfig
	d.HandshakeTimeout = c.handshakeTimeout
	conn, resp, err := d.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			err = fmt.Errorf("%w (status %d)", err, resp.StatusCode)
		}
		c.log.Warn().Err(err).Msg("dial failed")
		return fmt.Errorf("websocket: dial %s: %w", c.url, err)
	}
	c.log.Info().Msg("connected")

	c.conn = conn
	c.done = make(chan struct{})
	c.closing = false
	go c.readLoop(conn, c.done, onMessage, onDisconnect)
	return nil
}

func (c *Client) readLoop(conn *gorilla.Conn, done chan struct{}, onMessage func(string), onDisconnect func(error)) {
	var cause error
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			cause = err
			break
		}
		if mt != gorilla.TextMessage {
			c.log.Debug().Int("type", mt).Msg("ignoring non-text message")
			continue
		}
		if onMessage != nil {
			onMessage(string(data))
		}
	}
	_ = conn.Close()

	c.mu.Lock()
	clean := c.closing || gorilla.IsCloseError(cause, gorilla.CloseNormalClosure)
	c.conn = nil
	c.mu.Unlock()
	close(done)

	if clean {
		c.log.Info().Msg("closed")
		cause = nil
	} else {
		c.log.Warn().Err(cause).Msg("connection lost")
	}
	if onDisconnect != nil {
		onDisconnect(cause)
	}
}

// Send writes msg as a single text message. Writes are serialised; the ctx
// deadline, if any, applies to the write.
func (c *Client) Send(ctx context.Context, msg string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	dl, _ := ctx.Deadline()
	if err := conn.SetWriteDeadline(dl); err != nil {
		return err
	}
	if err := conn.WriteMessage(gorilla.TextMessage, []byte(msg)); err != nil {
		return fmt.Errorf("websocket: write: %w", err)
	}
	return nil
}

// Close performs the closing handshake and waits for the read loop to finish.
// When ctx ends first the connection is dropped and ctx.Err is returned.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	conn, done := c.conn, c.done
	c.closing = true
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	dl, ok := ctx.Deadline()
	if !ok {
		dl = time.Now().Add(time.Second)
	}
	c.writeMu.Lock()
	err := conn.WriteControl(gorilla.CloseMessage,
		gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""), dl)
	c.writeMu.Unlock()
	if err != nil {
		_ = conn.Close()
		<-done
		return fmt.Errorf("websocket: close: %w", err)
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		_ = conn.Close()
		<-done
		return ctx.Err()
	}
}

// LoadTLSConfig returns a TLS 1.2+ client configuration. When caFile is set only
// the certificates in that PEM bundle are trusted; otherwise the system pool is used.
func LoadTLSConfig(caFile string) (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if caFile == "" {
		return cfg, nil
	}
	pem, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("read CA bundle: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates in %s", caFile)
	}
	cfg.RootCAs = pool
	return cfg, nil
}
