package stomp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Transport is a duplex text-message channel. Connect must start delivering
// incoming messages to onMessage and call onDisconnect exactly once when the
// channel ends; a nil error means the close was requested locally.
type Transport interface {
	Connect(ctx context.Context, onMessage func(string), onDisconnect func(error)) error
	Send(ctx context.Context, msg string) error
	Close(ctx context.Context) error
}

// Message is a MESSAGE frame delivered to a subscription.
type Message struct {
	Subscription string
	Destination  string
	MessageID    string
	ContentType  string
	Body         string
}

// MessageHandler receives subscription messages. When err is non-nil msg only
// carries the subscription id.
type MessageHandler func(msg Message, err error)

type subscription struct {
	destination string
	handler     MessageHandler
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the parent logger. The client adds component=stomp.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// WithIDGenerator replaces the subscription id generator (uuid by default).
func WithIDGenerator(f func() string) Option { return func(c *Client) { c.newID = f } }

// WithDisconnectHandler registers f to be called when the transport goes away.
// f receives nil after a local Close.
func WithDisconnectHandler(f func(error)) Option { return func(c *Client) { c.onDisconnect = f } }

// WithContentType makes the client reject MESSAGE frames whose content-type
// header is present and differs from ct.
func WithContentType(ct string) Option { return func(c *Client) { c.contentType = ct } }

// Client speaks STOMP 1.2 over a Transport. It is safe for concurrent use;
// handlers run on the transport's read goroutine.
type Client struct {
	t            Transport
	host         string
	log          zerolog.Logger
	newID        func() string
	onDisconnect func(error)
	contentType  string

	mu        sync.Mutex
	connected bool
	pending   chan error // set while Connect waits for CONNECTED
	receipts  map[string]chan error
	subs      map[string]subscription
}

// NewClient returns a client that will announce host in its STOMP frame.
func NewClient(t Transport, host string, opts ...Option) *Client {
	c := &Client{
		t:        t,
		host:     host,
		log:      zerolog.Nop(),
		newID:    uuid.NewString,
		receipts: make(map[string]chan error),
		subs:     make(map[string]subscription),
	}
	for _, o := range opts {
		o(c)
	}
	c.log = c.log.With().Str("component", "stomp").Logger()
	return c
}

// Connected reports whether the server acknowledged the session.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect opens the transport and performs the STOMP handshake. It returns once the
// server answers with CONNECTED or ERROR, the transport drops, or ctx is done.
func (c *Client) Connect(ctx context.Context, login, passcode string) error {
	headers := []Header{
		{Key: HeaderAcceptVersion, Value: "1.2"},
		{Key: HeaderHost, Value: c.host},
	}
	if login != "" {
		headers = append(headers, Header{Key: HeaderLogin, Value: login})
	}
	if passcode != "" {
		headers = append(headers, Header{Key: HeaderPasscode, Value: passcode})
	}
	frame, err := NewFrame(CommandStomp, headers, "")
	if err != nil {
		c.log.Warn().Err(err).Msg("cannot build STOMP frame")
		return clientErr(CodeCouldNotCreateValidFrame, err)
	}

	done := make(chan error, 1)
	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		return clientErr(CodeCouldNotConnect, errors.New("connect already in progress"))
	}
	c.pending = done
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.pending == done {
			c.pending = nil
		}
		c.mu.Unlock()
	}()

	c.log.Info().Str("host", c.host).Msg("connecting")
	if err := c.t.Connect(ctx, c.handleMessage, c.handleDisconnect); err != nil {
		c.log.Warn().Err(err).Msg("transport connect failed")
		return clientErr(CodeCouldNotConnect, err)
	}
	if err := c.t.Send(ctx, frame.String()); err != nil {
		c.log.Warn().Err(err).Msg("cannot send STOMP frame")
		return clientErr(CodeCouldNotSendStompFrame, err)
	}

	select {
	case err := <-done:
		if err != nil {
			return err
		}
		c.log.Info().Msg("connected")
		return nil
	case <-ctx.Done():
		return clientErr(CodeCouldNotConnect, ctx.Err())
	}
}

// Subscribe subscribes to destination and waits for the server's receipt. Messages
// that arrive for the subscription are passed to h.
func (c *Client) Subscribe(ctx context.Context, destination string, h MessageHandler) (string, error) {
	id := c.newID()
	frame, err := NewFrame(CommandSubscribe, []Header{
		{Key: HeaderID, Value: id},
		{Key: HeaderDestination, Value: destination},
		{Key: HeaderAck, Value: "auto"},
		{Key: HeaderReceipt, Value: id},
	}, "")
	if err != nil {
		return "", clientErr(CodeCouldNotCreateValidFrame, err)
	}

	receipt := make(chan error, 1)
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return "", clientErr(CodeNotConnected, nil)
	}
	c.receipts[id] = receipt
	c.subs[id] = subscription{destination: destination, handler: h}
	c.mu.Unlock()

	log := c.log.With().Str("subscription", id).Str("destination", destination).Logger()
	if err := c.t.Send(ctx, frame.String()); err != nil {
		c.forget(id)
		log.Warn().Err(err).Msg("cannot send SUBSCRIBE frame")
		return "", clientErr(CodeCouldNotSendSubscribeFrame, err)
	}

	select {
	case err := <-receipt:
		if err != nil {
			c.forget(id)
			return "", err
		}
		log.Info().Msg("subscribed")
		return id, nil
	case <-ctx.Done():
		c.forget(id)
		return "", clientErr(CodeCouldNotSendSubscribeFrame, ctx.Err())
	}
}

// Close closes the transport. Pending operations fail with a disconnect error.
func (c *Client) Close(ctx context.Context) error {
	if err := c.t.Close(ctx); err != nil {
		c.log.Warn().Err(err).Msg("close failed")
		return clientErr(CodeCouldNotClose, err)
	}
	c.log.Info().Msg("closed")
	return nil
}

func (c *Client) forget(id string) {
	c.mu.Lock()
	delete(c.receipts, id)
	delete(c.subs, id)
	c.mu.Unlock()
}

func (c *Client) handleMessage(raw string) {
	frame, err := ParseFrame(raw)
	if err != nil {
		c.log.Warn().Err(err).Int("bytes", len(raw)).Msg("cannot parse frame")
		c.mu.Lock()
		pending := c.pending
		c.mu.Unlock()
		if pending != nil {
			deliver(pending, clientErr(CodeCouldNotCreateValidFrame, err))
		}
		return
	}
	c.log.Debug().Str("command", string(frame.Command())).Msg("frame received")

	switch frame.Command() {
	case CommandConnected:
		c.mu.Lock()
		c.connected = true
		pending := c.pending
		c.mu.Unlock()
		if pending != nil {
			deliver(pending, nil)
		}
	case CommandError:
		c.handleError(frame)
	case CommandReceipt:
		id := frame.Header(HeaderReceiptID)
		c.mu.Lock()
		ch, ok := c.receipts[id]
		delete(c.receipts, id)
		c.mu.Unlock()
		if !ok {
			c.log.Warn().Str("receipt", id).Msg("receipt for unknown subscription")
			return
		}
		deliver(ch, nil)
	case CommandMessage:
		c.handleSubscriptionMessage(frame)
	default:
		c.log.Debug().Str("command", string(frame.Command())).Msg("ignoring frame")
	}
}

func (c *Client) handleError(frame *Frame) {
	reason := frame.Header(HeaderMessage)
	if reason == "" {
		reason = frame.Body()
	}
	err := clientErr(CodeServerError, errors.New(reason))
	c.log.Warn().Str("reason", reason).Msg("server error")

	c.mu.Lock()
	pending := c.pending
	receipts := c.receipts
	c.receipts = make(map[string]chan error)
	c.mu.Unlock()
	if pending != nil {
		deliver(pending, err)
	}
	for _, ch := range receipts {
		deliver(ch, err)
	}
}

func (c *Client) handleSubscriptionMessage(frame *Frame) {
	id := frame.Header(HeaderSubscription)
	c.mu.Lock()
	sub, ok := c.subs[id]
	c.mu.Unlock()
	if !ok {
		c.log.Warn().Str("subscription", id).Msg("message for unknown subscription")
		return
	}
	if sub.handler == nil {
		return
	}
	msg := Message{
		Subscription: id,
		Destination:  frame.Header(HeaderDestination),
		MessageID:    frame.Header(HeaderMessageID),
		ContentType:  frame.Header(HeaderContentType),
		Body:         frame.Body(),
	}
	if msg.Destination != sub.destination {
		c.log.Warn().Str("want", sub.destination).Str("got", msg.Destination).Msg("subscription destination mismatch")
		sub.handler(Message{Subscription: id}, clientErr(CodeUnexpectedSubscriptionMismatch,
			fmt.Errorf("subscribed to %q, got %q", sub.destination, msg.Destination)))
		return
	}
	if c.contentType != "" && msg.ContentType != "" && msg.ContentType != c.contentType {
		sub.handler(Message{Subscription: id}, clientErr(CodeUnexpectedContentType,
			fmt.Errorf("want %q, got %q", c.contentType, msg.ContentType)))
		return
	}
	sub.handler(msg, nil)
}

func (c *Client) handleDisconnect(cause error) {
	c.mu.Lock()
	c.connected = false
	pending := c.pending
	receipts := c.receipts
	c.receipts = make(map[string]chan error)
	c.subs = make(map[string]subscription)
	c.mu.Unlock()

	var err error
	if cause != nil {
		err = clientErr(CodeServerDisconnected, cause)
		c.log.Warn().Err(cause).Msg("disconnected")
	} else {
		c.log.Info().Msg("disconnected")
	}
	failure := err
	if failure == nil {
		failure = clientErr(CodeServerDisconnected, nil)
	}
	if pending != nil {
		deliver(pending, failure)
	}
	for _, ch := range receipts {
		deliver(ch, failure)
	}
	if c.onDisconnect != nil {
		c.onDisconnect(err)
	}
}

// deliver hands err to a buffered channel without blocking the read loop.
func deliver(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}
