package stomp

import (
	"strconv"
	"strings"
)

// Command is a STOMP 1.2 frame command.
type Command string

const (
	CommandSend        Command = "SEND"
	CommandSubscribe   Command = "SUBSCRIBE"
	CommandUnsubscribe Command = "UNSUBSCRIBE"
	CommandBegin       Command = "BEGIN"
	CommandCommit      Command = "COMMIT"
	CommandAbort       Command = "ABORT"
	CommandAck         Command = "ACK"
	CommandNack        Command = "NACK"
	CommandDisconnect  Command = "DISCONNECT"
	CommandConnect     Command = "CONNECT"
	CommandStomp       Command = "STOMP"
	CommandConnected   Command = "CONNECTED"
	CommandMessage     Command = "MESSAGE"
	CommandReceipt     Command = "RECEIPT"
	CommandError       Command = "ERROR"
)

var commands = map[Command]struct{}{
	CommandSend: {}, CommandSubscribe: {}, CommandUnsubscribe: {}, CommandBegin: {},
	CommandCommit: {}, CommandAbort: {}, CommandAck: {}, CommandNack: {},
	CommandDisconnect: {}, CommandConnect: {}, CommandStomp: {}, CommandConnected: {},
	CommandMessage: {}, CommandReceipt: {}, CommandError: {},
}

// Valid reports whether c is a STOMP 1.2 command.
func (c Command) Valid() bool {
	_, ok := commands[c]
	return ok
}

// escapesHeaders reports whether header values of c use STOMP 1.2 escaping.
// CONNECT and CONNECTED are exempt for compatibility with STOMP 1.0.
func (c Command) escapesHeaders() bool {
	return c != CommandConnect && c != CommandConnected
}

// HeaderKey is a recognised STOMP 1.2 header name.
type HeaderKey string

const (
	HeaderAcceptVersion HeaderKey = "accept-version"
	HeaderAck           HeaderKey = "ack"
	HeaderContentLength HeaderKey = "content-length"
	HeaderContentType   HeaderKey = "content-type"
	HeaderDestination   HeaderKey = "destination"
	HeaderHeartBeat     HeaderKey = "heart-beat"
	HeaderHost          HeaderKey = "host"
	HeaderID            HeaderKey = "id"
	HeaderLogin         HeaderKey = "login"
	HeaderMessage       HeaderKey = "message"
	HeaderMessageID     HeaderKey = "message-id"
	HeaderPasscode      HeaderKey = "passcode"
	HeaderReceipt       HeaderKey = "receipt"
	HeaderReceiptID     HeaderKey = "receipt-id"
	HeaderServer        HeaderKey = "server"
	HeaderSession       HeaderKey = "session"
	HeaderSubscription  HeaderKey = "subscription"
	HeaderTransaction   HeaderKey = "transaction"
	HeaderVersion       HeaderKey = "version"
)

var headerKeys = map[HeaderKey]struct{}{
	HeaderAcceptVersion: {}, HeaderAck: {}, HeaderContentLength: {}, HeaderContentType: {},
	HeaderDestination: {}, HeaderHeartBeat: {}, HeaderHost: {}, HeaderID: {}, HeaderLogin: {},
	HeaderMessage: {}, HeaderMessageID: {}, HeaderPasscode: {}, HeaderReceipt: {},
	HeaderReceiptID: {}, HeaderServer: {}, HeaderSession: {}, HeaderSubscription: {},
	HeaderTransaction: {}, HeaderVersion: {},
}

// Valid reports whether k is a recognised header name.
func (k HeaderKey) Valid() bool {
	_, ok := headerKeys[k]
	return ok
}

// Header is a single header line. Value is never empty in a parsed frame.
type Header struct {
	Key   HeaderKey
	Value string
}

// Frame is a validated STOMP frame. Use ParseFrame or NewFrame to obtain one.
type Frame struct {
	command Command
	headers []Header
	body    string
}

// ParseFrame parses and validates a complete frame, including its NUL terminator.
func ParseFrame(raw string) (*Frame, error) {
	p := NewParser(raw)
	cmd, err := p.ParseCommand()
	if err != nil {
		return nil, err
	}
	if p.AtEnd() && !strings.HasSuffix(raw, "\n") {
		return nil, ErrMissingCommandNewline
	}

	var headers []Header
	for {
		if p.AtEnd() {
			return nil, ErrMissingBodyNewline
		}
		if p.atBlankLine() {
			p.readLine()
			break
		}
		h, err := p.ParseHeader(cmd.escapesHeaders())
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}

	f := &Frame{command: cmd, headers: headers}
	length := -1
	if v, ok := f.Lookup(HeaderContentLength); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, ErrWrongContentLength
		}
		length = n
	}
	f.body, err = p.ParseBody(length)
	if err != nil {
		return nil, err
	}
	if strings.Trim(p.Remaining(), "\r\n") != "" {
		return nil, ErrJunkAfterBody
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewFrame builds a frame from its parts. The rendered frame is parsed back, so the
// same rules apply as for received frames.
func NewFrame(cmd Command, headers []Header, body string) (*Frame, error) {
	if !cmd.Valid() {
		return nil, ErrUndefinedCommand
	}
	f := &Frame{command: cmd, headers: headers, body: body}
	return ParseFrame(f.String())
}

func (f *Frame) validate() error {
	switch f.command {
	case CommandConnect, CommandStomp:
		if _, ok := f.Lookup(HeaderAcceptVersion); !ok {
			return ErrMissingAcceptVersion
		}
		if _, ok := f.Lookup(HeaderHost); !ok {
			return ErrMissingHost
		}
	}
	return nil
}

func (f *Frame) Command() Command { return f.command }

// Lookup returns the value of the first header named k.
func (f *Frame) Lookup(k HeaderKey) (string, bool) {
	for _, h := range f.headers {
		if h.Key == k {
			return h.Value, true
		}
	}
	return "", false
}

// Header returns the value of the first header named k, or "".
func (f *Frame) Header(k HeaderKey) string {
	v, _ := f.Lookup(k)
	return v
}

// Headers returns a copy of all headers in wire order, repeats included.
func (f *Frame) Headers() []Header {
	out := make([]Header, len(f.headers))
	copy(out, f.headers)
	return out
}

func (f *Frame) Body() string { return f.body }

// String renders the frame in wire format, NUL terminator included.
func (f *Frame) String() string {
	var b strings.Builder
	b.WriteString(string(f.command))
	b.WriteByte('\n')
	escape := f.command.escapesHeaders()
	for _, h := range f.headers {
		b.WriteString(string(h.Key))
		b.WriteByte(':')
		if escape {
			b.WriteString(valueEscaper.Replace(h.Value))
		} else {
			b.WriteString(h.Value)
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(f.body)
	b.WriteByte(0)
	return b.String()
}
