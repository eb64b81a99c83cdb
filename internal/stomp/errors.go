package stomp

import "errors"

// FrameError reports why a frame could not be parsed or built.
type FrameError uint8

const (
	ErrUndefinedCommand FrameError = iota + 1
	ErrMissingCommandNewline
	ErrEmptyHeader
	ErrBadHeader
	ErrUnrecognizedHeader
	ErrEmptyHeaderValue
	ErrMissingLastHeaderNewline
	ErrMissingBodyNewline
	ErrWrongContentLength
	ErrUnterminatedBody
	ErrJunkAfterBody
	ErrMissingAcceptVersion
	ErrMissingHost
)

var frameErrorNames = map[FrameError]string{
	ErrUndefinedCommand:         "undefined command",
	ErrMissingCommandNewline:    "missing newline after command",
	ErrEmptyHeader:              "empty header key",
	ErrBadHeader:                "bad header",
	ErrUnrecognizedHeader:       "unrecognized header",
	ErrEmptyHeaderValue:         "empty header value",
	ErrMissingLastHeaderNewline: "missing newline after last header",
	ErrMissingBodyNewline:       "missing blank line before body",
	ErrWrongContentLength:       "wrong content length",
	ErrUnterminatedBody:         "unterminated body",
	ErrJunkAfterBody:            "junk after body",
	ErrMissingAcceptVersion:     "missing accept-version header",
	ErrMissingHost:              "missing host header",
}

func (e FrameError) Error() string {
	if s, ok := frameErrorNames[e]; ok {
		return "stomp: " + s
	}
	return "stomp: unknown frame error"
}

// ClientErrorCode classifies failures of the STOMP client.
type ClientErrorCode uint8

const (
	CodeUndefined ClientErrorCode = iota
	CodeCouldNotConnect
	CodeCouldNotSendStompFrame
	CodeCouldNotSendSubscribeFrame
	CodeCouldNotCreateValidFrame
	CodeServerError
	CodeUnexpectedSubscriptionMismatch
	CodeUnexpectedContentType
	CodeServerDisconnected
	CodeCouldNotClose
	CodeNotConnected
)

func (c ClientErrorCode) String() string {
	switch c {
	case CodeCouldNotConnect:
		return "could not connect to websocket server"
	case CodeCouldNotSendStompFrame:
		return "could not send STOMP frame"
	case CodeCouldNotSendSubscribeFrame:
		return "could not send SUBSCRIBE frame"
	case CodeCouldNotCreateValidFrame:
		return "could not create valid frame"
	case CodeServerError:
		return "server sent ERROR frame"
	case CodeUnexpectedSubscriptionMismatch:
		return "unexpected subscription mismatch"
	case CodeUnexpectedContentType:
		return "unexpected message content type"
	case CodeServerDisconnected:
		return "websocket server disconnected"
	case CodeCouldNotClose:
		return "could not close websocket connection"
	case CodeNotConnected:
		return "not connected"
	default:
		return "undefined error"
	}
}

// ClientError is returned by Client operations. Err carries the underlying cause, if any.
type ClientError struct {
	Code ClientErrorCode
	Err  error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return "stomp client: " + e.Code.String() + ": " + e.Err.Error()
	}
	return "stomp client: " + e.Code.String()
}

func (e *ClientError) Unwrap() error { return e.Err }

func clientErr(code ClientErrorCode, err error) error { return &ClientError{Code: code, Err: err} }

// ErrorCode extracts the client error code from err, or CodeUndefined.
func ErrorCode(err error) ClientErrorCode {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return CodeUndefined
}

// IsDisconnected reports whether err indicates that the server went away.
func IsDisconnected(err error) bool { return ErrorCode(err) == CodeServerDisconnected }

// IsSubscriptionMismatch reports whether a MESSAGE arrived for the wrong destination.
func IsSubscriptionMismatch(err error) bool {
	return ErrorCode(err) == CodeUnexpectedSubscriptionMismatch
}
