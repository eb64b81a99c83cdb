package stomp

import "strings"

// Parser reads a single STOMP frame step by step. It does not copy the frame.
type Parser struct {
	frame string
	pos   int
}

// NewParser returns a parser positioned at the start of frame.
func NewParser(frame string) *Parser { return &Parser{frame: frame} }

// AtEnd reports whether the whole frame has been consumed.
func (p *Parser) AtEnd() bool { return p.pos >= len(p.frame) }

// Remaining returns the unconsumed part of the frame.
func (p *Parser) Remaining() string { return p.frame[p.pos:] }

// readLine consumes one line. terminated is false when the frame ended before an EOL.
func (p *Parser) readLine() (line string, terminated bool) {
	rest := p.frame[p.pos:]
	idx := strings.IndexByte(rest, '\n')
	if idx < 0 {
		p.pos = len(p.frame)
		return rest, false
	}
	p.pos += idx + 1
	line = rest[:idx]
	return strings.TrimSuffix(line, "\r"), true
}

func (p *Parser) atBlankLine() bool {
	rest := p.frame[p.pos:]
	return strings.HasPrefix(rest, "\n") || strings.HasPrefix(rest, "\r\n")
}

// ParseCommand reads the command line. A frame that ends right after the command
// still yields the command; ParseFrame treats the missing EOL as an error.
func (p *Parser) ParseCommand() (Command, error) {
	start := p.pos
	line, _ := p.readLine()
	cmd := Command(line)
	if !cmd.Valid() {
		p.pos = start
		return "", ErrUndefinedCommand
	}
	return cmd, nil
}

// ParseHeader reads one "key:value" line. The value is everything after the first
// colon. When unescape is set, STOMP 1.2 escape sequences in the value are decoded.
func (p *Parser) ParseHeader(unescape bool) (Header, error) {
	line, terminated := p.readLine()
	if line == "" {
		return Header{}, ErrEmptyHeader
	}
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return Header{}, ErrBadHeader
	}
	if idx == 0 {
		return Header{}, ErrEmptyHeader
	}
	key := HeaderKey(line[:idx])
	value := line[idx+1:]
	if !key.Valid() {
		return Header{}, ErrUnrecognizedHeader
	}
	if value == "" {
		return Header{}, ErrEmptyHeaderValue
	}
	if unescape {
		v, ok := unescapeValue(value)
		if !ok {
			return Header{}, ErrBadHeader
		}
		value = v
	}
	if !terminated {
		return Header{}, ErrMissingLastHeaderNewline
	}
	return Header{Key: key, Value: value}, nil
}

// ParseBody reads the body and its terminating NUL. A negative length reads up to
// the first NUL; otherwise exactly length bytes must be followed by a NUL.
func (p *Parser) ParseBody(length int) (string, error) {
	rest := p.frame[p.pos:]
	if length < 0 {
		idx := strings.IndexByte(rest, 0)
		if idx < 0 {
			return "", ErrUnterminatedBody
		}
		p.pos += idx + 1
		return rest[:idx], nil
	}
	switch {
	case length > len(rest):
		return "", ErrWrongContentLength
	case length == len(rest):
		return "", ErrUnterminatedBody
	case rest[length] != 0:
		return "", ErrWrongContentLength
	}
	p.pos += length + 1
	return rest[:length], nil
}

var valueUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r", `\c`, ":")

var valueEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, ":", `\c`)

func unescapeValue(v string) (string, bool) {
	if !strings.Contains(v, `\`) {
		return v, true
	}
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' {
			continue
		}
		if i+1 >= len(v) {
			return "", false
		}
		switch v[i+1] {
		case '\\', 'n', 'r', 'c':
			i++
		default:
			return "", false
		}
	}
	return valueUnescaper.Replace(v), true
}
