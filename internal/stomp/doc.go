// Package stomp implements the parts of STOMP 1.2 needed to talk to the
// network-events service.
//
//   - frame.go: Command and HeaderKey enums, the Frame type, parsing and rendering.
//   - parser.go: Parser, a stepwise reader over a single frame string.
//   - errors.go: frame errors (FrameError) and client errors (ClientError).
//   - client.go: Client, which connects, subscribes and routes MESSAGE frames
//     over any Transport.
//
// Frames are validated on the way in and on the way out: NewFrame renders the
// frame and parses the result, so a frame that exists is always well formed.
package stomp
