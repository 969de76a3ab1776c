// Package packet encodes and decodes the length-prefixed, signed, optionally
// encrypted frames used for client/server messages.
//
// A [Codec] holds one connection's framing configuration and cipher session.
// It performs no I/O: callers driving a network read loop feed it buffered
// bytes and treat a nil frame with nil error from DecodeNext as the signal
// to read more. Any decode failure is terminal for the connection; a
// keystream desynchronization cannot be recovered without renegotiation, so
// the codec never retries mid-stream.
package packet
