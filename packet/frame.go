package packet

import "errors"

// Sentinel errors.
var (
	// ErrMalformedLength is returned when a frame header declares a length
	// smaller than the minimum frame or larger than the codec's limit.
	ErrMalformedLength = errors.New("packet: malformed frame length")

	// ErrSignatureMismatch is returned when a decoded frame's signature does
	// not match its contents, indicating corruption or cipher desync.
	ErrSignatureMismatch = errors.New("packet: signature mismatch")

	// ErrUnknownOpcode is returned when a decoded opcode is not in the
	// codec's configured opcode set.
	ErrUnknownOpcode = errors.New("packet: unknown opcode")
)

// Variant selects the signature width of the protocol variant spoken on a
// connection. Field widths are fixed by the existing protocol.
type Variant int

const (
	// VariantLogin is the login-server protocol with an 8-bit signature.
	VariantLogin Variant = iota

	// VariantGame is the game-server protocol with a 16-bit signature.
	VariantGame
)

// signatureSize returns the trailing signature width in bytes.
func (v Variant) signatureSize() int {
	if v == VariantLogin {
		return 1
	}
	return 2
}

// Frame is one decoded network message. Frames are transient values
// constructed per message; Payload is an owned copy.
type Frame struct {
	Opcode  uint16
	Payload []byte
}
