package packet

import (
	"encoding/binary"
	"fmt"
)

// OpcodeLoginHandshake is the opcode of the handshake the login server sends
// a freshly connected client to deliver its RSA public key. The client's
// response carries the session secret that seeds crypt.NewState for all
// further traffic.
const OpcodeLoginHandshake = 0xA101

// Public key component lengths fixed by the client.
const (
	HandshakeExponentLength = 64
	HandshakeModulusLength  = 128
)

// handshakeSize is the full wire image: opcode, encrypted flag, two length
// bytes, exponent, and modulus.
const handshakeSize = 2 + 1 + 1 + 1 + HandshakeExponentLength + HandshakeModulusLength

// LoginHandshake is the login server's handshake request. It is always sent
// in clear with the VariantLogin signature, before any cipher state exists.
type LoginHandshake struct {
	// Encrypted tells the client whether to encrypt the session from here on.
	Encrypted bool

	// Exponent and Modulus are the RSA public key components, little-endian
	// byte order as the client expects them.
	Exponent [HandshakeExponentLength]byte
	Modulus  [HandshakeModulusLength]byte
}

// Marshal serializes the handshake to its fixed 197-byte wire image.
func (h *LoginHandshake) Marshal() []byte {
	out := make([]byte, handshakeSize)
	binary.LittleEndian.PutUint16(out[0:2], OpcodeLoginHandshake)
	if h.Encrypted {
		out[2] = 1
	}
	out[3] = HandshakeExponentLength
	out[4] = HandshakeModulusLength
	copy(out[5:5+HandshakeExponentLength], h.Exponent[:])
	copy(out[5+HandshakeExponentLength:], h.Modulus[:])
	return out
}

// Frame returns the handshake as a Frame ready for Codec.Encode.
func (h *LoginHandshake) Frame() *Frame {
	return &Frame{Opcode: OpcodeLoginHandshake, Payload: h.Marshal()[2:]}
}

// UnmarshalLoginHandshake parses a handshake wire image produced by Marshal.
func UnmarshalLoginHandshake(data []byte) (*LoginHandshake, error) {
	if len(data) != handshakeSize {
		return nil, fmt.Errorf("packet: handshake is %d bytes, want %d", len(data), handshakeSize)
	}
	if opcode := binary.LittleEndian.Uint16(data[0:2]); opcode != OpcodeLoginHandshake {
		return nil, fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, opcode)
	}
	if data[3] != HandshakeExponentLength || data[4] != HandshakeModulusLength {
		return nil, fmt.Errorf("packet: handshake key lengths %d/%d, want %d/%d",
			data[3], data[4], HandshakeExponentLength, HandshakeModulusLength)
	}

	h := &LoginHandshake{Encrypted: data[2] != 0}
	copy(h.Exponent[:], data[5:5+HandshakeExponentLength])
	copy(h.Modulus[:], data[5+HandshakeExponentLength:])
	return h, nil
}
