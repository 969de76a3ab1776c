package packet

import (
	"encoding/binary"
	"fmt"

	"github.com/OpenShaiya/core/crypt"
)

// Frame wire layout (little-endian, fixed by the existing protocol):
//
//	length    u32  total frame length, header included
//	opcode    u16
//	payload   [length - 6 - sig]byte
//	signature u8 or u16 depending on Variant
//
// The length prefix travels in clear; opcode, payload, and signature are
// encrypted when the codec carries cipher state. The signature is the low
// bits of crypt.Checksum over the plaintext opcode+payload.
const (
	// headerSize is the length prefix plus opcode.
	headerSize = 4 + 2

	// DefaultMaxFrameLength bounds the declared frame length accepted by a
	// codec. Larger declarations are malformed, not "buffer more".
	DefaultMaxFrameLength = 64 << 10
)

// Codec frames and unframes messages for one logical connection.
//
// A Codec owning cipher state is strictly sequential: the rolling state
// makes frame order significant, so callers serialize Encode and DecodeNext
// per connection and never share a Codec across connections.
type Codec struct {
	variant   Variant
	cipher    *crypt.State
	known     map[uint16]struct{}
	maxLength uint32
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithCipher attaches cipher session state. Without it frames travel in
// clear, as they do before the login handshake completes.
func WithCipher(state *crypt.State) CodecOption {
	return func(c *Codec) {
		c.cipher = state
	}
}

// WithKnownOpcodes restricts decoding to a set of opcodes; anything else
// fails with ErrUnknownOpcode. Without this option all opcodes decode.
func WithKnownOpcodes(opcodes ...uint16) CodecOption {
	return func(c *Codec) {
		c.known = make(map[uint16]struct{}, len(opcodes))
		for _, op := range opcodes {
			c.known[op] = struct{}{}
		}
	}
}

// WithMaxFrameLength overrides DefaultMaxFrameLength.
func WithMaxFrameLength(limit uint32) CodecOption {
	return func(c *Codec) {
		c.maxLength = limit
	}
}

// NewCodec creates a codec for one connection.
func NewCodec(variant Variant, opts ...CodecOption) *Codec {
	c := &Codec{variant: variant, maxLength: DefaultMaxFrameLength}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DecodeNext decodes the first complete frame buffered in buf.
//
// When buf holds fewer bytes than a header or the declared frame length, it
// returns (nil, 0, nil) — the need-more-bytes suspension signal — without
// touching cipher state; the caller buffers more input and retries. On
// success it returns the frame and the number of bytes consumed from buf,
// and advances the cipher state. On failure the connection is expected to be
// terminated by the caller; cipher state is left at its pre-call position.
func (c *Codec) DecodeNext(buf []byte) (*Frame, int, error) {
	if len(buf) < 4 {
		return nil, 0, nil
	}

	length := binary.LittleEndian.Uint32(buf)
	sigSize := c.variant.signatureSize()
	if length < uint32(headerSize+sigSize) || length > c.maxLength {
		return nil, 0, fmt.Errorf("%w: %d", ErrMalformedLength, length)
	}
	if !frameComplete(len(buf), length) {
		return nil, 0, nil
	}

	body := make([]byte, length-4)
	copy(body, buf[4:length])

	// Decrypt a snapshot so a failed decode leaves the session state where
	// it was; state is committed only once the frame fully verifies.
	state := c.cipher
	if state != nil {
		state = state.Copy()
		state.DecryptBlock(body)
	}

	signed := body[:len(body)-sigSize]
	if !verifySignature(signed, body[len(signed):], c.variant) {
		return nil, 0, ErrSignatureMismatch
	}

	opcode := binary.LittleEndian.Uint16(signed)
	if c.known != nil {
		if _, ok := c.known[opcode]; !ok {
			return nil, 0, fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, opcode)
		}
	}

	if c.cipher != nil {
		*c.cipher = *state
	}
	return &Frame{Opcode: opcode, Payload: signed[2:]}, int(length), nil
}

// Encode serializes, signs, and encrypts a frame, returning the wire bytes.
// It mutates cipher state identically to the peer's decoder so both ends'
// rolling state stays synchronized.
func (c *Codec) Encode(frame *Frame) ([]byte, error) {
	sigSize := c.variant.signatureSize()
	length := uint64(headerSize) + uint64(len(frame.Payload)) + uint64(sigSize)
	if length > uint64(c.maxLength) {
		return nil, fmt.Errorf("%w: %d", ErrMalformedLength, length)
	}

	out := make([]byte, length)
	binary.LittleEndian.PutUint32(out[0:4], uint32(length))
	binary.LittleEndian.PutUint16(out[4:6], frame.Opcode)
	copy(out[6:], frame.Payload)

	body := out[4:]
	signed := body[:len(body)-sigSize]
	appendSignature(signed, body[len(signed):], c.variant)

	if c.cipher != nil {
		c.cipher.EncryptBlock(body)
	}
	return out, nil
}

// frameComplete reports whether buffered bytes cover the declared frame
// length. Compared in uint64 so a buffer past 4GiB cannot truncate and
// masquerade as incomplete.
func frameComplete(buffered int, length uint32) bool {
	return uint64(buffered) >= uint64(length)
}

// verifySignature checks sig against the plaintext signed region.
func verifySignature(signed, sig []byte, variant Variant) bool {
	sum := crypt.Checksum(signed)
	if variant == VariantLogin {
		return sig[0] == byte(sum)
	}
	return binary.LittleEndian.Uint16(sig) == uint16(sum)
}

// appendSignature writes the signature of the signed region into sig.
func appendSignature(signed, sig []byte, variant Variant) {
	sum := crypt.Checksum(signed)
	if variant == VariantLogin {
		sig[0] = byte(sum)
		return
	}
	binary.LittleEndian.PutUint16(sig, uint16(sum))
}
