package packet

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenShaiya/core/crypt"
)

func sessionKey() []byte {
	key := make([]byte, 16)
	for i := range key {
		key[i] = byte(i*7 + 3)
	}
	return key
}

func TestEncodeDecodeRoundTripPlaintext(t *testing.T) {
	for _, variant := range []Variant{VariantLogin, VariantGame} {
		enc := NewCodec(variant)
		dec := NewCodec(variant)

		frame := &Frame{Opcode: 0x0B01, Payload: []byte("character list request")}
		wire, err := enc.Encode(frame)
		require.NoError(t, err)

		got, n, err := dec.DecodeNext(wire)
		require.NoError(t, err)
		assert.Equal(t, len(wire), n)
		assert.Equal(t, frame.Opcode, got.Opcode)
		assert.Equal(t, frame.Payload, got.Payload)
	}
}

func TestEncodeDecodeRoundTripEncrypted(t *testing.T) {
	enc := NewCodec(VariantGame, WithCipher(crypt.NewState(sessionKey())))
	dec := NewCodec(VariantGame, WithCipher(crypt.NewState(sessionKey())))

	// Two frames in sequence: both ends advance rolling state identically,
	// so the second frame still round-trips.
	frames := []*Frame{
		{Opcode: 0x0101, Payload: []byte("first frame payload")},
		{Opcode: 0x0202, Payload: []byte("second, depends on first")},
	}
	for _, frame := range frames {
		wire, err := enc.Encode(frame)
		require.NoError(t, err)

		// Ciphertext on the wire: body must differ from plaintext.
		assert.NotEqual(t, frame.Payload, wire[6:6+len(frame.Payload)])

		got, n, err := dec.DecodeNext(wire)
		require.NoError(t, err)
		assert.Equal(t, len(wire), n)
		assert.Equal(t, frame.Opcode, got.Opcode)
		assert.Equal(t, frame.Payload, got.Payload)
	}
}

func TestDecodeNextNeedMoreBytes(t *testing.T) {
	enc := NewCodec(VariantGame, WithCipher(crypt.NewState(sessionKey())))
	dec := NewCodec(VariantGame, WithCipher(crypt.NewState(sessionKey())))

	wire, err := enc.Encode(&Frame{Opcode: 0x0101, Payload: []byte("partial delivery")})
	require.NoError(t, err)

	// Fewer bytes than the header, then fewer than the declared length:
	// both are the suspension signal, not an error, and must not consume
	// cipher state.
	for _, cut := range []int{0, 1, 3, 4, len(wire) - 1} {
		frame, n, err := dec.DecodeNext(wire[:cut])
		require.NoError(t, err, "cut at %d", cut)
		assert.Nil(t, frame)
		assert.Zero(t, n)
	}

	// The full buffer still decodes, proving no partial state was consumed.
	frame, n, err := dec.DecodeNext(wire)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
	assert.Equal(t, []byte("partial delivery"), frame.Payload)
}

func TestDecodeNextMultipleFramesInBuffer(t *testing.T) {
	enc := NewCodec(VariantLogin)
	dec := NewCodec(VariantLogin)

	a, err := enc.Encode(&Frame{Opcode: 1, Payload: []byte("aa")})
	require.NoError(t, err)
	b, err := enc.Encode(&Frame{Opcode: 2, Payload: []byte("bbbb")})
	require.NoError(t, err)

	buf := append(bytes.Clone(a), b...)

	first, n, err := dec.DecodeNext(buf)
	require.NoError(t, err)
	assert.Equal(t, len(a), n)
	assert.Equal(t, uint16(1), first.Opcode)

	second, n, err := dec.DecodeNext(buf[n:])
	require.NoError(t, err)
	assert.Equal(t, len(b), n)
	assert.Equal(t, uint16(2), second.Opcode)
	assert.Equal(t, []byte("bbbb"), second.Payload)
}

func TestDecodeNextMalformedLength(t *testing.T) {
	dec := NewCodec(VariantGame)

	// Declared length below the minimum frame.
	tiny := binary.LittleEndian.AppendUint32(nil, 3)
	_, _, err := dec.DecodeNext(tiny)
	assert.ErrorIs(t, err, ErrMalformedLength)

	// Declared length beyond the codec limit is malformed, not "buffer more".
	small := NewCodec(VariantGame, WithMaxFrameLength(32))
	huge := binary.LittleEndian.AppendUint32(nil, 1<<20)
	_, _, err = small.DecodeNext(huge)
	assert.ErrorIs(t, err, ErrMalformedLength)
}

func TestDecodeNextSignatureMismatch(t *testing.T) {
	enc := NewCodec(VariantGame)
	dec := NewCodec(VariantGame)

	wire, err := enc.Encode(&Frame{Opcode: 0x0101, Payload: []byte("payload")})
	require.NoError(t, err)
	wire[7] ^= 0xFF

	_, _, err = dec.DecodeNext(wire)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestDecodeNextCorruptCiphertextLeavesStateIntact(t *testing.T) {
	enc := NewCodec(VariantGame, WithCipher(crypt.NewState(sessionKey())))
	dec := NewCodec(VariantGame, WithCipher(crypt.NewState(sessionKey())))

	wire, err := enc.Encode(&Frame{Opcode: 0x0101, Payload: []byte("payload")})
	require.NoError(t, err)

	corrupted := bytes.Clone(wire)
	corrupted[8] ^= 0xFF
	_, _, err = dec.DecodeNext(corrupted)
	require.ErrorIs(t, err, ErrSignatureMismatch)

	// State was not advanced by the failed decode, so the intact copy of
	// the same frame still decodes.
	frame, _, err := dec.DecodeNext(wire)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), frame.Payload)
}

func TestDecodeNextUnknownOpcode(t *testing.T) {
	enc := NewCodec(VariantGame)
	dec := NewCodec(VariantGame, WithKnownOpcodes(0x0101, 0x0102))

	known, err := enc.Encode(&Frame{Opcode: 0x0102, Payload: []byte("ok")})
	require.NoError(t, err)
	_, _, err = dec.DecodeNext(known)
	require.NoError(t, err)

	unknown, err := enc.Encode(&Frame{Opcode: 0x0FFF, Payload: []byte("no")})
	require.NoError(t, err)
	_, _, err = dec.DecodeNext(unknown)
	assert.ErrorIs(t, err, ErrUnknownOpcode)
}

func TestEncodeFrameTooLarge(t *testing.T) {
	enc := NewCodec(VariantGame, WithMaxFrameLength(16))
	_, err := enc.Encode(&Frame{Opcode: 1, Payload: make([]byte, 64)})
	assert.ErrorIs(t, err, ErrMalformedLength)
}

func TestEncodeEmptyPayload(t *testing.T) {
	enc := NewCodec(VariantLogin)
	dec := NewCodec(VariantLogin)

	wire, err := enc.Encode(&Frame{Opcode: 0x0A00})
	require.NoError(t, err)
	assert.Len(t, wire, headerSize+1)

	frame, _, err := dec.DecodeNext(wire)
	require.NoError(t, err)
	assert.Empty(t, frame.Payload)
}

func TestDecodePayloadIsOwnedCopy(t *testing.T) {
	enc := NewCodec(VariantLogin)
	dec := NewCodec(VariantLogin)

	wire, err := enc.Encode(&Frame{Opcode: 1, Payload: []byte("owned")})
	require.NoError(t, err)

	frame, _, err := dec.DecodeNext(wire)
	require.NoError(t, err)

	// Clobbering the input buffer must not affect the decoded payload.
	for i := range wire {
		wire[i] = 0
	}
	assert.Equal(t, []byte("owned"), frame.Payload)
}

func TestFrameCompleteLargeBuffer(t *testing.T) {
	assert.False(t, frameComplete(5, 16))
	assert.True(t, frameComplete(16, 16))

	if math.MaxInt <= math.MaxUint32 {
		t.Skip("needs 64-bit int to express a buffer past 4GiB")
	}

	// A buffer past 4GiB must not wrap around and read as incomplete.
	huge := uint64(1) << 32
	assert.True(t, frameComplete(int(huge), 16))
	assert.True(t, frameComplete(int(huge+7), 16))
}
