// Package core is the OpenShaiya core library: archive access and packet
// cryptography for emulating the client/server protocol.
//
// The two subsystems live in their own packages and are re-exported here as
// the seams servers and tooling build against:
//
//   - [github.com/OpenShaiya/core/archive] reads the client's paired
//     index/data archive format and resolves logical paths to verified
//     file bytes.
//   - [github.com/OpenShaiya/core/packet] frames, signs, and encrypts
//     network messages, driven by the [github.com/OpenShaiya/core/crypt]
//     primitives shared with the archive layer.
//
// # Quick start
//
// Open an archive and read a file:
//
//	ws, err := core.Open("data.sah", "data.saf")
//	if err != nil {
//	    return err
//	}
//	defer ws.Close()
//	raw, err := ws.File("item/item.sdata")
//
// Frame traffic for one connection:
//
//	codec := packet.NewCodec(packet.VariantGame,
//	    packet.WithCipher(crypt.NewState(sessionKey)))
//	wire, err := codec.Encode(&packet.Frame{Opcode: 0x0B01, Payload: body})
//
// The library performs no network I/O and never logs, retries, or exits on
// its own; all failures are returned as typed errors for the caller's
// recovery policy.
package core
