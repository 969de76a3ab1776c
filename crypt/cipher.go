package crypt

// State is the rolling cipher state for one logical connection.
//
// The keystream register evolves deterministically per byte while the seed
// register folds in plaintext, so decrypting frame N requires having
// processed frames 1..N-1 in order on the same State. A State must never be
// shared across concurrent connections; callers serialize encrypt/decrypt
// calls per connection.
type State struct {
	seed1 uint32
	seed2 uint32
}

// NewState derives cipher state from session key material, typically the
// secret exchanged during the login handshake. Key material is explicit so
// independent sessions with different keys coexist in one process.
func NewState(key []byte) *State {
	seed1 := uint32(0x7FED7FED)
	seed2 := uint32(0xEEEEEEEE)

	for _, b := range key {
		seed1 = cryptTable[tableRowSeed+uint32(b)] ^ (seed1 + seed2)
		seed2 = uint32(b) + seed1 + seed2 + (seed2 << 5) + 3
	}

	return &State{seed1: seed1, seed2: 0xEEEEEEEE}
}

// Copy returns an independent snapshot of the state. The packet codec uses
// snapshots to keep a failed or partial decode from advancing the session.
func (s *State) Copy() *State {
	c := *s
	return &c
}

// EncryptBlock transforms plaintext to ciphertext in place, advancing the
// state by one byte per input byte.
func (s *State) EncryptBlock(data []byte) {
	for i, plain := range data {
		s.seed2 += cryptTable[tableRowStream+(s.seed1&0xFF)]
		data[i] = plain ^ byte(s.seed1+s.seed2)
		s.seed1 = ((^s.seed1 << 0x15) + 0x11111111) | (s.seed1 >> 0x0B)
		s.seed2 = uint32(plain) + s.seed2 + (s.seed2 << 5) + 3
	}
}

// DecryptBlock is the inverse of EncryptBlock and advances the state
// identically, keeping both ends of a connection synchronized.
func (s *State) DecryptBlock(data []byte) {
	for i, encrypted := range data {
		s.seed2 += cryptTable[tableRowStream+(s.seed1&0xFF)]
		plain := encrypted ^ byte(s.seed1+s.seed2)
		s.seed1 = ((^s.seed1 << 0x15) + 0x11111111) | (s.seed1 >> 0x0B)
		s.seed2 = uint32(plain) + s.seed2 + (s.seed2 << 5) + 3
		data[i] = plain
	}
}
