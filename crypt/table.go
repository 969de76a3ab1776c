package crypt

// Row offsets into the key schedule table. Each row holds 0x100 entries.
const (
	tableRowPath   = 0x300 // path hashing
	tableRowSeed   = 0x200 // session seed derivation
	tableRowStream = 0x400 // keystream generation
)

// cryptTable is the shared key schedule lookup table. The generator constants
// match the original client; changing them breaks wire compatibility.
var cryptTable [0x500]uint32

func init() {
	seed := uint32(0x00100001)

	for index1 := 0; index1 < 0x100; index1++ {
		index2 := index1
		for i := 0; i < 5; i++ {
			seed = (seed*125 + 3) % 0x2AAAAB
			temp1 := (seed & 0xFFFF) << 0x10

			seed = (seed*125 + 3) % 0x2AAAAB
			temp2 := seed & 0xFFFF

			cryptTable[index2] = temp1 | temp2
			index2 += 0x100
		}
	}
}
