package crypt

// HashPath computes the table-driven hash of a logical archive path.
//
// Hashing is case-insensitive and treats '\' and '/' as the same separator,
// matching archive path lookup semantics. Used for cache keys and by tooling
// that matches obfuscated names.
func HashPath(path string) uint32 {
	seed1 := uint32(0x7FED7FED)
	seed2 := uint32(0xEEEEEEEE)

	for i := 0; i < len(path); i++ {
		ch := uint32(path[i])
		if ch >= 'a' && ch <= 'z' {
			ch -= 0x20
		}
		if ch == '\\' {
			ch = '/'
		}

		seed1 = cryptTable[tableRowPath+ch] ^ (seed1 + seed2)
		seed2 = ch + seed1 + seed2 + (seed2 << 5) + 3
	}

	return seed1
}
