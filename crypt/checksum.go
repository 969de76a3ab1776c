package crypt

// checksumTable is the CRC-32 lookup table (reflected polynomial 0xEDB88320,
// the variant recorded in archive indexes by the original tooling).
var checksumTable = func() [256]uint32 {
	var table [256]uint32
	const poly = 0xEDB88320
	for i := 0; i < 256; i++ {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}
	return table
}()

// Checksum returns the 32-bit checksum of data as recorded in archive entry
// records. Frame signatures use the low 8 or 16 bits of the same value.
func Checksum(data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, v := range data {
		crc = checksumTable[(crc^uint32(v))&0xFF] ^ (crc >> 8)
	}
	return ^crc
}
