package archive

// Index file binary layout. All multi-byte integers are little-endian; the
// layout is a hard interoperability boundary with the original client.
//
//	magic      u32  "SAH\x1A"
//	version    u32
//	entryCount u32
//	entryCount records:
//	  pathLen    u32  (bytes, may include trailing NUL padding)
//	  path       [pathLen]byte
//	  dataOffset u64
//	  storedSize u32
//	  realSize   u32
//	  flags      u32
//	  checksum   u32
const (
	// indexMagic is "SAH\x1A" read as a little-endian uint32.
	indexMagic = 0x1A484153

	// indexVersion is the only index format version in circulation.
	indexVersion = 1

	// indexHeaderSize is the fixed header length in bytes.
	indexHeaderSize = 12

	// entryFixedSize is the per-record length excluding the variable path
	// bytes: pathLen + dataOffset + storedSize + realSize + flags + checksum.
	entryFixedSize = 4 + 8 + 4 + 4 + 4 + 4
)

// Entry record flags.
const (
	// flagCompressed marks an entry whose stored bytes are a zlib stream.
	flagCompressed = 0x00000001
)
