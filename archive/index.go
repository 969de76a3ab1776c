package archive

import (
	"encoding/binary"
	"log/slog"
	"strings"
)

// ParseIndex parses the raw bytes of an index file into a directory table.
//
// The magic signature is validated first (ErrBadMagic), then each entry
// record is decoded independently; a malformed or short record fails with a
// *ParseError wrapping ErrTruncated or ErrInvalidEntry and naming the offset
// at which decoding stopped. Duplicate normalized paths follow a
// last-entry-wins policy, since archive patches replace earlier entries.
func ParseIndex(data []byte) (*DirectoryTable, error) {
	return parseIndex(data, slog.New(slog.DiscardHandler))
}

func parseIndex(data []byte, logger *slog.Logger) (*DirectoryTable, error) {
	if len(data) < indexHeaderSize {
		return nil, parseErr(0, ErrTruncated, "index shorter than header (%d bytes)", len(data))
	}

	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != indexMagic {
		return nil, parseErr(0, ErrBadMagic, "0x%08X", magic)
	}
	if version := binary.LittleEndian.Uint32(data[4:8]); version != indexVersion {
		return nil, parseErr(4, ErrVersion, "%d", version)
	}
	count := binary.LittleEndian.Uint32(data[8:12])

	table := &DirectoryTable{
		entries: make(map[string]Entry, count),
		order:   make([]string, 0, count),
	}

	offset := int64(indexHeaderSize)
	for i := uint32(0); i < count; i++ {
		entry, next, err := parseEntry(data, offset)
		if err != nil {
			return nil, err
		}

		if _, dup := table.entries[entry.Path]; dup {
			logger.Debug("index entry replaced by later record", "path", entry.Path)
		} else {
			table.order = append(table.order, entry.Path)
		}
		table.entries[entry.Path] = entry

		offset = next
	}

	return table, nil
}

// parseEntry decodes one entry record starting at offset and returns the
// entry plus the offset of the next record.
func parseEntry(data []byte, offset int64) (Entry, int64, error) {
	remaining := int64(len(data)) - offset
	if remaining < 4 {
		return Entry{}, 0, parseErr(offset, ErrTruncated, "entry record header")
	}

	pathLen := int64(binary.LittleEndian.Uint32(data[offset:]))
	if pathLen > remaining-entryFixedSize {
		return Entry{}, 0, parseErr(offset, ErrTruncated, "entry path of %d bytes", pathLen)
	}

	pathStart := offset + 4
	raw := string(data[pathStart : pathStart+pathLen])
	// The original tooling NUL-pads path names to their declared length.
	raw = strings.TrimRight(raw, "\x00")

	path := NormalizePath(raw)
	if !validPath(path) {
		return Entry{}, 0, parseErr(offset, ErrInvalidEntry, "path %q", raw)
	}

	fixed := data[pathStart+pathLen:]
	entry := Entry{
		Path:       path,
		DataOffset: binary.LittleEndian.Uint64(fixed[0:8]),
		StoredSize: binary.LittleEndian.Uint32(fixed[8:12]),
		RealSize:   binary.LittleEndian.Uint32(fixed[12:16]),
		Checksum:   binary.LittleEndian.Uint32(fixed[20:24]),
	}
	flags := binary.LittleEndian.Uint32(fixed[16:20])
	entry.Compressed = flags&flagCompressed != 0

	if !entry.Compressed && entry.StoredSize != entry.RealSize {
		return Entry{}, 0, parseErr(offset, ErrInvalidEntry,
			"uncompressed entry %q stored %d real %d", path, entry.StoredSize, entry.RealSize)
	}

	return entry, offset + entryFixedSize + pathLen, nil
}
