package archive

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zlib"

	"github.com/OpenShaiya/core/crypt"
)

// Builder assembles an index/data file pair bit-compatible with the reader.
// It is the seam server tooling and tests build archives against.
//
// Entries are written to the data output in insertion order. Adding a path
// that is already present replaces the earlier entry, mirroring the reader's
// last-entry-wins policy. Builder is not safe for concurrent use.
type Builder struct {
	entries []builderEntry
	index   map[string]int // normalized path -> entries index
}

type builderEntry struct {
	path     string
	stored   []byte
	realSize uint32
	flags    uint32
	checksum uint32
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// Add records a file to be stored uncompressed.
func (b *Builder) Add(path string, data []byte) error {
	if err := checkEntrySize(path, len(data)); err != nil {
		return err
	}
	return b.add(path, bytes.Clone(data), uint32(len(data)), 0, crypt.Checksum(data))
}

// AddCompressed records a file to be stored as a zlib stream.
func (b *Builder) AddCompressed(path string, data []byte) error {
	if err := checkEntrySize(path, len(data)); err != nil {
		return err
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return fmt.Errorf("create zlib writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("zlib write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zlib close: %w", err)
	}

	if err := checkEntrySize(path, buf.Len()); err != nil {
		return err
	}
	return b.add(path, buf.Bytes(), uint32(len(data)), flagCompressed, crypt.Checksum(data))
}

// checkEntrySize rejects content that does not fit the 32-bit size fields of
// an entry record before the conversion can truncate it silently.
func checkEntrySize(path string, n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: %s is %d bytes", ErrSizeOverflow, path, n)
	}
	return nil
}

func (b *Builder) add(path string, stored []byte, realSize, flags, checksum uint32) error {
	norm := NormalizePath(path)
	if !validPath(norm) {
		return fmt.Errorf("%w: path %q", ErrInvalidEntry, path)
	}

	entry := builderEntry{
		path:     norm,
		stored:   stored,
		realSize: realSize,
		flags:    flags,
		checksum: checksum,
	}
	if i, ok := b.index[norm]; ok {
		b.entries[i] = entry
	} else {
		b.index[norm] = len(b.entries)
		b.entries = append(b.entries, entry)
	}
	return nil
}

// Len returns the number of entries recorded so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// WriteTo writes the index to indexW and the data blob to dataW.
// The Builder remains usable afterwards.
func (b *Builder) WriteTo(indexW, dataW io.Writer) error {
	header := make([]byte, indexHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], indexMagic)
	binary.LittleEndian.PutUint32(header[4:8], indexVersion)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(b.entries)))
	if _, err := indexW.Write(header); err != nil {
		return fmt.Errorf("write index header: %w", err)
	}

	var offset uint64
	record := make([]byte, 0, 64)
	for _, entry := range b.entries {
		record = record[:0]
		record = binary.LittleEndian.AppendUint32(record, uint32(len(entry.path)))
		record = append(record, entry.path...)
		record = binary.LittleEndian.AppendUint64(record, offset)
		record = binary.LittleEndian.AppendUint32(record, uint32(len(entry.stored)))
		record = binary.LittleEndian.AppendUint32(record, entry.realSize)
		record = binary.LittleEndian.AppendUint32(record, entry.flags)
		record = binary.LittleEndian.AppendUint32(record, entry.checksum)
		if _, err := indexW.Write(record); err != nil {
			return fmt.Errorf("write index entry %s: %w", entry.path, err)
		}

		if _, err := dataW.Write(entry.stored); err != nil {
			return fmt.Errorf("write data for %s: %w", entry.path, err)
		}
		offset += uint64(len(entry.stored))
	}

	return nil
}

// WriteFiles writes the archive pair to the named files, creating or
// truncating them.
func (b *Builder) WriteFiles(indexPath, dataPath string) error {
	indexF, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer indexF.Close()

	dataF, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	defer dataF.Close()

	if err := b.WriteTo(indexF, dataF); err != nil {
		return err
	}
	if err := indexF.Close(); err != nil {
		return fmt.Errorf("close index file: %w", err)
	}
	if err := dataF.Close(); err != nil {
		return fmt.Errorf("close data file: %w", err)
	}
	return nil
}
