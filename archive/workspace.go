package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/sync/singleflight"

	"github.com/OpenShaiya/core/archive/internal/sizing"
	"github.com/OpenShaiya/core/crypt"
)

// DefaultMaxFileSize is the default per-file size limit (256MB). The limit
// guards against hostile indexes declaring absurd sizes; no legitimate
// client archive approaches it.
const DefaultMaxFileSize = 256 << 20

// Workspace is the opened, queryable pairing of an index file and its data
// file. The directory table and the data file handle are safe for concurrent
// readers once Open returns; nothing mutates after construction.
type Workspace struct {
	table       *DirectoryTable
	data        *os.File
	dataSize    int64
	maxFileSize uint64
	cache       Cache
	group       singleflight.Group
	logger      *slog.Logger
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets a logger for debug diagnostics such as duplicate index
// paths. By default diagnostics are discarded; the workspace never logs at
// error level and never retries on its own.
func WithLogger(logger *slog.Logger) Option {
	return func(ws *Workspace) {
		ws.logger = logger
	}
}

// WithMaxFileSize limits the maximum per-file size (stored and real).
// Set limit to 0 to disable the limit.
func WithMaxFileSize(limit uint64) Option {
	return func(ws *Workspace) {
		ws.maxFileSize = limit
	}
}

// WithCache enables read-through caching of decoded file bytes.
//
// Cached reads return byte-for-byte identical copies; concurrent fetches of
// the same path are deduplicated.
func WithCache(c Cache) Option {
	return func(ws *Workspace) {
		ws.cache = c
	}
}

// log returns the logger, falling back to a discard logger if nil.
func (ws *Workspace) log() *slog.Logger {
	if ws.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ws.logger
}

// Open reads and fully parses the index file, then opens the paired data
// file for the lifetime of the returned Workspace.
//
// Parsing is eager: the directory table is built once up front so later
// lookups are O(1) map access with no I/O beyond the final read. The data
// file stays open rather than being reopened per call; a game server
// resolves file data frequently and per-call opens would exhaust
// descriptors.
func Open(indexPath, dataPath string, opts ...Option) (*Workspace, error) {
	ws := &Workspace{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(ws)
	}

	indexData, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}

	table, err := parseIndex(indexData, ws.log())
	if err != nil {
		return nil, fmt.Errorf("parse index %s: %w", indexPath, err)
	}

	data, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	info, err := data.Stat()
	if err != nil {
		data.Close()
		return nil, fmt.Errorf("stat data file: %w", err)
	}

	ws.table = table
	ws.data = data
	ws.dataSize = info.Size()
	return ws, nil
}

// File resolves a logical path to its file bytes.
//
// The path is normalized (case-insensitive, either separator), looked up in
// the directory table, read from the data file, decompressed when the entry
// is compressed, and verified against the recorded checksum. The returned
// slice is an owned, independent copy that remains valid after Close.
//
// Misses return ErrNotFound; every other failure reports archive
// inconsistency (ErrTruncated, ErrCorrupt, ErrChecksumMismatch).
func (ws *Workspace) File(path string) ([]byte, error) {
	entry, ok := ws.table.Lookup(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if ws.cache == nil {
		return ws.readEntry(entry)
	}

	if data, ok := ws.cache.Get(entry.Path); ok {
		ws.log().Debug("file cache hit", "path", entry.Path)
		return data, nil
	}
	ws.log().Debug("file cache miss", "path", entry.Path)

	result, err, _ := ws.group.Do(entry.Path, func() (any, error) {
		// Double-check under the flight lock.
		if data, ok := ws.cache.Get(entry.Path); ok {
			return data, nil
		}
		data, err := ws.readEntry(entry)
		if err != nil {
			return nil, err
		}
		ws.cache.Put(entry.Path, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	// Hand each caller its own copy; singleflight shares one result value.
	shared := result.([]byte)
	out := make([]byte, len(shared))
	copy(out, shared)
	return out, nil
}

// Stat returns the entry metadata for a logical path without any I/O.
func (ws *Workspace) Stat(path string) (Entry, bool) {
	return ws.table.Lookup(path)
}

// Entries returns an iterator over all entries in index order.
func (ws *Workspace) Entries() iter.Seq[Entry] {
	return ws.table.Entries()
}

// EntriesWithPrefix returns an iterator over entries under a virtual folder.
func (ws *Workspace) EntriesWithPrefix(prefix string) iter.Seq[Entry] {
	return ws.table.EntriesWithPrefix(prefix)
}

// Len returns the number of entries in the workspace.
func (ws *Workspace) Len() int {
	return ws.table.Len()
}

// Close closes the underlying data file. Byte slices previously returned by
// File remain valid.
func (ws *Workspace) Close() error {
	if ws.data == nil {
		return nil
	}
	err := ws.data.Close()
	ws.data = nil
	return err
}

// readEntry reads, decompresses, and verifies one entry from the data file.
func (ws *Workspace) readEntry(entry Entry) ([]byte, error) {
	if ws.maxFileSize > 0 {
		if uint64(entry.StoredSize) > ws.maxFileSize || uint64(entry.RealSize) > ws.maxFileSize {
			return nil, fmt.Errorf("%s: %w", entry.Path, ErrSizeOverflow)
		}
	}

	end, ok := sizing.AddUint64(entry.DataOffset, uint64(entry.StoredSize))
	if !ok || end > uint64(ws.dataSize) {
		return nil, fmt.Errorf("%s: entry range %d+%d exceeds data file size %d: %w",
			entry.Path, entry.DataOffset, entry.StoredSize, ws.dataSize, ErrCorrupt)
	}
	offset, err := sizing.ToInt64(entry.DataOffset, ErrSizeOverflow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", entry.Path, err)
	}

	stored := make([]byte, entry.StoredSize)
	if _, err := ws.data.ReadAt(stored, offset); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%s: short read: %w", entry.Path, ErrTruncated)
		}
		return nil, fmt.Errorf("read %s: %w", entry.Path, err)
	}

	content := stored
	if entry.Compressed {
		content, err = decompress(stored, entry.RealSize)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Path, err)
		}
	}

	if sum := crypt.Checksum(content); sum != entry.Checksum {
		return nil, fmt.Errorf("%s: stored 0x%08X computed 0x%08X: %w",
			entry.Path, entry.Checksum, sum, ErrChecksumMismatch)
	}

	return content, nil
}

// decompress inflates a zlib stream to exactly realSize bytes. A stream that
// fails to decode or decodes to a different length reports corruption.
func decompress(stored []byte, realSize uint32) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(stored))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer zr.Close()

	content := make([]byte, realSize)
	if _, err := io.ReadFull(zr, content); err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}

	// A stream with trailing content decodes to more than RealSize bytes.
	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n != 0 {
		return nil, fmt.Errorf("%w: decompressed size exceeds real size %d", ErrCorrupt, realSize)
	}

	return content, nil
}
