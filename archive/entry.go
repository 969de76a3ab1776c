package archive

import "iter"

// Entry describes one logical file in the archive. Entries are immutable
// once parsed and are owned by the directory table.
type Entry struct {
	// Path is the normalized logical path ("item/item.sdata").
	Path string

	// DataOffset is the byte offset of the stored bytes in the data file.
	DataOffset uint64

	// StoredSize is the size in bytes as stored in the data file.
	// For compressed entries this is the compressed size.
	StoredSize uint32

	// RealSize is the size of the file content after decompression.
	// Equal to StoredSize for uncompressed entries.
	RealSize uint32

	// Compressed reports whether the stored bytes are a zlib stream.
	Compressed bool

	// Checksum is the crypt.Checksum of the final (decompressed) bytes.
	Checksum uint32
}

// DirectoryTable maps normalized logical paths to entries. It is built once
// by ParseIndex and read-only thereafter, so it is safe for concurrent
// lookups without locking.
type DirectoryTable struct {
	entries map[string]Entry
	order   []string // normalized paths in index order, duplicates collapsed
}

// Lookup returns the entry for a logical path. The path is normalized before
// lookup, so lookups are case-insensitive and accept either separator.
func (t *DirectoryTable) Lookup(path string) (Entry, bool) {
	e, ok := t.entries[NormalizePath(path)]
	return e, ok
}

// Len returns the number of entries in the table.
func (t *DirectoryTable) Len() int {
	return len(t.entries)
}

// Entries returns an iterator over all entries in index order.
func (t *DirectoryTable) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, path := range t.order {
			if !yield(t.entries[path]) {
				return
			}
		}
	}
}

// EntriesWithPrefix returns an iterator over entries under a virtual folder.
// The prefix is normalized like a lookup path; an empty prefix yields every
// entry.
func (t *DirectoryTable) EntriesWithPrefix(prefix string) iter.Seq[Entry] {
	norm := NormalizePath(prefix)
	if norm != "" {
		norm += "/"
	}
	return func(yield func(Entry) bool) {
		for _, path := range t.order {
			if len(path) >= len(norm) && path[:len(norm)] == norm {
				if !yield(t.entries[path]) {
					return
				}
			}
		}
	}
}
