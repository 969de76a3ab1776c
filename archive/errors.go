package archive

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers distinguish expected misses (ErrNotFound) from
// archive inconsistency (everything else): a server treats the former as a
// normal lookup miss and the latter as a fatal integrity problem.
var (
	// ErrBadMagic is returned when the index file does not begin with the
	// archive magic signature.
	ErrBadMagic = errors.New("archive: bad index magic")

	// ErrVersion is returned when the index declares an unsupported version.
	ErrVersion = errors.New("archive: unsupported index version")

	// ErrTruncated is returned when the index or a stored entry ends before
	// its declared length.
	ErrTruncated = errors.New("archive: truncated")

	// ErrInvalidEntry is returned when an index entry record is structurally
	// invalid or its path escapes the archive namespace.
	ErrInvalidEntry = errors.New("archive: invalid entry")

	// ErrNotFound is returned when a logical path has no entry.
	ErrNotFound = errors.New("archive: file not found")

	// ErrCorrupt is returned when stored data is inconsistent with its entry:
	// out-of-range offsets, failed decompression, or a decompressed size that
	// does not match the recorded real size.
	ErrCorrupt = errors.New("archive: corrupt data")

	// ErrChecksumMismatch is returned when file bytes do not match the
	// checksum recorded in the index.
	ErrChecksumMismatch = errors.New("archive: checksum mismatch")

	// ErrSizeOverflow is returned when byte counts exceed supported limits.
	ErrSizeOverflow = errors.New("archive: size overflow")
)

// ParseError describes an index parse failure with the byte offset at which
// decoding stopped. It wraps one of the sentinel errors above.
type ParseError struct {
	Offset int64 // byte offset into the index where parsing failed
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse index at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(offset int64, err error, format string, args ...any) *ParseError {
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{err}, args...)...)
	}
	return &ParseError{Offset: offset, Err: err}
}
