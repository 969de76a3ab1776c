package core

import (
	"github.com/OpenShaiya/core/archive"
	"github.com/OpenShaiya/core/crypt"
	"github.com/OpenShaiya/core/packet"
)

// --- Re-exports from archive ---

// Workspace is the opened, queryable pairing of an index and data file.
type Workspace = archive.Workspace

// Entry describes one logical file in an archive.
type Entry = archive.Entry

// DirectoryTable maps normalized logical paths to entries.
type DirectoryTable = archive.DirectoryTable

// Cache provides read-through storage for decoded file bytes.
type Cache = archive.Cache

// Open opens a workspace from an (index path, data path) pair.
var Open = archive.Open

// ParseIndex parses raw index-file bytes into a directory table.
var ParseIndex = archive.ParseIndex

// Errors re-exported from archive.
var (
	ErrBadMagic         = archive.ErrBadMagic
	ErrNotFound         = archive.ErrNotFound
	ErrTruncated        = archive.ErrTruncated
	ErrCorrupt          = archive.ErrCorrupt
	ErrChecksumMismatch = archive.ErrChecksumMismatch
)

// --- Re-exports from crypt ---

// CipherState is one connection's rolling cipher state.
type CipherState = crypt.State

// NewCipherState derives cipher state from session key material.
var NewCipherState = crypt.NewState

// Checksum returns the 32-bit checksum recorded in archives and truncated
// into frame signatures.
var Checksum = crypt.Checksum

// --- Re-exports from packet ---

// Frame is one decoded network message.
type Frame = packet.Frame

// Codec frames and unframes messages for one logical connection.
type Codec = packet.Codec

// NewCodec creates a codec for one connection.
var NewCodec = packet.NewCodec
