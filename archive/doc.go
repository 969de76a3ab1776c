// Package archive reads and writes the client's paired index/data archive
// format ("data.sah" + "data.saf").
//
// A [Workspace] is the opened, queryable pairing of an index file and its
// data file. The index is parsed eagerly at open time into an immutable
// directory table, so resolving a logical path to file bytes costs one map
// lookup plus one data-file read:
//
//	ws, err := archive.Open("data.sah", "data.saf")
//	if err != nil {
//	    return err
//	}
//	defer ws.Close()
//	raw, err := ws.File("item/item.sdata")
//
// Logical paths are case-insensitive and accept either slash as separator.
// Returned byte slices are owned by the caller and remain valid after the
// workspace is closed.
//
// [Builder] produces index/data pairs bit-compatible with the reader and is
// the seam server tooling builds against.
package archive
