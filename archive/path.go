package archive

import "strings"

// NormalizePath converts a user-provided logical path to the canonical form
// used as a directory table key.
//
// It performs the following transformations:
//   - Lowercases ASCII letters: "ITEM/Item.SData" → "item/item.sdata"
//   - Converts backslashes to slashes: `item\item.sdata` → "item/item.sdata"
//   - Strips leading and trailing slashes: "/item/" → "item"
//   - Collapses consecutive slashes: "item//a" → "item/a"
//
// Note: "." and ".." elements are preserved so validPath can reject them;
// the archive namespace is flat and has no notion of a parent directory.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}

	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" {
			result = append(result, strings.ToLower(part))
		}
	}
	return strings.Join(result, "/")
}

// validPath reports whether a normalized path stays inside the archive's
// flat namespace. Empty paths and paths with "." or ".." segments are
// rejected.
func validPath(p string) bool {
	if p == "" {
		return false
	}
	for _, part := range strings.Split(p, "/") {
		if part == "." || part == ".." {
			return false
		}
	}
	return true
}
