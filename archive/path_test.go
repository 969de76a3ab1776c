package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "item/item.sdata", "item/item.sdata"},
		{"upper case", "ITEM/Item.SData", "item/item.sdata"},
		{"backslashes", `item\item.sdata`, "item/item.sdata"},
		{"mixed separators", `Item\sub/File.data`, "item/sub/file.data"},
		{"leading slash", "/item/item.sdata", "item/item.sdata"},
		{"trailing slash", "item/", "item"},
		{"consecutive slashes", "item//sub", "item/sub"},
		{"empty", "", ""},
		{"only slashes", "///", ""},
		// Traversal segments are preserved for validPath to reject.
		{"dotdot", "../item", "../item"},
		{"dot in middle", "item/./file", "item/./file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.input))
		})
	}
}

func TestValidPath(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"item/item.sdata", true},
		{"file", true},
		{"", false},
		{"..", false},
		{"../item", false},
		{"item/../other", false},
		{"item/.", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, validPath(tt.input), "validPath(%q)", tt.input)
	}
}
