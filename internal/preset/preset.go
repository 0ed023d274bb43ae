// Package preset holds the fixed lookup tables behind the interactive
// menus: output resolutions for resizing, social-media crop windows, and
// segment durations for splitting. Tables are static and read-only;
// every table reserves one key for a custom, user-typed value.
package preset

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CustomTag is the filename tag used when a crop window was entered
// manually instead of picked from the table.
const CustomTag = "custom"

// Menu keys that switch a flow to custom input instead of a table entry.
const (
	ResizeCustomKey = "5"
	CropCustomKey   = "6"
	SplitCustomKey  = "5"
)

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
