package preset

import (
	"github.com/pkg/errors"

	"github.com/vidterm/vidterm/pkg/types"
)

// Resize is a selectable output resolution.
type Resize struct {
	Target types.Dimensions
	Label  string
}

var resizes = map[string]Resize{
	"1": {Target: types.Dimensions{Width: 1920, Height: 1080}, Label: "Full HD"},
	"2": {Target: types.Dimensions{Width: 1280, Height: 720}, Label: "HD"},
	"3": {Target: types.Dimensions{Width: 854, Height: 480}, Label: "SD"},
	"4": {Target: types.Dimensions{Width: 640, Height: 360}, Label: "Low"},
}

// GetResize returns the resize preset registered under key.
func GetResize(key string) (Resize, error) {
	r, ok := resizes[key]
	if !ok {
		return Resize{}, errors.Errorf("unknown resize preset: %s", key)
	}
	return r, nil
}

// ResizeKeys returns the resize preset keys in menu order. The custom
// key is not included.
func ResizeKeys() []string {
	return sortedKeys(resizes)
}
