package preset

import (
	"github.com/pkg/errors"

	"github.com/vidterm/vidterm/pkg/types"
)

// Crop is a selectable social-media crop window. Tag is the
// filename-safe suffix appended to cropped outputs.
type Crop struct {
	Target types.Dimensions
	Label  string
	Tag    string
}

var crops = map[string]Crop{
	"1": {
		Target: types.Dimensions{Width: 1080, Height: 1920},
		Label:  "TikTok/Instagram Stories (9:16)",
		Tag:    "tiktok_stories_9x16",
	},
	"2": {
		Target: types.Dimensions{Width: 1080, Height: 1080},
		Label:  "Instagram Post (1:1)",
		Tag:    "instagram_post_1x1",
	},
	"3": {
		Target: types.Dimensions{Width: 1200, Height: 630},
		Label:  "Facebook Post (1.91:1)",
		Tag:    "facebook_post_1_91x1",
	},
	"4": {
		Target: types.Dimensions{Width: 1080, Height: 608},
		Label:  "YouTube Thumbnail (16:9)",
		Tag:    "youtube_thumbnail_16x9",
	},
	"5": {
		Target: types.Dimensions{Width: 1080, Height: 1350},
		Label:  "Instagram Feed (4:5)",
		Tag:    "instagram_feed_4x5",
	},
}

// GetCrop returns the crop preset registered under key.
func GetCrop(key string) (Crop, error) {
	c, ok := crops[key]
	if !ok {
		return Crop{}, errors.Errorf("unknown crop preset: %s", key)
	}
	return c, nil
}

// CropKeys returns the crop preset keys in menu order. The custom key is
// not included.
func CropKeys() []string {
	return sortedKeys(crops)
}
