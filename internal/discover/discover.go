package discover

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/vidterm/vidterm/internal/config"
	"github.com/vidterm/vidterm/pkg/types"
)

// ListVideos returns the video files directly inside dir. Subdirectories
// are not descended into; extensions are matched case-insensitively
// against the fixed set in config. An empty directory yields an empty
// slice, not an error.
func ListVideos(dir string) ([]types.VideoFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading directory %s", dir)
	}

	videos := make([]types.VideoFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isVideo(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// File vanished between the directory read and the stat
			continue
		}
		videos = append(videos, types.VideoFile{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}

	return videos, nil
}

func isVideo(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range config.VideoExtensions {
		if ext == want {
			return true
		}
	}
	return false
}
