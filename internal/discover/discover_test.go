package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestListVideosFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mp4", 10)
	writeFile(t, dir, "b.txt", 10)
	writeFile(t, dir, "c.MOV", 10)

	videos, err := ListVideos(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(videos))
	for _, v := range videos {
		names = append(names, v.Name)
	}
	assert.ElementsMatch(t, []string{"a.mp4", "c.MOV"}, names)
}

func TestListVideosEmptyDirectory(t *testing.T) {
	videos, err := ListVideos(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestListVideosSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.mp4"), 0o755))
	writeFile(t, dir, filepath.Join("nested.mp4", "inner.mp4"), 10)
	writeFile(t, dir, "top.mkv", 10)

	videos, err := ListVideos(dir)
	require.NoError(t, err)

	require.Len(t, videos, 1)
	assert.Equal(t, "top.mkv", videos[0].Name)
}

func TestListVideosRecordsPathAndSize(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "clip.avi", 2048)

	videos, err := ListVideos(dir)
	require.NoError(t, err)

	require.Len(t, videos, 1)
	assert.Equal(t, path, videos[0].Path)
	assert.Equal(t, int64(2048), videos[0].Size)
}

func TestListVideosAllKnownExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.mp4", "b.avi", "c.mov", "d.wmv", "e.mkv", "f.flv", "g.m4v"} {
		writeFile(t, dir, name, 1)
	}
	writeFile(t, dir, "notes.md", 1)
	writeFile(t, dir, "thumb.webp", 1)

	videos, err := ListVideos(dir)
	require.NoError(t, err)
	assert.Len(t, videos, 7)
}

func TestListVideosMissingDirectory(t *testing.T) {
	_, err := ListVideos(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
