package types

import (
	"fmt"
	"strings"
)

// Operation identifies one of the video operations the tool performs.
type Operation string

const (
	OperationResize Operation = "resize"
	OperationSplit  Operation = "split"
	OperationCrop   Operation = "crop"
)

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
}

// Dimensions represents width and height of a video
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// FilterSpec describes a single ffmpeg filter invocation by name and
// positional arguments. The engine adapter is the only consumer that
// turns it into a command line.
type FilterSpec struct {
	Name string
	Args []string
}

func (f FilterSpec) String() string {
	return fmt.Sprintf("%s=%s", f.Name, strings.Join(f.Args, ":"))
}

// VideoFile is a single video discovered in the working directory.
type VideoFile struct {
	Name string
	Path string
	Size int64
}

// SizeMB returns the file size in megabytes.
func (v VideoFile) SizeMB() float64 {
	return float64(v.Size) / 1024 / 1024
}
