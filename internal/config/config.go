package config

// Encoding applied to transform and segment outputs. Video is re-encoded
// so filters and exact cut points apply; audio is passed through untouched.
const (
	VideoCodec  = "libx264"
	AudioCodec  = "copy"
	PixelFormat = "yuv420p"
)

const (
	// Subdirectory (relative to the input file) that receives split segments
	SegmentsDirName = "segments"

	// Install guidance shown when the engine is missing at startup
	EngineDownloadURL = "https://ffmpeg.org/download.html"
)

// VideoExtensions lists the file extensions discovery recognizes.
// Matching is case-insensitive; the set is fixed and not configurable.
var VideoExtensions = []string{".mp4", ".avi", ".mov", ".wmv", ".mkv", ".flv", ".m4v"}
