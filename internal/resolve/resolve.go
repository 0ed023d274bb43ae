// Package resolve turns user selections and probed metadata into the
// concrete parameters an engine invocation needs: fitted crop geometry,
// segment counts, output paths, and validated custom input.
package resolve

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/vidterm/vidterm/internal/config"
	"github.com/vidterm/vidterm/pkg/types"
)

// CropPlan is the final geometry for one crop: the window size after any
// fit-down against the source, and the centered offsets.
type CropPlan struct {
	Width   int
	Height  int
	OffsetX int
	OffsetY int
	Scaled  bool
}

// FitCrop resolves a requested crop window against the source dimensions.
// A window larger than the source in either dimension is scaled by
// min(srcW/w, srcH/h), truncated to integers, so it fits while keeping
// its aspect ratio. Offsets center the window on the source.
func FitCrop(srcWidth, srcHeight int, target types.Dimensions) CropPlan {
	width := target.Width
	height := target.Height
	scaled := false

	if width > srcWidth || height > srcHeight {
		widthRatio := float64(srcWidth) / float64(width)
		heightRatio := float64(srcHeight) / float64(height)
		scaleFactor := math.Min(widthRatio, heightRatio)

		width = int(float64(width) * scaleFactor)
		height = int(float64(height) * scaleFactor)
		scaled = true
	}

	// Ensure dimensions are even (required for some codecs)
	width = width - (width % 2)
	height = height - (height % 2)

	return CropPlan{
		Width:   width,
		Height:  height,
		OffsetX: (srcWidth - width) / 2,
		OffsetY: (srcHeight - height) / 2,
		Scaled:  scaled,
	}
}

// SegmentCount returns how many segments a split produces: one per full
// segment duration plus one for any remainder, never less than one.
func SegmentCount(totalSeconds, segmentSeconds float64) int {
	if totalSeconds <= 0 || segmentSeconds <= 0 {
		return 1
	}
	return int(math.Ceil(totalSeconds / segmentSeconds))
}

// ResizedName derives the output path for a resize, alongside the input:
// {stem}_resized_{width}_{height}{ext}.
func ResizedName(inputPath string, target types.Dimensions) string {
	stem, ext := splitStem(inputPath)
	name := fmt.Sprintf("%s_resized_%d_%d%s", stem, target.Width, target.Height, ext)
	return filepath.Join(filepath.Dir(inputPath), name)
}

// CroppedName derives the output path for a crop, alongside the input:
// {stem}_cropped_{tag}{ext}.
func CroppedName(inputPath, tag string) string {
	stem, ext := splitStem(inputPath)
	name := fmt.Sprintf("%s_cropped_%s%s", stem, tag, ext)
	return filepath.Join(filepath.Dir(inputPath), name)
}

// SegmentsDir returns the directory that receives split segments,
// next to the input file.
func SegmentsDir(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), config.SegmentsDirName)
}

// SegmentPrefix derives the output prefix for a split. The engine appends
// the segment number and the input's extension.
func SegmentPrefix(inputPath string) string {
	stem, _ := splitStem(inputPath)
	return filepath.Join(SegmentsDir(inputPath), stem+"_segment")
}

func splitStem(path string) (stem, ext string) {
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}

// ParseDimensions validates user-typed width and height. Values must be
// positive even integers; encoders reject odd frame sizes.
func ParseDimensions(widthStr, heightStr string) (types.Dimensions, error) {
	width, err := parseEven("width", widthStr)
	if err != nil {
		return types.Dimensions{}, err
	}
	height, err := parseEven("height", heightStr)
	if err != nil {
		return types.Dimensions{}, err
	}
	return types.Dimensions{Width: width, Height: height}, nil
}

func parseEven(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Errorf("%s must be a whole number, got %q", name, value)
	}
	if n <= 0 {
		return 0, errors.Errorf("%s must be greater than zero, got %d", name, n)
	}
	if n%2 != 0 {
		return 0, errors.Errorf("%s must be an even number, got %d", name, n)
	}
	return n, nil
}

// ParseSeconds validates a user-typed segment duration in seconds.
// Decimal values are accepted.
func ParseSeconds(value string) (float64, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, errors.Errorf("duration must be a number, got %q", value)
	}
	if seconds <= 0 {
		return 0, errors.Errorf("duration must be greater than zero, got %g", seconds)
	}
	return seconds, nil
}
