package ffmpeg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/vidterm/vidterm/internal/config"
	"github.com/vidterm/vidterm/pkg/types"
)

// Processor wraps FFmpeg functionality. It is the only place command
// lines are constructed; callers hand it paths and filter specs.
type Processor struct {
	verbose bool
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
	}
}

// CheckInstalled verifies the ffmpeg and ffprobe binaries are reachable
// on PATH. The processor shells out to both.
func CheckInstalled() error {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			return errors.Errorf("%s not found in PATH\nInstall FFmpeg from: %s",
				bin, config.EngineDownloadURL)
		}
	}
	return nil
}

// Probe retrieves metadata about a video file
func (p *Processor) Probe(inputPath string) (*types.VideoMetadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "error probing video")
	}
	return parseMetadata(probe)
}

// Transform runs a single-filter re-encode of inputPath into outputPath.
// Video is encoded with the configured codec, audio is stream-copied.
func (p *Processor) Transform(inputPath string, filter types.FilterSpec, outputPath string) error {
	var diag bytes.Buffer

	stream := ffmpeg.Input(inputPath).
		Filter(filter.Name, ffmpeg.Args(filter.Args)).
		Output(outputPath, ffmpeg.KwArgs{
			"c:v":     config.VideoCodec,
			"c:a":     config.AudioCodec,
			"pix_fmt": config.PixelFormat,
			"threads": GetOptimalThreadCount(),
		}).
		OverWriteOutput().
		WithErrorOutput(&diag)

	if p.verbose {
		log.Printf("FFmpeg command: %s\n", stream.String())
	}

	if err := stream.Run(); err != nil {
		return errors.Wrapf(err, "%s failed: %s", filter.Name, tailDiagnostic(&diag))
	}

	return nil
}

// Segment cuts inputPath into fixed-duration pieces named
// {outputPrefix}_%03d{ext}. Timestamps restart at zero in each piece.
func (p *Processor) Segment(inputPath, outputPrefix string, segmentSeconds float64) error {
	pattern := fmt.Sprintf("%s_%%03d%s", outputPrefix, filepath.Ext(inputPath))
	var diag bytes.Buffer

	stream := ffmpeg.Input(inputPath).
		Output(pattern, ffmpeg.KwArgs{
			"f":                "segment",
			"segment_time":     segmentSeconds,
			"reset_timestamps": 1,
			// Key frames on segment boundaries so cuts land on the requested times
			"force_key_frames": fmt.Sprintf("expr:gte(t,n_forced*%g)", segmentSeconds),
			"c:v":              config.VideoCodec,
			"c:a":              config.AudioCodec,
			"pix_fmt":          config.PixelFormat,
			"threads":          GetOptimalThreadCount(),
		}).
		OverWriteOutput().
		WithErrorOutput(&diag)

	if p.verbose {
		log.Printf("FFmpeg command: %s\n", stream.String())
	}

	if err := stream.Run(); err != nil {
		return errors.Wrapf(err, "segment failed: %s", tailDiagnostic(&diag))
	}

	return nil
}

// parseMetadata extracts duration, dimensions and codec from ffprobe's
// JSON output.
func parseMetadata(probe string) (*types.VideoMetadata, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, errors.New("no streams found in video")
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, _ := s["codec_type"].(string); codecType == "video" {
			videoStream = s
			break
		}
	}

	if videoStream == nil {
		return nil, errors.New("no video stream found")
	}

	var duration float64

	// First try video stream duration
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}

	// If stream duration is not available, try format duration
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}

	// If still no duration found, try calculating from frames and frame rate
	if duration == 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil {
				var frameRate float64
				if rFrameRate, ok := videoStream["r_frame_rate"].(string); ok {
					if nums := strings.Split(rFrameRate, "/"); len(nums) == 2 {
						num, err1 := strconv.ParseFloat(nums[0], 64)
						den, err2 := strconv.ParseFloat(nums[1], 64)
						if err1 == nil && err2 == nil && den != 0 {
							frameRate = num / den
						}
					}
				}
				if frameRate > 0 {
					duration = frames / frameRate
				}
			}
		}
	}

	if duration == 0 {
		return nil, errors.New("could not determine video duration")
	}

	width, wok := videoStream["width"].(float64)
	height, hok := videoStream["height"].(float64)
	if !wok || !hok {
		return nil, errors.New("could not determine video dimensions")
	}
	codec, _ := videoStream["codec_name"].(string)

	return &types.VideoMetadata{
		Duration: duration,
		Width:    int(width),
		Height:   int(height),
		Codec:    codec,
	}, nil
}

// tailDiagnostic keeps the end of the engine's stderr; ffmpeg puts the
// actionable line last and the preceding banner is noise.
func tailDiagnostic(diag *bytes.Buffer) string {
	const keep = 5

	lines := strings.Split(strings.TrimSpace(diag.String()), "\n")
	if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}
	out := strings.TrimSpace(strings.Join(lines, "\n"))
	if out == "" {
		return "no diagnostic output"
	}
	return out
}

func GetOptimalThreadCount() int {
	cpuCount := runtime.NumCPU()
	// Use 75% of available cores to prevent overload
	return int(math.Max(1, float64(cpuCount)*0.75))
}
