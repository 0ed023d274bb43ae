// Package videoprocessor runs single video operations end to end: it
// turns a request into engine invocations, derives output paths, cleans
// up after failures, and reports what was produced.
package videoprocessor

import (
	"log"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vidterm/vidterm/internal/ffmpeg"
	"github.com/vidterm/vidterm/internal/preset"
	"github.com/vidterm/vidterm/internal/resolve"
	"github.com/vidterm/vidterm/pkg/types"
)

// Engine is the video engine the runner drives. internal/ffmpeg provides
// the production implementation; tests substitute recording fakes.
type Engine interface {
	// Probe returns duration, dimensions and codec of a video file.
	Probe(inputPath string) (*types.VideoMetadata, error)

	// Transform re-encodes inputPath into outputPath with one filter
	// applied, overwriting any existing output.
	Transform(inputPath string, filter types.FilterSpec, outputPath string) error

	// Segment cuts inputPath into fixed-duration pieces named
	// {outputPrefix}_%03d{ext}.
	Segment(inputPath, outputPrefix string, segmentSeconds float64) error
}

// Request describes one operation on one input file. Meta carries
// metadata probed earlier in the flow; when nil, operations that need it
// probe again.
type Request struct {
	Op        types.Operation
	InputPath string
	Meta      *types.VideoMetadata

	// Target is the output resolution for resizes and the requested
	// window for crops.
	Target types.Dimensions

	// Tag is the filename tag for cropped outputs. Empty means a
	// custom window.
	Tag string

	// SegmentSeconds is the segment length for splits.
	SegmentSeconds float64
}

// Result reports what an operation produced. Size and resolution come
// from re-inspecting the output; when that fails they stay zero and the
// operation still counts as succeeded.
type Result struct {
	Op         types.Operation
	InputPath  string
	OutputPath string

	// Transform outputs.
	SizeMB     float64
	Output     types.Dimensions
	CropWindow types.Dimensions
	ScaledDown bool

	// Split outputs.
	SegmentsDir  string
	SegmentCount int
}

// Runner executes requests against an engine.
type Runner struct {
	engine Engine
}

// NewRunner creates a runner backed by the given engine.
func NewRunner(engine Engine) *Runner {
	return &Runner{engine: engine}
}

// Run executes one request. The input file is re-checked immediately
// before the engine is invoked; the menu loop can be arbitrarily slow and
// files disappear under it.
func (r *Runner) Run(req Request) (*Result, error) {
	if _, err := os.Stat(req.InputPath); err != nil {
		return nil, errors.Wrapf(err, "input file is not readable: %s", req.InputPath)
	}

	switch req.Op {
	case types.OperationResize:
		return r.resize(req)
	case types.OperationCrop:
		return r.crop(req)
	case types.OperationSplit:
		return r.split(req)
	default:
		return nil, errors.Errorf("unsupported operation: %q", req.Op)
	}
}

func (r *Runner) resize(req Request) (*Result, error) {
	if req.Target.Width <= 0 || req.Target.Height <= 0 {
		return nil, errors.Errorf("resize needs positive target dimensions, got %s", req.Target)
	}

	outputPath := resolve.ResizedName(req.InputPath, req.Target)
	filter := types.FilterSpec{
		Name: "scale",
		Args: []string{strconv.Itoa(req.Target.Width), strconv.Itoa(req.Target.Height)},
	}

	if err := r.engine.Transform(req.InputPath, filter, outputPath); err != nil {
		removePartial(outputPath)
		return nil, errors.Wrapf(err, "resizing %s", req.InputPath)
	}

	res := &Result{Op: req.Op, InputPath: req.InputPath, OutputPath: outputPath}
	r.describeOutput(res)
	return res, nil
}

func (r *Runner) crop(req Request) (*Result, error) {
	if req.Target.Width <= 0 || req.Target.Height <= 0 {
		return nil, errors.Errorf("crop needs positive window dimensions, got %s", req.Target)
	}

	meta, err := r.metadata(req)
	if err != nil {
		return nil, err
	}

	plan := resolve.FitCrop(meta.Width, meta.Height, req.Target)
	tag := req.Tag
	if tag == "" {
		tag = preset.CustomTag
	}

	outputPath := resolve.CroppedName(req.InputPath, tag)
	filter := types.FilterSpec{
		Name: "crop",
		Args: []string{
			strconv.Itoa(plan.Width),
			strconv.Itoa(plan.Height),
			strconv.Itoa(plan.OffsetX),
			strconv.Itoa(plan.OffsetY),
		},
	}

	if err := r.engine.Transform(req.InputPath, filter, outputPath); err != nil {
		removePartial(outputPath)
		return nil, errors.Wrapf(err, "cropping %s", req.InputPath)
	}

	res := &Result{
		Op:         req.Op,
		InputPath:  req.InputPath,
		OutputPath: outputPath,
		CropWindow: types.Dimensions{Width: plan.Width, Height: plan.Height},
		ScaledDown: plan.Scaled,
	}
	r.describeOutput(res)
	return res, nil
}

func (r *Runner) split(req Request) (*Result, error) {
	if req.SegmentSeconds <= 0 {
		return nil, errors.Errorf("split needs a positive segment duration, got %g", req.SegmentSeconds)
	}

	meta, err := r.metadata(req)
	if err != nil {
		return nil, err
	}

	dir := resolve.SegmentsDir(req.InputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating segments directory %s", dir)
	}

	// Segments written before a failure stay on disk; each one is a
	// complete, playable file.
	if err := r.engine.Segment(req.InputPath, resolve.SegmentPrefix(req.InputPath), req.SegmentSeconds); err != nil {
		return nil, errors.Wrapf(err, "splitting %s", req.InputPath)
	}

	return &Result{
		Op:           req.Op,
		InputPath:    req.InputPath,
		OutputPath:   dir,
		SegmentsDir:  dir,
		SegmentCount: resolve.SegmentCount(meta.Duration, req.SegmentSeconds),
	}, nil
}

func (r *Runner) metadata(req Request) (*types.VideoMetadata, error) {
	if req.Meta != nil {
		return req.Meta, nil
	}
	return r.engine.Probe(req.InputPath)
}

// describeOutput re-inspects the produced file for the report. Failure
// leaves the fields zero; the operation itself already succeeded.
func (r *Runner) describeOutput(res *Result) {
	if info, err := os.Stat(res.OutputPath); err == nil {
		res.SizeMB = float64(info.Size()) / 1024 / 1024
	}
	if meta, err := r.engine.Probe(res.OutputPath); err == nil {
		res.Output = types.Dimensions{Width: meta.Width, Height: meta.Height}
	}
}

// removePartial deletes the output a failed transform left behind. A
// truncated file looks like a finished output in later listings.
func removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("could not remove partial output %s: %v", path, err)
	}
}

// VideoResizeOptions defines options for resizing a video to an exact
// resolution.
type VideoResizeOptions struct {
	InputPath string
	Width     int
	Height    int
	Verbose   bool
}

// Resize re-encodes the input at the requested resolution. The output is
// written alongside the input as {stem}_resized_{width}_{height}{ext}.
func Resize(opts *VideoResizeOptions) (*Result, error) {
	return NewRunner(ffmpeg.NewProcessor(opts.Verbose)).Run(Request{
		Op:        types.OperationResize,
		InputPath: opts.InputPath,
		Target:    types.Dimensions{Width: opts.Width, Height: opts.Height},
	})
}

// VideoCropOptions defines options for cropping a video to a centered
// window, typically one of the social-media presets.
type VideoCropOptions struct {
	InputPath string
	Width     int
	Height    int
	Tag       string
	Verbose   bool
}

// Crop cuts a centered window out of the input. A window larger than the
// source is scaled down to fit while keeping its aspect ratio. The output
// is written alongside the input as {stem}_cropped_{tag}{ext}.
func Crop(opts *VideoCropOptions) (*Result, error) {
	return NewRunner(ffmpeg.NewProcessor(opts.Verbose)).Run(Request{
		Op:        types.OperationCrop,
		InputPath: opts.InputPath,
		Target:    types.Dimensions{Width: opts.Width, Height: opts.Height},
		Tag:       opts.Tag,
	})
}

// VideoSplitOptions defines options for splitting a video into
// fixed-duration segments.
type VideoSplitOptions struct {
	InputPath      string
	SegmentSeconds float64
	Verbose        bool
}

// Split cuts the input into numbered segments under a segments directory
// next to the input file.
func Split(opts *VideoSplitOptions) (*Result, error) {
	return NewRunner(ffmpeg.NewProcessor(opts.Verbose)).Run(Request{
		Op:             types.OperationSplit,
		InputPath:      opts.InputPath,
		SegmentSeconds: opts.SegmentSeconds,
	})
}
