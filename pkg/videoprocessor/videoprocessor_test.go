package videoprocessor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidterm/vidterm/pkg/types"
)

type transformCall struct {
	input  string
	filter types.FilterSpec
	output string
}

type segmentCall struct {
	input   string
	prefix  string
	seconds float64
}

// fakeEngine records every call; errors and written outputs are
// configured per test.
type fakeEngine struct {
	meta            *types.VideoMetadata
	probeErr        error
	transformErr    error
	segmentErr      error
	transformWrites bool

	probed     []string
	transforms []transformCall
	segments   []segmentCall
}

func (f *fakeEngine) Probe(inputPath string) (*types.VideoMetadata, error) {
	f.probed = append(f.probed, inputPath)
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.meta, nil
}

func (f *fakeEngine) Transform(inputPath string, filter types.FilterSpec, outputPath string) error {
	f.transforms = append(f.transforms, transformCall{input: inputPath, filter: filter, output: outputPath})
	if f.transformErr != nil {
		return f.transformErr
	}
	if f.transformWrites {
		return os.WriteFile(outputPath, make([]byte, 1<<20), 0o644)
	}
	return nil
}

func (f *fakeEngine) Segment(inputPath, outputPrefix string, segmentSeconds float64) error {
	f.segments = append(f.segments, segmentCall{input: inputPath, prefix: outputPrefix, seconds: segmentSeconds})
	return f.segmentErr
}

func writeInput(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("video"), 0o644))
	return path
}

func TestRunResizeInvokesScale(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{
		meta:            &types.VideoMetadata{Duration: 10, Width: 1280, Height: 720, Codec: "h264"},
		transformWrites: true,
	}

	res, err := NewRunner(engine).Run(Request{
		Op:        types.OperationResize,
		InputPath: input,
		Target:    types.Dimensions{Width: 1280, Height: 720},
	})
	require.NoError(t, err)

	require.Len(t, engine.transforms, 1)
	call := engine.transforms[0]
	assert.Equal(t, input, call.input)
	assert.Equal(t, "scale", call.filter.Name)
	assert.Equal(t, []string{"1280", "720"}, call.filter.Args)

	wantOut := filepath.Join(filepath.Dir(input), "clip_resized_1280_720.mp4")
	assert.Equal(t, wantOut, call.output)
	assert.Equal(t, wantOut, res.OutputPath)

	// The report re-inspects the written output.
	assert.InDelta(t, 1.0, res.SizeMB, 0.01)
	assert.Equal(t, types.Dimensions{Width: 1280, Height: 720}, res.Output)
}

func TestRunCropBuildsCenteredWindow(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{meta: &types.VideoMetadata{Duration: 10, Width: 1920, Height: 1080}}

	res, err := NewRunner(engine).Run(Request{
		Op:        types.OperationCrop,
		InputPath: input,
		Meta:      &types.VideoMetadata{Duration: 10, Width: 1920, Height: 1080},
		Target:    types.Dimensions{Width: 1080, Height: 1080},
		Tag:       "instagram_post_1x1",
	})
	require.NoError(t, err)

	require.Len(t, engine.transforms, 1)
	call := engine.transforms[0]
	assert.Equal(t, "crop", call.filter.Name)
	assert.Equal(t, []string{"1080", "1080", "420", "0"}, call.filter.Args)

	wantOut := filepath.Join(filepath.Dir(input), "clip_cropped_instagram_post_1x1.mp4")
	assert.Equal(t, wantOut, res.OutputPath)
	assert.False(t, res.ScaledDown)
	assert.Equal(t, types.Dimensions{Width: 1080, Height: 1080}, res.CropWindow)

	// Metadata came with the request, so the only probe is the output
	// re-inspection.
	assert.Equal(t, []string{wantOut}, engine.probed)
}

func TestRunCropFitsDownOversizedWindow(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{meta: &types.VideoMetadata{Duration: 10, Width: 1280, Height: 720}}

	res, err := NewRunner(engine).Run(Request{
		Op:        types.OperationCrop,
		InputPath: input,
		Target:    types.Dimensions{Width: 1080, Height: 1920},
		Tag:       "tiktok_stories_9x16",
	})
	require.NoError(t, err)

	require.Len(t, engine.transforms, 1)
	assert.Equal(t, []string{"404", "720", "438", "0"}, engine.transforms[0].filter.Args)
	assert.True(t, res.ScaledDown)
	assert.Equal(t, types.Dimensions{Width: 404, Height: 720}, res.CropWindow)
}

func TestRunCropDefaultsToCustomTag(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{meta: &types.VideoMetadata{Duration: 10, Width: 1920, Height: 1080}}

	res, err := NewRunner(engine).Run(Request{
		Op:        types.OperationCrop,
		InputPath: input,
		Target:    types.Dimensions{Width: 640, Height: 640},
	})
	require.NoError(t, err)
	assert.Contains(t, res.OutputPath, "_cropped_custom")
}

func TestRunSplitSegmentsUnderSegmentsDir(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{}

	res, err := NewRunner(engine).Run(Request{
		Op:             types.OperationSplit,
		InputPath:      input,
		Meta:           &types.VideoMetadata{Duration: 125, Width: 1920, Height: 1080},
		SegmentSeconds: 60,
	})
	require.NoError(t, err)

	wantDir := filepath.Join(filepath.Dir(input), "segments")
	info, statErr := os.Stat(wantDir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())

	require.Len(t, engine.segments, 1)
	call := engine.segments[0]
	assert.Equal(t, input, call.input)
	assert.Equal(t, filepath.Join(wantDir, "clip_segment"), call.prefix)
	assert.Equal(t, 60.0, call.seconds)

	assert.Equal(t, 3, res.SegmentCount)
	assert.Equal(t, wantDir, res.SegmentsDir)
	assert.Empty(t, engine.transforms)
}

func TestRunSplitKeepsSegmentsOnFailure(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	segmentsDir := filepath.Join(filepath.Dir(input), "segments")
	require.NoError(t, os.MkdirAll(segmentsDir, 0o755))
	written := filepath.Join(segmentsDir, "clip_segment_000.mp4")
	require.NoError(t, os.WriteFile(written, []byte("segment"), 0o644))

	engine := &fakeEngine{segmentErr: errors.New("disk full")}

	_, err := NewRunner(engine).Run(Request{
		Op:             types.OperationSplit,
		InputPath:      input,
		Meta:           &types.VideoMetadata{Duration: 125},
		SegmentSeconds: 60,
	})
	require.Error(t, err)

	_, statErr := os.Stat(written)
	assert.NoError(t, statErr, "completed segments must survive a failed split")
}

func TestRunTransformFailureRemovesPartialOutput(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	partial := filepath.Join(filepath.Dir(input), "clip_resized_1920_1080.mp4")
	require.NoError(t, os.WriteFile(partial, []byte("partial"), 0o644))

	engine := &fakeEngine{transformErr: errors.New("encoder exploded")}

	_, err := NewRunner(engine).Run(Request{
		Op:        types.OperationResize,
		InputPath: input,
		Target:    types.Dimensions{Width: 1920, Height: 1080},
	})
	require.Error(t, err)

	_, statErr := os.Stat(partial)
	assert.True(t, os.IsNotExist(statErr), "partial output must be deleted")

	_, statErr = os.Stat(input)
	assert.NoError(t, statErr, "input must be untouched")
}

func TestRunMissingInputSkipsEngine(t *testing.T) {
	engine := &fakeEngine{meta: &types.VideoMetadata{Duration: 10}}

	_, err := NewRunner(engine).Run(Request{
		Op:        types.OperationResize,
		InputPath: filepath.Join(t.TempDir(), "vanished.mp4"),
		Target:    types.Dimensions{Width: 1920, Height: 1080},
	})
	require.Error(t, err)

	assert.Empty(t, engine.probed)
	assert.Empty(t, engine.transforms)
	assert.Empty(t, engine.segments)
}

func TestRunReportDegradesWhenReprobeFails(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{
		probeErr:        errors.New("probe broken"),
		transformWrites: true,
	}

	res, err := NewRunner(engine).Run(Request{
		Op:        types.OperationCrop,
		InputPath: input,
		Meta:      &types.VideoMetadata{Duration: 10, Width: 1920, Height: 1080},
		Target:    types.Dimensions{Width: 640, Height: 640},
		Tag:       "instagram_post_1x1",
	})
	require.NoError(t, err, "a failed re-probe must not fail the operation")

	assert.Greater(t, res.SizeMB, 0.0)
	assert.Equal(t, types.Dimensions{}, res.Output)
}

func TestRunRequestValidation(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{meta: &types.VideoMetadata{Duration: 10, Width: 1920, Height: 1080}}
	runner := NewRunner(engine)

	tests := []struct {
		name string
		req  Request
	}{
		{"unsupported op", Request{Op: types.Operation("flip"), InputPath: input}},
		{"resize zero target", Request{Op: types.OperationResize, InputPath: input}},
		{"crop zero window", Request{Op: types.OperationCrop, InputPath: input}},
		{"split zero seconds", Request{Op: types.OperationSplit, InputPath: input}},
		{"split negative seconds", Request{Op: types.OperationSplit, InputPath: input, SegmentSeconds: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Run(tt.req)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, engine.transforms)
	assert.Empty(t, engine.segments)
}

func TestRunCropProbesWhenMetadataMissing(t *testing.T) {
	input := writeInput(t, "clip.mp4")
	engine := &fakeEngine{meta: &types.VideoMetadata{Duration: 10, Width: 1920, Height: 1080}}

	_, err := NewRunner(engine).Run(Request{
		Op:        types.OperationCrop,
		InputPath: input,
		Target:    types.Dimensions{Width: 1080, Height: 1080},
		Tag:       "instagram_post_1x1",
	})
	require.NoError(t, err)

	require.NotEmpty(t, engine.probed)
	assert.Equal(t, input, engine.probed[0])
}
