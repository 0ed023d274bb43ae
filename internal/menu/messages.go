package menu

import (
	"github.com/vidterm/vidterm/pkg/types"
	"github.com/vidterm/vidterm/pkg/videoprocessor"
)

type videosListedMsg struct {
	videos []types.VideoFile
	err    error
}

type probedMsg struct {
	meta *types.VideoMetadata
	err  error
}

type operationDoneMsg struct {
	result *videoprocessor.Result
	err    error
}
