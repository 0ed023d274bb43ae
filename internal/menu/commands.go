package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidterm/vidterm/pkg/videoprocessor"
)

func listVideosCmd(list ListFunc, dir string) tea.Cmd {
	return func() tea.Msg {
		videos, err := list(dir)
		return videosListedMsg{videos: videos, err: err}
	}
}

func probeCmd(engine videoprocessor.Engine, path string) tea.Cmd {
	return func() tea.Msg {
		meta, err := engine.Probe(path)
		return probedMsg{meta: meta, err: err}
	}
}

func runOperationCmd(runner *videoprocessor.Runner, req videoprocessor.Request) tea.Cmd {
	return func() tea.Msg {
		result, err := runner.Run(req)
		return operationDoneMsg{result: result, err: err}
	}
}
