// Package menu implements the interactive terminal loop: a state machine
// over the main menu, file pick, parameter, processing and result
// screens, driving the video engine through the operation runner.
package menu

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/vidterm/vidterm/pkg/types"
	"github.com/vidterm/vidterm/pkg/videoprocessor"
)

// ListFunc returns the video files directly inside dir.
type ListFunc func(dir string) ([]types.VideoFile, error)

// Options wires the menu to its collaborators. Everything the loop
// touches comes in here; the package keeps no state of its own.
type Options struct {
	// Dir is the directory flows discover videos in.
	Dir string

	// Engine probes and processes videos.
	Engine videoprocessor.Engine

	// List performs discovery, usually discover.ListVideos.
	List ListFunc

	// Out receives the farewell line after the terminal is restored.
	// Defaults to os.Stdout.
	Out io.Writer
}

const farewell = "👋 Thanks for using Video Terminal Tool! Goodbye!"

type teaProgram interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) teaProgram {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Run drives the interactive menu until the user confirms exit.
func Run(opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	program := programFactory(newModel(opts))
	if _, err := program.Run(); err != nil {
		return errors.Wrap(err, "running menu")
	}
	fmt.Fprintln(opts.Out, farewell)
	return nil
}
