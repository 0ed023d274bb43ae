package menu

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProgram struct {
	err error
}

func (s stubProgram) Run() (tea.Model, error) {
	return nil, s.err
}

func swapProgramFactory(t *testing.T, p teaProgram) {
	t.Helper()
	original := programFactory
	programFactory = func(tea.Model) teaProgram { return p }
	t.Cleanup(func() { programFactory = original })
}

func TestRunPrintsFarewell(t *testing.T) {
	swapProgramFactory(t, stubProgram{})
	var out bytes.Buffer

	err := Run(Options{Dir: "clips", Engine: &stubEngine{}, Out: &out})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Thanks for using Video Terminal Tool")
}

func TestRunPropagatesProgramError(t *testing.T) {
	swapProgramFactory(t, stubProgram{err: errors.New("tty unavailable")})
	var out bytes.Buffer

	err := Run(Options{Dir: "clips", Engine: &stubEngine{}, Out: &out})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty unavailable")
	assert.Empty(t, out.String(), "no farewell after a failed session")
}
