package menu

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidterm/vidterm/pkg/types"
	"github.com/vidterm/vidterm/pkg/videoprocessor"
)

type screen int

const (
	screenMenu screen = iota
	screenPick
	screenParams
	screenCustom
	screenProcessing
	screenResult
	screenList
	screenConfirmExit
)

// menuEntry is one main-menu line; key is the digit that selects it.
type menuEntry struct {
	key   string
	label string
}

var menuEntries = []menuEntry{
	{"1", "Resize Video"},
	{"2", "Split Video"},
	{"3", "Crop Video (Social Media)"},
	{"4", "List Videos"},
	{"5", "Exit"},
}

type model struct {
	screen screen

	dir    string
	engine videoprocessor.Engine
	list   ListFunc
	runner *videoprocessor.Runner

	menuCursor int

	// status survives on the main menu until the next action.
	status string

	// Per-flow state, reset by backToMenu.
	op       types.Operation
	listOnly bool
	videos   []types.VideoFile
	files    table.Model
	selected types.VideoFile
	meta     *types.VideoMetadata
	probing  bool

	presetCursor int

	inputs []textinput.Model
	focus  int

	spin       spinner.Model
	working    string
	workingOut string

	result *videoprocessor.Result
	runErr error
}

func newModel(opts Options) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return model{
		screen: screenMenu,
		dir:    opts.Dir,
		engine: opts.Engine,
		list:   opts.List,
		runner: videoprocessor.NewRunner(opts.Engine),
		spin:   sp,
	}
}

func buildFileTable(videos []types.VideoFile) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "File Name", Width: 42},
		{Title: "Size (MB)", Width: 10},
	}
	rows := make([]table.Row, 0, len(videos))
	for i, v := range videos {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			v.Name,
			fmt.Sprintf("%.2f", v.SizeMB()),
		})
	}
	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(videos)+1, 12)),
	)
	tbl.SetStyles(table.DefaultStyles())
	return tbl
}

func buildDimensionInputs() []textinput.Model {
	width := textinput.New()
	width.Placeholder = "e.g. 1920"
	width.Prompt = "Width: "
	width.CharLimit = 5
	width.Focus()

	height := textinput.New()
	height.Placeholder = "e.g. 1080"
	height.Prompt = "Height: "
	height.CharLimit = 5

	return []textinput.Model{width, height}
}

func buildSecondsInput() []textinput.Model {
	seconds := textinput.New()
	seconds.Placeholder = "e.g. 45"
	seconds.Prompt = "Segment duration (seconds): "
	seconds.CharLimit = 8
	seconds.Focus()

	return []textinput.Model{seconds}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(typed)
	case videosListedMsg:
		return m.handleVideosListed(typed)
	case probedMsg:
		return m.handleProbed(typed)
	case operationDoneMsg:
		return m.handleOperationDone(typed)
	case spinner.TickMsg:
		if m.screen != screenProcessing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(typed)
		return m, cmd
	default:
		return m, nil
	}
}

func (m model) View() string {
	switch m.screen {
	case screenMenu:
		return m.viewMenu()
	case screenPick:
		return m.viewPick()
	case screenParams:
		return m.viewParams()
	case screenCustom:
		return m.viewCustom()
	case screenProcessing:
		return m.viewProcessing()
	case screenResult:
		return m.viewResult()
	case screenList:
		return m.viewList()
	case screenConfirmExit:
		return m.viewConfirmExit()
	default:
		return ""
	}
}

func (m model) handleVideosListed(msg videosListedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m.backToMenu(fmt.Sprintf("❌ Error: %v", msg.err)), nil
	}
	if len(msg.videos) == 0 {
		return m.backToMenu("⚠️  No video files found in current directory!"), nil
	}

	m.videos = msg.videos
	m.files = buildFileTable(msg.videos)
	if m.listOnly {
		m.screen = screenList
	} else {
		m.screen = screenPick
	}
	return m, nil
}

func (m model) handleProbed(msg probedMsg) (tea.Model, tea.Cmd) {
	m.probing = false
	if msg.err != nil {
		return m.backToMenu(fmt.Sprintf("❌ Error reading video info: %v", msg.err)), nil
	}

	m.meta = msg.meta
	m.presetCursor = 0
	m.screen = screenParams
	return m, nil
}

func (m model) handleOperationDone(msg operationDoneMsg) (tea.Model, tea.Cmd) {
	m.result = msg.result
	m.runErr = msg.err
	m.screen = screenResult
	return m, nil
}

// backToMenu drops all per-flow state and leaves status visible on the
// main menu until the next action.
func (m model) backToMenu(status string) model {
	m.screen = screenMenu
	m.status = status
	m.op = ""
	m.listOnly = false
	m.videos = nil
	m.selected = types.VideoFile{}
	m.meta = nil
	m.probing = false
	m.presetCursor = 0
	m.inputs = nil
	m.focus = 0
	m.working = ""
	m.workingOut = ""
	m.result = nil
	m.runErr = nil
	return m
}
