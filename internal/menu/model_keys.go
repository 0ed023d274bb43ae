package menu

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vidterm/vidterm/internal/preset"
	"github.com/vidterm/vidterm/internal/resolve"
	"github.com/vidterm/vidterm/pkg/types"
	"github.com/vidterm/vidterm/pkg/videoprocessor"
)

func (m model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// A running engine invocation is never interrupted.
	if m.screen == screenProcessing {
		return m, nil
	}

	switch m.screen {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenPick:
		return m.handlePickKey(msg)
	case screenParams:
		return m.handleParamsKey(msg)
	case screenCustom:
		return m.handleCustomKey(msg)
	case screenResult, screenList:
		return m.handleDismissKey(msg)
	case screenConfirmExit:
		return m.handleConfirmExitKey(msg)
	default:
		return m, nil
	}
}

func (m model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return m, nil
	case "down", "j":
		if m.menuCursor < len(menuEntries)-1 {
			m.menuCursor++
		}
		return m, nil
	case "enter":
		return m.chooseMenuEntry(menuEntries[m.menuCursor].key)
	case "esc", "q", "ctrl+c":
		m.screen = screenConfirmExit
		return m, nil
	default:
		for i, entry := range menuEntries {
			if msg.String() == entry.key {
				m.menuCursor = i
				return m.chooseMenuEntry(entry.key)
			}
		}
		// Anything else leaves the menu untouched.
		return m, nil
	}
}

func (m model) chooseMenuEntry(key string) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key {
	case "1":
		return m.startFlow(types.OperationResize)
	case "2":
		return m.startFlow(types.OperationSplit)
	case "3":
		return m.startFlow(types.OperationCrop)
	case "4":
		m.listOnly = true
		return m, listVideosCmd(m.list, m.dir)
	case "5":
		m.screen = screenConfirmExit
		return m, nil
	}
	return m, nil
}

func (m model) startFlow(op types.Operation) (tea.Model, tea.Cmd) {
	m.op = op
	m.listOnly = false
	return m, listVideosCmd(m.list, m.dir)
}

func (m model) handlePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.probing {
		return m, nil
	}

	switch msg.String() {
	case "esc", "ctrl+c":
		return m.cancelFlow(), nil
	case "enter":
		return m.pickFile(m.files.Cursor())
	default:
		if idx, ok := digitIndex(msg.String()); ok {
			if idx < len(m.videos) {
				m.files.SetCursor(idx)
				return m.pickFile(idx)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}
}

func (m model) pickFile(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.videos) {
		return m, nil
	}
	m.selected = m.videos[idx]
	m.probing = true
	return m, probeCmd(m.engine, m.selected.Path)
}

func (m model) handleParamsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.paramKeys()

	switch msg.String() {
	case "esc", "ctrl+c":
		return m.cancelFlow(), nil
	case "up", "k":
		if m.presetCursor > 0 {
			m.presetCursor--
		}
		return m, nil
	case "down", "j":
		if m.presetCursor < len(keys)-1 {
			m.presetCursor++
		}
		return m, nil
	case "enter":
		return m.choosePreset(keys[m.presetCursor])
	default:
		for i, key := range keys {
			if msg.String() == key {
				m.presetCursor = i
				return m.choosePreset(key)
			}
		}
		return m, nil
	}
}

// paramKeys lists the selectable preset keys for the current operation,
// custom entry last.
func (m model) paramKeys() []string {
	switch m.op {
	case types.OperationResize:
		return append(preset.ResizeKeys(), preset.ResizeCustomKey)
	case types.OperationSplit:
		return append(preset.SplitKeys(), preset.SplitCustomKey)
	case types.OperationCrop:
		return append(preset.CropKeys(), preset.CropCustomKey)
	default:
		return nil
	}
}

func (m model) choosePreset(key string) (tea.Model, tea.Cmd) {
	switch m.op {
	case types.OperationResize:
		if key == preset.ResizeCustomKey {
			return m.openCustomInputs(buildDimensionInputs())
		}
		r, err := preset.GetResize(key)
		if err != nil {
			return m.backToMenu(fmt.Sprintf("❌ Error: %v", err)), nil
		}
		return m.startResize(r.Target)
	case types.OperationCrop:
		if key == preset.CropCustomKey {
			return m.openCustomInputs(buildDimensionInputs())
		}
		c, err := preset.GetCrop(key)
		if err != nil {
			return m.backToMenu(fmt.Sprintf("❌ Error: %v", err)), nil
		}
		return m.startCrop(c.Target, c.Tag)
	case types.OperationSplit:
		if key == preset.SplitCustomKey {
			return m.openCustomInputs(buildSecondsInput())
		}
		d, err := preset.GetSplitDuration(key)
		if err != nil {
			return m.backToMenu(fmt.Sprintf("❌ Error: %v", err)), nil
		}
		return m.startSplit(d.Seconds)
	default:
		return m, nil
	}
}

func (m model) openCustomInputs(inputs []textinput.Model) (tea.Model, tea.Cmd) {
	m.inputs = inputs
	m.focus = 0
	m.screen = screenCustom
	return m, textinput.Blink
}

func (m model) handleCustomKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m.cancelFlow(), nil
	case "tab", "shift+tab", "down", "up":
		if len(m.inputs) > 1 {
			m.focus = (m.focus + 1) % len(m.inputs)
			m.syncInputFocus()
		}
		return m, nil
	case "enter":
		if m.focus < len(m.inputs)-1 {
			m.focus++
			m.syncInputFocus()
			return m, nil
		}
		return m.submitCustom()
	default:
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
}

func (m *model) syncInputFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
}

// submitCustom validates typed values. Invalid input aborts the whole
// flow back to the menu rather than re-prompting.
func (m model) submitCustom() (tea.Model, tea.Cmd) {
	switch m.op {
	case types.OperationResize, types.OperationCrop:
		dims, err := resolve.ParseDimensions(m.inputs[0].Value(), m.inputs[1].Value())
		if err != nil {
			return m.backToMenu(fmt.Sprintf("❌ %v", err)), nil
		}
		if m.op == types.OperationResize {
			return m.startResize(dims)
		}
		return m.startCrop(dims, preset.CustomTag)
	case types.OperationSplit:
		seconds, err := resolve.ParseSeconds(m.inputs[0].Value())
		if err != nil {
			return m.backToMenu(fmt.Sprintf("❌ %v", err)), nil
		}
		return m.startSplit(seconds)
	default:
		return m, nil
	}
}

func (m model) startResize(target types.Dimensions) (tea.Model, tea.Cmd) {
	req := videoprocessor.Request{
		Op:        types.OperationResize,
		InputPath: m.selected.Path,
		Meta:      m.meta,
		Target:    target,
	}
	desc := fmt.Sprintf("Resizing %s to %s", m.selected.Name, target)
	return m.startProcessing(req, desc, resolve.ResizedName(m.selected.Path, target))
}

func (m model) startCrop(target types.Dimensions, tag string) (tea.Model, tea.Cmd) {
	req := videoprocessor.Request{
		Op:        types.OperationCrop,
		InputPath: m.selected.Path,
		Meta:      m.meta,
		Target:    target,
		Tag:       tag,
	}
	desc := fmt.Sprintf("Cropping %s to %s", m.selected.Name, target)
	return m.startProcessing(req, desc, resolve.CroppedName(m.selected.Path, tag))
}

func (m model) startSplit(seconds float64) (tea.Model, tea.Cmd) {
	req := videoprocessor.Request{
		Op:             types.OperationSplit,
		InputPath:      m.selected.Path,
		Meta:           m.meta,
		SegmentSeconds: seconds,
	}
	count := resolve.SegmentCount(m.meta.Duration, seconds)
	desc := fmt.Sprintf("Splitting %s into %d segments of %gs", m.selected.Name, count, seconds)
	return m.startProcessing(req, desc, resolve.SegmentsDir(m.selected.Path))
}

func (m model) startProcessing(req videoprocessor.Request, desc, outputPath string) (tea.Model, tea.Cmd) {
	m.screen = screenProcessing
	m.working = desc
	m.workingOut = outputPath
	return m, tea.Batch(m.spin.Tick, runOperationCmd(m.runner, req))
}

func (m model) handleDismissKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "ctrl+c":
		return m.dismiss(), nil
	default:
		if m.screen == screenList {
			var cmd tea.Cmd
			m.files, cmd = m.files.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m model) dismiss() model {
	if m.screen == screenList {
		return m.backToMenu(fmt.Sprintf("Found %d video file(s)", len(m.videos)))
	}
	if m.runErr != nil {
		return m.backToMenu(fmt.Sprintf("❌ Error: %v", m.runErr))
	}
	return m.backToMenu(m.successStatus())
}

func (m model) successStatus() string {
	if m.result == nil {
		return ""
	}
	if m.result.Op == types.OperationSplit {
		return fmt.Sprintf("✅ Split %s into %d segment(s) in %s",
			m.selected.Name, m.result.SegmentCount, m.result.SegmentsDir)
	}
	return fmt.Sprintf("✅ Created %s", m.result.OutputPath)
}

func (m model) handleConfirmExitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m, tea.Quit
	default:
		m.screen = screenMenu
		return m, nil
	}
}

func (m model) cancelFlow() model {
	return m.backToMenu("⚠️  Operation cancelled by user")
}

func digitIndex(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '1'), true
}
