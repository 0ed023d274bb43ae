package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vidterm/vidterm/internal/preset"
	"github.com/vidterm/vidterm/pkg/types"
)

func banner() string {
	title := bannerStyle.Render("🎬  VIDEO TERMINAL TOOL  🎬")
	tagline := taglineStyle.Render("Resize & Split Videos Like a Pro!")
	return lipgloss.JoinVertical(lipgloss.Center, title, tagline)
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(banner())
	b.WriteString("\n\n")

	for i, entry := range menuEntries {
		line := fmt.Sprintf("%s. %s", entry.key, entry.label)
		if i == m.menuCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ navigate • 1-5 select • enter confirm • q quit"))
	return b.String()
}

func (m model) viewPick() string {
	title := titleStyle.Render(fmt.Sprintf("🎬 Available Videos (%d found)", len(m.videos)))
	help := helpStyle.Render("↑/↓ navigate • 1-9 jump • enter select • esc cancel")
	if m.probing {
		help = statusStyle.Render("Reading video info...")
	}
	return strings.Join([]string{title, tableStyle.Render(m.files.View()), help}, "\n")
}

func (m model) viewParams() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.flowTitle()) + "\n\n")
	b.WriteString(fmt.Sprintf("✅ Selected: %s\n", m.selected.Name))

	if m.op == types.OperationSplit {
		b.WriteString(fmt.Sprintf("⏱️  Video Duration: %.2f minutes (%.2f seconds)\n\n",
			m.meta.Duration/60, m.meta.Duration))
	} else {
		b.WriteString(fmt.Sprintf("📊 Current Resolution: %dx%d\n\n", m.meta.Width, m.meta.Height))
	}

	for i, key := range m.paramKeys() {
		line := fmt.Sprintf("%s. %s", key, m.paramLabel(key))
		if i == m.presetCursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString(itemStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("↑/↓ navigate • digits select • enter confirm • esc cancel"))
	return b.String()
}

func (m model) flowTitle() string {
	switch m.op {
	case types.OperationResize:
		return "📐 VIDEO RESIZE MODE"
	case types.OperationSplit:
		return "✂️  VIDEO SPLIT MODE"
	case types.OperationCrop:
		return "✂️  VIDEO CROP MODE (Social Media)"
	default:
		return ""
	}
}

func (m model) paramLabel(key string) string {
	switch m.op {
	case types.OperationResize:
		if key == preset.ResizeCustomKey {
			return "Custom resolution"
		}
		r, err := preset.GetResize(key)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%s (%s)", r.Label, r.Target)
	case types.OperationCrop:
		if key == preset.CropCustomKey {
			return "Custom crop size"
		}
		c, err := preset.GetCrop(key)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%s - %s", c.Label, c.Target)
	case types.OperationSplit:
		if key == preset.SplitCustomKey {
			return "Custom duration"
		}
		d, err := preset.GetSplitDuration(key)
		if err != nil {
			return ""
		}
		return d.Label
	default:
		return ""
	}
}

func (m model) viewCustom() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.flowTitle()) + "\n\n")
	b.WriteString(fmt.Sprintf("✅ Selected: %s\n\n", m.selected.Name))
	for i := range m.inputs {
		b.WriteString(m.inputs[i].View() + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("enter next/confirm • tab switch field • esc cancel"))
	return b.String()
}

func (m model) viewProcessing() string {
	lines := []string{
		fmt.Sprintf("%s %s...", m.spin.View(), m.working),
		statusStyle.Render("Output: " + m.workingOut),
		helpStyle.Render("Processing runs to completion; please wait"),
	}
	return strings.Join(lines, "\n")
}

func (m model) viewResult() string {
	if m.runErr != nil {
		body := fmt.Sprintf("❌ Error: %v", m.runErr)
		return errorBoxStyle.Render(body) + "\n\n" + helpStyle.Render("press enter to continue")
	}

	res := m.result
	var b strings.Builder
	switch res.Op {
	case types.OperationResize:
		b.WriteString("✅ Video resized successfully!\n")
	case types.OperationCrop:
		b.WriteString("✅ Video cropped successfully!\n")
		if res.ScaledDown {
			b.WriteString(fmt.Sprintf("⚠️  Crop dimensions scaled down to %s to fit input video\n", res.CropWindow))
		}
	case types.OperationSplit:
		b.WriteString("✅ Video split successfully!\n")
	}

	if res.Op == types.OperationSplit {
		b.WriteString(fmt.Sprintf("Segments: %d expected\n", res.SegmentCount))
		b.WriteString("Output directory: " + res.SegmentsDir + "\n")
	} else {
		b.WriteString("Output: " + res.OutputPath + "\n")
		if res.SizeMB > 0 {
			b.WriteString(fmt.Sprintf("Size: %.2f MB\n", res.SizeMB))
		}
		if res.Output.Width > 0 {
			b.WriteString("Resolution: " + res.Output.String() + "\n")
		}
	}

	panel := successBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
	return panel + "\n\n" + helpStyle.Render("press enter to continue")
}

func (m model) viewList() string {
	title := titleStyle.Render(fmt.Sprintf("🎬 Available Videos (%d found)", len(m.videos)))
	help := helpStyle.Render("enter/esc back to menu")
	return strings.Join([]string{title, tableStyle.Render(m.files.View()), help}, "\n")
}

func (m model) viewConfirmExit() string {
	return banner() + "\n\n" + statusStyle.Render("Do you want to exit? (y/n)")
}
