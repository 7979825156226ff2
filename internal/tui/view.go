package tui

import (
	"fmt"
	"strconv"
	"strings"

	"camdeck/v0/pkg/panel"
	"camdeck/v0/pkg/viewer"
)

func (m Model) View() string {
	if m.panel.Viewer().Visible() {
		return m.viewFullScreen()
	}
	return m.viewGrid()
}

func (m Model) viewGrid() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("camdeck"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d cameras", len(m.cameras))))
	b.WriteString("\n\n")

	if len(m.cameras) == 0 {
		b.WriteString(dimStyle.Render("  No cameras"))
		b.WriteString("\n")
	}
	for i, cam := range m.cameras {
		cursor, style := "  ", normalStyle
		if i == m.cursor {
			cursor, style = "> ", selectedStyle
		}
		b.WriteString(cursor + style.Render(cam.Name) + "\n")
		b.WriteString(strings.Repeat(" ", tileIndent) + dimStyle.Render(m.client.URL(cam.Feed)) + "\n")
		b.WriteString(strings.Repeat(" ", tileIndent) + renderButtons(0, false) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewRibbon())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ select • enter fullscreen • s settings • r recordings • q quit"))

	if menu := m.viewMenu(); menu != "" {
		b.WriteString("\n")
		b.WriteString(menu)
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.viewNotice())
	}
	return b.String()
}

// viewFullScreen keeps the PTZ bar on ptzBarLine so mouse presses can be mapped back.
// Menus take the place of the frame.
func (m Model) viewFullScreen() string {
	var b strings.Builder
	rows, cols := frameRows(m.height), frameCols(m.width)
	state := m.panel.Viewer()
	cameraId, _ := state.Selected()

	b.WriteString(titleStyle.Render(m.cameraName(cameraId)))
	b.WriteString(dimStyle.Render("  " + m.client.URL(state.Source())))
	b.WriteString("\n")

	var body string
	switch {
	case m.viewMenu() != "":
		body = m.viewMenu()
	case m.frame != nil:
		body = viewer.Render(m.frame, cols, rows)
	case m.frameErr != nil:
		body = errorStyle.Render(fmt.Sprintf("No frame: %v", m.frameErr))
	default:
		body = dimStyle.Render("Loading frame...")
	}
	b.WriteString(padLines(body, rows))
	b.WriteString("\n")

	b.WriteString(renderButtons(m.heldDir, m.holding))
	b.WriteString("\n")
	b.WriteString(m.viewRibbon())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.viewNotice())
	} else {
		b.WriteString(helpStyle.Render("←↑↓→ +/- move • space stop • esc close • s settings • r recordings"))
	}
	return b.String()
}

func (m Model) cameraName(cameraId string) string {
	for _, cam := range m.cameras {
		if strconv.Itoa(cam.Id) == cameraId {
			return cam.Name
		}
	}
	return "camera " + cameraId
}

func (m Model) viewRibbon() string {
	cell := func(s string) string {
		if s == "" {
			return dimStyle.Render("-")
		}
		return normalStyle.Render(s)
	}

	indicator := dimStyle.Render("●")
	if m.ribbon.Indicator != "" {
		indicator = indicatorStyles[m.ribbon.Indicator].Render("●")
	}
	return fmt.Sprintf("frame rate %s │ stream rate %s │ signal %s %s",
		cell(m.ribbon.FrameRate), cell(m.ribbon.StreamRate), indicator, cell(m.ribbon.SignalStrength))
}

func (m Model) viewNotice() string {
	if m.isErr {
		return errorStyle.Render(m.notice)
	}
	return dimStyle.Render(m.notice)
}

func (m Model) viewMenu() string {
	switch {
	case m.panel.SettingsMenuVisible():
		return m.viewSettings()
	case m.panel.RecordingsMenuVisible():
		return m.viewRecordings()
	}
	return ""
}

func (m Model) viewSettings() string {
	cameraId, ok := m.panel.Viewer().Selected()
	if !ok {
		cameraId = panel.NO_CAMERA
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings") + dimStyle.Render(" camera "+cameraId) + "\n")
	for _, input := range m.inputs {
		b.WriteString(input.View() + "\n")
	}
	b.WriteString(helpStyle.Render("enter apply • tab next • esc close"))
	return menuBoxStyle.Render(b.String())
}

func (m Model) viewRecordings() string {
	links := m.panel.Recordings()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Recordings") + "\n")
	if len(links) == 0 {
		b.WriteString(dimStyle.Render("No recordings") + "\n")
	}
	for i, link := range links {
		cursor, style := "  ", normalStyle
		if i == m.recordingCursor {
			cursor, style = "> ", selectedStyle
		}
		b.WriteString(cursor + style.Render(link.Name) + " " + dimStyle.Render(link.Href) + "\n")
	}
	b.WriteString(helpStyle.Render("enter open • esc close"))
	return menuBoxStyle.Render(b.String())
}
