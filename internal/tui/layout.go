package tui

import (
	"strings"

	"camdeck/v0/pkg/panel"
)

// Grid layout, in terminal cells. Every tile spans tileHeight lines: the camera name,
// its feed and its PTZ button row.
const (
	gridTop       = 2
	tileHeight    = 3
	tileButtonRow = 2
	tileIndent    = 2

	// A button is "[x]" followed by a gap.
	buttonWidth = 4

	defaultFrameRows = 24
	defaultFrameCols = 80
)

var buttonLabels = map[panel.Direction]string{
	panel.DirectionLeft:    "◀",
	panel.DirectionUp:      "▲",
	panel.DirectionDown:    "▼",
	panel.DirectionRight:   "▶",
	panel.DirectionZoomIn:  "+",
	panel.DirectionZoomOut: "-",
}

// renderButtons draws the PTZ control bar, highlighting the held direction.
func renderButtons(held panel.Direction, holding bool) string {
	var sb strings.Builder
	for i, dir := range panel.Directions {
		if i > 0 {
			sb.WriteByte(' ')
		}
		style := buttonStyle
		if holding && dir == held {
			style = activeButtonStyle
		}
		sb.WriteString(style.Render("[" + buttonLabels[dir] + "]"))
	}
	return sb.String()
}

// buttonAt maps a column of a button row starting at indent to its direction.
func buttonAt(x, indent int) (panel.Direction, bool) {
	offset := x - indent
	if offset < 0 || offset%buttonWidth == buttonWidth-1 {
		return 0, false
	}

	i := offset / buttonWidth
	if i >= len(panel.Directions) {
		return 0, false
	}
	return panel.Directions[i], true
}

// tileAt maps a grid line to a tile index and the line within that tile.
func tileAt(y, tiles int) (int, int, bool) {
	if y < gridTop {
		return 0, 0, false
	}

	idx := (y - gridTop) / tileHeight
	if idx >= tiles {
		return 0, 0, false
	}
	return idx, (y - gridTop) % tileHeight, true
}

// frameRows is the number of lines the fullscreen frame takes: everything but the
// title, PTZ bar, ribbon & help lines.
func frameRows(height int) int {
	if height <= 0 {
		return defaultFrameRows
	}
	if rows := height - 4; rows > 0 {
		return rows
	}
	return 1
}

func frameCols(width int) int {
	if width <= 0 {
		return defaultFrameCols
	}
	return width
}

// ptzBarLine is the fullscreen line holding the PTZ control bar.
func ptzBarLine(height int) int {
	return 1 + frameRows(height)
}

// padLines pads or truncates s to exactly n lines.
func padLines(s string, n int) string {
	lines := []string{}
	if s != "" {
		lines = strings.Split(s, "\n")
	}
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
