// viewer package renders still frames into terminal cells.
package viewer

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// HALF_BLOCK paints the upper pixel as foreground and the lower one as background,
// fitting two image rows into one terminal row.
const HALF_BLOCK = "▀"

// Fit returns the pixel size an image of srcW x srcH takes when scaled to fit cols x rows
// terminal cells, keeping its aspect ratio.
func Fit(srcW, srcH, cols, rows int) (int, int) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}

	maxW, maxH := cols, rows*2
	w, h := maxW, srcH*maxW/srcW
	if h > maxH {
		w, h = srcW*maxH/srcH, maxH
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Render scales img into at most cols x rows cells.
func Render(img image.Image, cols, rows int) string {
	if img == nil {
		return ""
	}

	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), cols, rows)
	if w == 0 {
		return ""
	}
	scaled := resize.Resize(uint(w), uint(h), img, resize.Bilinear)
	sb := scaled.Bounds()

	var out strings.Builder
	for y := sb.Min.Y; y < sb.Max.Y; y += 2 {
		if y > sb.Min.Y {
			out.WriteByte('\n')
		}
		for x := sb.Min.X; x < sb.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(scaled.At(x, y)))
			if y+1 < sb.Max.Y {
				style = style.Background(hexColor(scaled.At(x, y+1)))
			}
			out.WriteString(style.Render(HALF_BLOCK))
		}
	}
	return out.String()
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
