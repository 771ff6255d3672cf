package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// renderPopup draws a bordered card over the center of the base view.
// Styled cells outside the card keep their escape sequences intact.
func renderPopup(base, content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := strings.Split(popupStyle.Render(content), "\n")
	cardWidth := 0
	for _, l := range card {
		if w := ansi.StringWidth(l); w > cardWidth {
			cardWidth = w
		}
	}
	x := max((width-cardWidth)/2, 0)
	y := max((height-len(card))/2, 0)

	canvas := strings.Split(base, "\n")
	if len(canvas) > height {
		canvas = canvas[:height]
	}
	for len(canvas) < height {
		canvas = append(canvas, "")
	}
	for i, line := range card {
		row := y + i
		if row >= height {
			break
		}
		canvas[row] = spliceRow(canvas[row], line, x, cardWidth, width)
	}
	return strings.Join(canvas, "\n")
}

// spliceRow replaces columns [x, x+cardWidth) of row with the card line,
// keeping whatever lies to either side.
func spliceRow(row, line string, x, cardWidth, width int) string {
	if w := ansi.StringWidth(row); w < width {
		row += strings.Repeat(" ", width-w)
	}
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	if w := ansi.StringWidth(line); w < cardWidth {
		line += strings.Repeat(" ", cardWidth-w)
	}
	right := ansi.TruncateLeft(row, x+cardWidth, "")
	if gap := width - x - cardWidth - ansi.StringWidth(right); gap > 0 {
		right = strings.Repeat(" ", gap) + right
	}
	return left + line + right
}
