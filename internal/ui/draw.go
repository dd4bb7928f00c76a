package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/markdown"
)

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	pos := 0
	for _, r := range text {
		s.SetContent(x+pos, y, r, nil, style)
		pos++
	}
	return pos
}

// drawTextLimit draws text truncated to maxWidth runes, with an ellipsis
// when it does not fit.
func drawTextLimit(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string) {
	if maxWidth <= 0 {
		return
	}
	runes := []rune(text)
	if len(runes) > maxWidth {
		if maxWidth > 1 {
			runes = append(runes[:maxWidth-1], '…')
		} else {
			runes = runes[:maxWidth]
		}
	}
	pos := 0
	for _, r := range runes {
		s.SetContent(x+pos, y, r, nil, style)
		pos++
	}
}

// drawStyledLine draws one rendered markdown line applying its style spans.
func drawStyledLine(s tcell.Screen, x, y, maxWidth int, base tcell.Style, line markdown.Line) {
	runes := []rune(line.Text)
	for i, r := range runes {
		if i >= maxWidth {
			break
		}
		style := base
		for _, sp := range line.Spans {
			if i >= sp.Start && i < sp.End {
				style = styleFor(sp.Type, base)
				break
			}
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}

// drawGauge draws a filled progress bar of the given width, ratio in [0,1].
func drawGauge(s tcell.Screen, x, y, width int, ratio float64) {
	if width <= 0 {
		return
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	for i := 0; i < width; i++ {
		r := '░'
		style := tcell.StyleDefault.Foreground(ColorDimmed)
		if i < filled {
			r = '█'
			style = tcell.StyleDefault.Foreground(ColorAccent)
		}
		s.SetContent(x+i, y, r, nil, style)
	}
}

func fillRow(s tcell.Screen, y, w int, style tcell.Style) {
	for x := 0; x < w; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
