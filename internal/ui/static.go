package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/markdown"
)

// StaticView renders a fixed markdown document, scrollable.
type StaticView struct {
	converter *markdown.Converter
	content   string
	scroll    int
}

func NewStaticView(content string) *StaticView {
	return &StaticView{converter: markdown.NewConverter(), content: content}
}

func (v *StaticView) Draw(s tcell.Screen) {
	w, h := s.Size()
	contentH := h - 3
	base := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)

	lines := markdown.Wrap(v.converter.Render(v.content), w-4)
	visible := contentH - 1
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}

	y := 1
	for i := v.scroll; i < len(lines) && y < contentH; i++ {
		drawStyledLine(s, 2, y, w-4, base, lines[i])
		y++
	}
}

func (v *StaticView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		v.scroll++
		return true
	case tcell.KeyUp:
		if v.scroll > 0 {
			v.scroll--
		}
		return true
	}
	switch ev.Rune() {
	case 'j':
		v.scroll++
		return true
	case 'k':
		if v.scroll > 0 {
			v.scroll--
		}
		return true
	case 'g':
		v.scroll = 0
		return true
	}
	return false
}
