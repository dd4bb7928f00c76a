package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/store"
	"github.com/jmrivas/ondacast/internal/widget"
)

// PlayerBar is the persistent two-row playback bar above the status line.
// It renders whatever the store currently holds; it issues no commands.
type PlayerBar struct {
	store  *store.Store
	widget *widget.Widget
}

func NewPlayerBar(st *store.Store, w *widget.Widget) *PlayerBar {
	return &PlayerBar{store: st, widget: w}
}

// Draw renders the bar on rows y and y+1.
func (b *PlayerBar) Draw(s tcell.Screen, y, width int) {
	barStyle := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
	fillRow(s, y, width, barStyle)
	fillRow(s, y+1, width, barStyle)

	state := b.store.State()
	if state.Current == nil {
		drawText(s, 2, y, barStyle.Foreground(ColorDimmed), "Ningún episodio seleccionado")
		drawText(s, 2, y+1, barStyle.Foreground(ColorDimmed), "Pulsa enter en un episodio para reproducirlo")
		return
	}

	icon, iconColor := b.stateIcon(state)
	x := 2
	x += drawText(s, x, y, barStyle.Foreground(iconColor).Bold(true), icon)
	x += 1
	title := fmt.Sprintf("%s — %s", state.Current.Title, state.Current.Category)
	volume := fmt.Sprintf("vol %3.0f%%", state.Volume*100)
	drawTextLimit(s, x, y, width-x-len(volume)-3, barStyle, title)
	drawText(s, width-len(volume)-2, y, barStyle.Foreground(ColorDimmed), volume)

	elapsed := formatTime(state.Progress)
	total := formatTime(state.Duration)
	x = 2
	x += drawText(s, x, y+1, barStyle.Foreground(ColorDimmed), elapsed)
	x += 1
	gaugeWidth := width - x - len(total) - 3
	ratio := 0.0
	if state.Duration > 0 {
		ratio = state.Progress / state.Duration
	}
	drawGauge(s, x, y+1, gaugeWidth, ratio)
	drawText(s, x+gaugeWidth+1, y+1, barStyle.Foreground(ColorDimmed), total)
}

func (b *PlayerBar) stateIcon(state store.State) (string, tcell.Color) {
	switch b.widget.State() {
	case widget.StateLoading:
		return "⟳", ColorOrange
	case widget.StateEnded:
		return "⏹", ColorDimmed
	default:
		if state.Playing {
			return "▶", ColorPlaying
		}
		return "⏸", ColorPaused
	}
}

// formatTime renders seconds as mm:ss, hours appearing only when needed.
func formatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}
