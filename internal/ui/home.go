package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/markdown"
	"github.com/jmrivas/ondacast/internal/store"
)

const homeLatestCount = 6

// HomeView is the landing page: intro copy, catalog stats and the latest
// episodes, selectable for quick access.
type HomeView struct {
	catalog   *catalog.Catalog
	store     *store.Store
	converter *markdown.Converter
	latest    []*catalog.Episode
	selected  int

	// Navigation callbacks, wired by the app.
	OnOpen   func(id int)
	OnPlay   func(ep *catalog.Episode)
	OnBrowse func()
}

func NewHomeView(c *catalog.Catalog, st *store.Store) *HomeView {
	return &HomeView{
		catalog:   c,
		store:     st,
		converter: markdown.NewConverter(),
		latest:    c.Latest(homeLatestCount),
	}
}

func (v *HomeView) Draw(s tcell.Screen) {
	w, h := s.Size()
	contentH := h - 3
	base := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)

	y := 1
	intro := markdown.Wrap(v.converter.Render(homeIntro), w-4)
	for _, line := range intro {
		if y >= contentH {
			return
		}
		drawStyledLine(s, 2, y, w-4, base, line)
		y++
	}

	y++
	if y < contentH {
		stats := fmt.Sprintf("%d episodios · %d categorías",
			v.catalog.Len(), len(v.catalog.Categories())-1)
		drawText(s, 2, y, base.Foreground(ColorDimmed), stats)
		y += 2
	}

	if y < contentH {
		drawText(s, 2, y, base.Foreground(ColorHeader).Bold(true), "Últimos episodios")
		y++
	}

	state := v.store.State()
	for i, ep := range v.latest {
		if y >= contentH {
			break
		}
		style := base
		prefix := "  "
		if i == v.selected {
			style = style.Background(ColorSelection)
			prefix = "› "
		}
		if state.Current != nil && state.Current.ID == ep.ID {
			if state.Playing {
				style = style.Foreground(ColorPlaying)
			} else {
				style = style.Foreground(ColorPaused)
			}
		}
		row := fmt.Sprintf("%s%s  %s · %s", prefix, ep.Title, ep.Category, ep.Duration)
		if i == v.selected {
			fillRow(s, y, w, style)
		}
		drawTextLimit(s, 2, y, w-4, style, row)
		y++
	}

	y++
	if y < contentH {
		cats := v.catalog.Categories()[1:]
		drawTextLimit(s, 2, y, w-4, base.Foreground(ColorDimmed),
			"Categorías: "+strings.Join(cats, " · "))
		y += 2
	}
	if y < contentH {
		drawText(s, 2, y, base.Foreground(ColorAccent), "Pulsa 2 o :episodes para ver el catálogo completo")
	}
}

func (v *HomeView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		return v.moveSelection(1)
	case tcell.KeyUp:
		return v.moveSelection(-1)
	case tcell.KeyEnter:
		if v.OnOpen != nil && v.selected < len(v.latest) {
			v.OnOpen(v.latest[v.selected].ID)
		}
		return true
	}
	switch ev.Rune() {
	case 'j':
		return v.moveSelection(1)
	case 'k':
		return v.moveSelection(-1)
	case 'p':
		if v.OnPlay != nil && v.selected < len(v.latest) {
			v.OnPlay(v.latest[v.selected])
		}
		return true
	case 'e':
		if v.OnBrowse != nil {
			v.OnBrowse()
		}
		return true
	}
	return false
}

func (v *HomeView) moveSelection(delta int) bool {
	next := v.selected + delta
	if next < 0 || next >= len(v.latest) {
		return false
	}
	v.selected = next
	return true
}
