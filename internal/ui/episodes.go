package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/store"
)

// EpisodesView is the full catalog browser: text search plus a category
// filter, both narrowing the same result list.
type EpisodesView struct {
	catalog *catalog.Catalog
	store   *store.Store
	search  *SearchState

	categories  []string
	categoryIdx int

	results   []*catalog.Episode
	selected  int
	scrollTop int

	OnOpen func(id int)
	OnPlay func(ep *catalog.Episode)
}

func NewEpisodesView(c *catalog.Catalog, st *store.Store) *EpisodesView {
	v := &EpisodesView{
		catalog:    c,
		store:      st,
		search:     NewSearchState(),
		categories: c.Categories(),
	}
	v.Refresh()
	return v
}

func (v *EpisodesView) SearchState() *SearchState {
	return v.search
}

// Category returns the active category filter.
func (v *EpisodesView) Category() string {
	return v.categories[v.categoryIdx]
}

// Refresh recomputes the result list from the current search query and
// category. Substring matching decides membership; the fzf score only
// reorders what matched.
func (v *EpisodesView) Refresh() {
	v.results = v.catalog.Filter(v.search.Query(), v.Category())
	v.search.Rank(v.results)
	if v.selected >= len(v.results) {
		v.selected = len(v.results) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	v.scrollTop = 0
}

func (v *EpisodesView) Selected() *catalog.Episode {
	if v.selected < 0 || v.selected >= len(v.results) {
		return nil
	}
	return v.results[v.selected]
}

func (v *EpisodesView) CycleCategory(delta int) {
	n := len(v.categories)
	v.categoryIdx = ((v.categoryIdx+delta)%n + n) % n
	v.Refresh()
}

func (v *EpisodesView) Draw(s tcell.Screen) {
	w, h := s.Size()
	contentH := h - 3
	base := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)

	y := 1
	drawText(s, 2, y, base.Foreground(ColorHeader).Bold(true), "Episodios")
	y += 2

	// Search line.
	label := "Buscar (/): "
	x := 2 + drawText(s, 2, y, base.Foreground(ColorDimmed), label)
	if v.search.Active() {
		drawTextLimit(s, x, y, w-x-2, base, v.search.Query())
	} else {
		drawTextLimit(s, x, y, w-x-2, base.Foreground(ColorDimmed), "título o descripción…")
	}
	y++

	// Category pills.
	x = 2
	for i, cat := range v.categories {
		style := base.Foreground(ColorDimmed)
		text := " " + cat + " "
		if i == v.categoryIdx {
			style = base.Background(ColorSelection).Foreground(ColorAccent).Bold(true)
		}
		if x+len([]rune(text)) >= w-2 {
			break
		}
		x += drawText(s, x, y, style, text) + 1
	}
	y++

	counter := fmt.Sprintf("%d de %d episodios", len(v.results), v.catalog.Len())
	drawText(s, 2, y, base.Foreground(ColorDimmed), counter)
	y += 2

	if len(v.results) == 0 {
		drawText(s, 2, y, base.Foreground(ColorDimmed), "Sin resultados.")
		drawText(s, 2, y+1, base.Foreground(ColorDimmed), "Prueba con otra búsqueda u otra categoría.")
		return
	}

	visible := contentH - y
	if visible < 1 {
		return
	}
	v.ensureVisible(visible)

	state := v.store.State()
	for i := v.scrollTop; i < len(v.results) && i < v.scrollTop+visible; i++ {
		ep := v.results[i]
		style := base
		if i == v.selected {
			style = style.Background(ColorSelection)
			fillRow(s, y, w, style)
		}

		indicator := " "
		if state.Current != nil && state.Current.ID == ep.ID {
			if state.Playing {
				indicator = "▶"
				style = style.Foreground(ColorPlaying)
			} else {
				indicator = "⏸"
				style = style.Foreground(ColorPaused)
			}
		}
		drawText(s, 2, y, style, indicator)

		meta := fmt.Sprintf("%s · %s", ep.Category, ep.Duration)
		titleWidth := w - 6 - len([]rune(meta)) - 2
		if positions := v.search.HighlightPositions(ep.Title); positions != nil {
			drawHighlighted(s, 4, y, titleWidth, style, ep.Title, positions)
		} else {
			drawTextLimit(s, 4, y, titleWidth, style, ep.Title)
		}
		drawText(s, w-len([]rune(meta))-2, y, style.Foreground(ColorDimmed), meta)
		y++
	}
}

// drawHighlighted draws text with the given rune positions emphasized.
func drawHighlighted(s tcell.Screen, x, y, maxWidth int, style tcell.Style, text string, positions []int) {
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}
	hl := style.Foreground(ColorOrange).Bold(true)
	for i, r := range []rune(text) {
		if i >= maxWidth {
			break
		}
		st := style
		if marked[i] {
			st = hl
		}
		s.SetContent(x+i, y, r, nil, st)
	}
}

func (v *EpisodesView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		return v.moveSelection(1)
	case tcell.KeyUp:
		return v.moveSelection(-1)
	case tcell.KeyEnter:
		if ep := v.Selected(); ep != nil && v.OnOpen != nil {
			v.OnOpen(ep.ID)
		}
		return true
	}
	switch ev.Rune() {
	case 'j':
		return v.moveSelection(1)
	case 'k':
		return v.moveSelection(-1)
	case 'g':
		v.selected = 0
		return true
	case 'G':
		v.selected = len(v.results) - 1
		if v.selected < 0 {
			v.selected = 0
		}
		return true
	case 'p':
		if ep := v.Selected(); ep != nil && v.OnPlay != nil {
			v.OnPlay(ep)
		}
		return true
	case 'c':
		v.CycleCategory(1)
		return true
	case 'C':
		v.CycleCategory(-1)
		return true
	case 'x':
		if v.search.Active() {
			v.search.Clear()
			v.Refresh()
			return true
		}
	}
	return false
}

func (v *EpisodesView) moveSelection(delta int) bool {
	next := v.selected + delta
	if next < 0 || next >= len(v.results) {
		return false
	}
	v.selected = next
	return true
}

func (v *EpisodesView) ensureVisible(visible int) {
	if v.selected < v.scrollTop {
		v.scrollTop = v.selected
	}
	if v.selected >= v.scrollTop+visible {
		v.scrollTop = v.selected - visible + 1
	}
}
