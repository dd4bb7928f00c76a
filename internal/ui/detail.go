package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/catalog"
	"github.com/jmrivas/ondacast/internal/markdown"
	"github.com/jmrivas/ondacast/internal/store"
)

// DetailView shows one episode: metadata, notes and credits, with
// previous/next navigation over adjacent catalog ids.
type DetailView struct {
	catalog   *catalog.Catalog
	store     *store.Store
	converter *markdown.Converter

	episode  *catalog.Episode
	notFound int // requested id when no episode matched
	scroll   int

	OnPlay func(ep *catalog.Episode)
	OnBack func()
}

func NewDetailView(c *catalog.Catalog, st *store.Store) *DetailView {
	return &DetailView{catalog: c, store: st, converter: markdown.NewConverter()}
}

// Show points the view at the given episode id. Unknown ids render the
// not-found page instead of failing.
func (v *DetailView) Show(id int) {
	v.scroll = 0
	if ep, ok := v.catalog.FindByID(id); ok {
		v.episode = ep
		v.notFound = 0
		return
	}
	v.episode = nil
	v.notFound = id
}

func (v *DetailView) Episode() *catalog.Episode {
	return v.episode
}

func (v *DetailView) hasPrevious() bool {
	if v.episode == nil {
		return false
	}
	_, ok := v.catalog.Previous(v.episode.ID)
	return ok
}

func (v *DetailView) hasNext() bool {
	if v.episode == nil {
		return false
	}
	_, ok := v.catalog.Next(v.episode.ID)
	return ok
}

func (v *DetailView) Draw(s tcell.Screen) {
	w, h := s.Size()
	contentH := h - 3
	base := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)

	if v.episode == nil {
		v.drawNotFound(s, w, base)
		return
	}
	ep := v.episode

	y := 1
	crumb := fmt.Sprintf("Inicio › Episodios › %s", ep.Title)
	drawTextLimit(s, 2, y, w-4, base.Foreground(ColorDimmed), crumb)
	y += 2

	drawTextLimit(s, 2, y, w-4, base.Foreground(ColorHeader).Bold(true), ep.Title)
	y++
	meta := fmt.Sprintf("Episodio %d · %s · %s · %s", ep.ID, ep.Category, ep.Duration, ep.Date)
	drawText(s, 2, y, base.Foreground(ColorDimmed), meta)
	y += 2

	state := v.store.State()
	action := "p reproducir"
	if state.Current != nil && state.Current.ID == ep.ID {
		if state.Playing {
			action = "p pausar  (reproduciendo)"
		} else {
			action = "p reanudar  (en pausa)"
		}
	}
	nav := ""
	if v.hasPrevious() {
		nav += "  N anterior"
	}
	if v.hasNext() {
		nav += "  n siguiente"
	}
	drawText(s, 2, y, base.Foreground(ColorAccent), action+nav+"  b volver")
	y += 2

	lines := v.bodyLines(w - 4)
	visible := contentH - y
	if visible < 1 {
		return
	}
	maxScroll := len(lines) - visible
	if maxScroll < 0 {
		maxScroll = 0
	}
	if v.scroll > maxScroll {
		v.scroll = maxScroll
	}
	for i := v.scroll; i < len(lines) && y < contentH; i++ {
		drawStyledLine(s, 2, y, w-4, base, lines[i])
		y++
	}
}

// bodyLines renders the description plus the credits block, wrapped.
func (v *DetailView) bodyLines(width int) []markdown.Line {
	lines := v.converter.Render(v.episode.Description)
	if c := v.episode.Credits; c != nil {
		lines = append(lines, markdown.Line{})
		lines = append(lines, v.converter.Render("## Créditos")...)
		if ms := c.MainSource; ms != nil {
			attribution := fmt.Sprintf("**%s** — %s", ms.Title, ms.Author)
			if ms.Publisher != "" {
				attribution += fmt.Sprintf(" (%s, %d)", ms.Publisher, ms.Year)
			}
			lines = append(lines, v.converter.Render(attribution)...)
			for _, link := range ms.Links {
				lines = append(lines, v.converter.Render("- "+link)...)
			}
		}
		for _, src := range c.AdditionalSources {
			entry := fmt.Sprintf("- [%s](%s)", src.Title, src.URL)
			if src.Description != "" {
				entry += " · " + src.Description
			}
			lines = append(lines, v.converter.Render(entry)...)
		}
	}
	return markdown.Wrap(lines, width)
}

func (v *DetailView) drawNotFound(s tcell.Screen, w int, base tcell.Style) {
	drawText(s, 2, 1, base.Foreground(ColorDimmed), "Inicio › Episodios")
	drawText(s, 2, 3, base.Foreground(ColorError).Bold(true), "Episodio no encontrado")
	msg := fmt.Sprintf("No hay ningún episodio con id %d.", v.notFound)
	drawTextLimit(s, 2, 5, w-4, base, msg)
	drawText(s, 2, 7, base.Foreground(ColorAccent), "b volver al catálogo")
}

func (v *DetailView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyDown:
		v.scroll++
		return true
	case tcell.KeyUp:
		if v.scroll > 0 {
			v.scroll--
		}
		return true
	case tcell.KeyEscape:
		if v.OnBack != nil {
			v.OnBack()
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
	case 'p':
		if v.episode != nil && v.OnPlay != nil {
			v.OnPlay(v.episode)
		}
		return true
	case 'n':
		if v.episode != nil {
			if next, ok := v.catalog.Next(v.episode.ID); ok {
				v.Show(next.ID)
			}
		}
		return true
	case 'N':
		if v.episode != nil {
			if prev, ok := v.catalog.Previous(v.episode.ID); ok {
				v.Show(prev.ID)
			}
		}
		return true
	case 'b':
		if v.OnBack != nil {
			v.OnBack()
		}
		return true
	}
	return false
}
