package ui

import (
	"github.com/gdamore/tcell/v2"
)

// HelpDialog is the keybinding overlay, drawn centered on top of whatever
// page is active.
type HelpDialog struct {
	visible      bool
	scrollOffset int
}

func NewHelpDialog() *HelpDialog {
	return &HelpDialog{}
}

func (h *HelpDialog) Show() {
	h.visible = true
	h.scrollOffset = 0
}

func (h *HelpDialog) Hide() {
	h.visible = false
}

func (h *HelpDialog) IsVisible() bool {
	return h.visible
}

func (h *HelpDialog) Draw(s tcell.Screen) {
	if !h.visible {
		return
	}

	w, screenHeight := s.Size()
	lines := helpContent()

	maxLineWidth := 0
	for _, line := range lines {
		if len(line) > maxLineWidth {
			maxLineWidth = len(line)
		}
	}
	dialogWidth := maxLineWidth + 4
	if dialogWidth > w-4 {
		dialogWidth = w - 4
	}
	if dialogWidth < 40 {
		dialogWidth = 40
	}

	dialogHeight := len(lines) + 6
	if max := screenHeight - 4; dialogHeight > max {
		dialogHeight = max
	}
	if dialogHeight < 10 {
		dialogHeight = 10
	}

	startX := (w - dialogWidth) / 2
	startY := (screenHeight - dialogHeight) / 2
	if startX < 1 {
		startX = 1
	}
	if startY < 1 {
		startY = 1
	}

	dialogStyle := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)
	for y := startY; y < startY+dialogHeight; y++ {
		for x := startX; x < startX+dialogWidth; x++ {
			s.SetContent(x, y, ' ', nil, dialogStyle)
		}
	}

	for x := startX; x < startX+dialogWidth; x++ {
		switch x {
		case startX:
			s.SetContent(x, startY, '┌', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '└', nil, dialogStyle)
		case startX + dialogWidth - 1:
			s.SetContent(x, startY, '┐', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '┘', nil, dialogStyle)
		default:
			s.SetContent(x, startY, '─', nil, dialogStyle)
			s.SetContent(x, startY+dialogHeight-1, '─', nil, dialogStyle)
		}
	}
	for y := startY + 1; y < startY+dialogHeight-1; y++ {
		s.SetContent(startX, y, '│', nil, dialogStyle)
		s.SetContent(startX+dialogWidth-1, y, '│', nil, dialogStyle)
	}

	title := "Ayuda · Atajos de teclado"
	titleStyle := dialogStyle.Foreground(ColorYellow).Bold(true)
	drawText(s, startX+(dialogWidth-len([]rune(title)))/2, startY+1, titleStyle, title)

	contentStartY := startY + 3
	visibleLines := dialogHeight - 5
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if h.scrollOffset > maxScroll {
		h.scrollOffset = maxScroll
	}

	for i := 0; i < visibleLines && i+h.scrollOffset < len(lines); i++ {
		line := lines[i+h.scrollOffset]
		drawTextLimit(s, startX+2, contentStartY+i, dialogWidth-4, dialogStyle, line)
	}

	footer := "Esc o ? para cerrar"
	if len(lines) > visibleLines {
		footer = "j/k desplaza · Esc o ? para cerrar"
	}
	footerStyle := dialogStyle.Foreground(ColorDimmed)
	fx := startX + (dialogWidth-len([]rune(footer)))/2
	if fx < startX+2 {
		fx = startX + 2
	}
	drawText(s, fx, startY+dialogHeight-2, footerStyle, footer)
}

func (h *HelpDialog) HandleKey(ev *tcell.EventKey) bool {
	if !h.visible {
		return false
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		h.Hide()
		return true
	case tcell.KeyUp:
		h.scrollUp()
		return true
	case tcell.KeyDown:
		h.scrollDown()
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?':
			h.Hide()
			return true
		case 'j':
			h.scrollDown()
			return true
		case 'k':
			h.scrollUp()
			return true
		case 'g':
			h.scrollOffset = 0
			return true
		}
	}

	// Consume everything else while visible.
	return true
}

func helpContent() []string {
	return []string{
		"",
		"Páginas:",
		"  1             Inicio",
		"  2             Episodios",
		"  3             Acerca de",
		"  4             Contacto",
		"  :             Modo comando (:episode 3, :about, :quit…)",
		"",
		"Listas:",
		"  j / k         Bajar / subir",
		"  g / G         Ir al principio / final",
		"  Enter         Abrir episodio seleccionado",
		"  p             Reproducir episodio seleccionado",
		"",
		"Episodios:",
		"  /             Buscar por título o descripción",
		"  c / C         Cambiar categoría",
		"  x             Limpiar búsqueda",
		"",
		"Detalle:",
		"  n / N         Episodio siguiente / anterior",
		"  b             Volver al catálogo",
		"",
		"Reproductor:",
		"  Espacio       Pausar / reanudar",
		"  s             Detener",
		"  ← / →         Retroceder / avanzar 10 segundos",
		"  + / -         Subir / bajar volumen",
		"  g 0-9         Saltar a esa fracción del episodio",
		"",
		"General:",
		"  ?             Esta ayuda",
		"  Q             Salir",
	}
}

func (h *HelpDialog) scrollUp() {
	if h.scrollOffset > 0 {
		h.scrollOffset--
	}
}

func (h *HelpDialog) scrollDown() {
	lines := helpContent()
	visibleLines := 15
	maxScroll := len(lines) - visibleLines
	if maxScroll < 0 {
		maxScroll = 0
	}
	if h.scrollOffset < maxScroll {
		h.scrollOffset++
	}
}
