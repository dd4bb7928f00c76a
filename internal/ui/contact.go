package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/markdown"
)

type contactField int

const (
	fieldName contactField = iota
	fieldEmail
	fieldMessage
	fieldCount
)

var fieldLabels = [fieldCount]string{"Nombre", "Correo", "Mensaje"}

// ContactView is the contact form. Submissions are display-only: the form
// validates, confirms and resets, nothing leaves the terminal.
type ContactView struct {
	converter *markdown.Converter

	values    [fieldCount]string
	focus     contactField
	errors    [fieldCount]string
	submitted bool
}

func NewContactView() *ContactView {
	return &ContactView{converter: markdown.NewConverter()}
}

func (v *ContactView) Draw(s tcell.Screen) {
	w, h := s.Size()
	contentH := h - 3
	base := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)

	y := 1
	for _, line := range markdown.Wrap(v.converter.Render(contactIntro), w-4) {
		if y >= contentH {
			return
		}
		drawStyledLine(s, 2, y, w-4, base, line)
		y++
	}
	y++

	for f := fieldName; f < fieldCount; f++ {
		if y+2 >= contentH {
			return
		}
		labelStyle := base.Foreground(ColorDimmed)
		boxStyle := base
		if f == v.focus {
			labelStyle = base.Foreground(ColorAccent).Bold(true)
			boxStyle = base.Background(ColorSelection)
		}
		drawText(s, 2, y, labelStyle, fieldLabels[f])
		y++
		fillRow(s, y, w-4, boxStyle)
		value := v.values[f]
		if f == v.focus {
			value += "▏"
		}
		drawTextLimit(s, 2, y, w-6, boxStyle, value)
		y++
		if v.errors[f] != "" {
			drawTextLimit(s, 2, y, w-4, base.Foreground(ColorError), v.errors[f])
			y++
		}
		y++
	}

	if v.submitted && y < contentH {
		drawText(s, 2, y, base.Foreground(ColorPlaying).Bold(true), "¡Mensaje enviado! Gracias por escribirnos.")
		y += 2
	}
	if y < contentH {
		drawText(s, 2, y, base.Foreground(ColorDimmed), "Tab cambia de campo · Enter envía")
		y++
	}
	if y < contentH {
		for _, line := range markdown.Wrap(v.converter.Render(contactOutro), w-4) {
			if y >= contentH {
				break
			}
			drawStyledLine(s, 2, y, w-4, base, line)
			y++
		}
	}
}

func (v *ContactView) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyTab, tcell.KeyDown:
		v.focus = (v.focus + 1) % fieldCount
		return true
	case tcell.KeyBacktab, tcell.KeyUp:
		v.focus = (v.focus + fieldCount - 1) % fieldCount
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		cur := v.values[v.focus]
		if cur != "" {
			runes := []rune(cur)
			v.values[v.focus] = string(runes[:len(runes)-1])
		}
		v.submitted = false
		return true
	case tcell.KeyEnter:
		v.submit()
		return true
	case tcell.KeyRune:
		v.values[v.focus] += string(ev.Rune())
		v.submitted = false
		return true
	}
	return false
}

func (v *ContactView) submit() {
	v.errors = [fieldCount]string{}
	ok := true
	if strings.TrimSpace(v.values[fieldName]) == "" {
		v.errors[fieldName] = "Escribe tu nombre."
		ok = false
	}
	email := strings.TrimSpace(v.values[fieldEmail])
	if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		v.errors[fieldEmail] = "Escribe un correo válido."
		ok = false
	}
	if strings.TrimSpace(v.values[fieldMessage]) == "" {
		v.errors[fieldMessage] = "El mensaje no puede estar vacío."
		ok = false
	}
	if !ok {
		v.submitted = false
		return
	}
	v.values = [fieldCount]string{}
	v.focus = fieldName
	v.submitted = true
}
