package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeader(t *testing.T) {
	c := NewConverter()

	lines := c.Render("## Acerca del programa")
	require.Len(t, lines, 1)
	assert.Equal(t, "Acerca del programa", lines[0].Text)
	require.Len(t, lines[0].Spans, 1)
	assert.Equal(t, Span{Start: 0, End: 19, Type: StyleHeader}, lines[0].Spans[0])
}

func TestRenderInlineStyles(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name  string
		in    string
		text  string
		spans []Span
	}{
		{"bold", "hola **mundo** cruel", "hola mundo cruel", []Span{{5, 10, StyleBold}}},
		{"italic", "un _susurro_ apenas", "un susurro apenas", []Span{{3, 10, StyleItalic}}},
		{"code", "usa `mpv` para esto", "usa mpv para esto", []Span{{4, 7, StyleCode}}},
		{"link keeps the label", "ver [notas](https://x.y) hoy", "ver notas hoy", []Span{{4, 9, StyleLink}}},
		{"plain text untouched", "sin adornos", "sin adornos", nil},
		{"two styles in order", "**a** y `b`", "a y b", []Span{{0, 1, StyleBold}, {4, 5, StyleCode}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := c.Render(tt.in)
			require.Len(t, lines, 1)
			assert.Equal(t, tt.text, lines[0].Text)
			assert.Equal(t, tt.spans, lines[0].Spans)
		})
	}
}

func TestRenderListAndBlockquote(t *testing.T) {
	c := NewConverter()

	lines := c.Render("- primero\n> una cita")
	require.Len(t, lines, 2)
	assert.Equal(t, "• primero", lines[0].Text)
	assert.Equal(t, "│ una cita", lines[1].Text)
}

func TestRenderStripsHTMLAndEntities(t *testing.T) {
	c := NewConverter()

	lines := c.Render("caf&eacute; <b>fuerte</b>")
	require.Len(t, lines, 1)
	assert.Equal(t, "café fuerte", lines[0].Text)
}

func TestRenderPreservesBlankLines(t *testing.T) {
	c := NewConverter()

	lines := c.Render("uno\n\ndos")
	require.Len(t, lines, 3)
	assert.Equal(t, "", lines[1].Text)
}

func TestWrapSplitsSpansAcrossBreaks(t *testing.T) {
	in := []Line{{
		Text:  "una frase con **énfasis** al final",
		Spans: nil,
	}}
	c := NewConverter()
	rendered := c.Render("una frase con **énfasis** al final")
	require.Len(t, rendered, 1)

	wrapped := Wrap(rendered, 16)
	require.Len(t, wrapped, 2)
	assert.Equal(t, "una frase con", wrapped[0].Text)
	assert.Equal(t, "énfasis al final", wrapped[1].Text)
	require.Len(t, wrapped[1].Spans, 1)
	assert.Equal(t, Span{Start: 0, End: 7, Type: StyleBold}, wrapped[1].Spans[0])

	// Narrow widths never loop forever.
	assert.NotEmpty(t, Wrap(in, 1))
}

func TestWrapShortLineUnchanged(t *testing.T) {
	lines := Wrap([]Line{{Text: "corta"}}, 80)
	require.Len(t, lines, 1)
	assert.Equal(t, "corta", lines[0].Text)
}
