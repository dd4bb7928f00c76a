package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/jmrivas/ondacast/internal/markdown"
)

// Tokyo Night palette, reduced to what the views use.
var (
	ColorBg          = tcell.NewRGBColor(0x1a, 0x1b, 0x26)
	ColorBgHighlight = tcell.NewRGBColor(0x29, 0x2e, 0x42)
	ColorFg          = tcell.NewRGBColor(0xc0, 0xca, 0xf5)
	ColorFgDark      = tcell.NewRGBColor(0x56, 0x5f, 0x89)

	ColorBlue    = tcell.NewRGBColor(0x7a, 0xa2, 0xf7)
	ColorCyan    = tcell.NewRGBColor(0x7d, 0xcf, 0xff)
	ColorGreen   = tcell.NewRGBColor(0x9e, 0xce, 0x6a)
	ColorMagenta = tcell.NewRGBColor(0xbb, 0x9a, 0xf7)
	ColorOrange  = tcell.NewRGBColor(0xff, 0x9e, 0x64)
	ColorRed     = tcell.NewRGBColor(0xf7, 0x76, 0x8e)
	ColorYellow  = tcell.NewRGBColor(0xe0, 0xaf, 0x68)

	// Role mappings.
	ColorHeader    = ColorBlue
	ColorAccent    = ColorMagenta
	ColorPlaying   = ColorGreen
	ColorPaused    = ColorYellow
	ColorError     = ColorRed
	ColorDimmed    = ColorFgDark
	ColorSelection = ColorBgHighlight
)

// styleFor maps a markdown style span to a tcell style.
func styleFor(t markdown.StyleType, base tcell.Style) tcell.Style {
	switch t {
	case markdown.StyleBold:
		return base.Bold(true)
	case markdown.StyleItalic:
		return base.Italic(true)
	case markdown.StyleCode:
		return base.Foreground(ColorCyan)
	case markdown.StyleLink:
		return base.Foreground(ColorBlue).Underline(true)
	case markdown.StyleHeader:
		return base.Foreground(ColorHeader).Bold(true)
	default:
		return base
	}
}
