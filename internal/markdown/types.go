package markdown

// StyleType classifies a styled span of rendered text.
type StyleType int

const (
	StyleNormal StyleType = iota
	StyleBold
	StyleItalic
	StyleCode
	StyleLink
	StyleHeader
)

// Span is a half-open range of rune positions within one line.
type Span struct {
	Start int
	End   int
	Type  StyleType
}

// Line is one rendered line of terminal text with its style spans.
type Line struct {
	Text  string
	Spans []Span
}
