// Package markdown renders a small markdown subset to terminal lines with
// style spans. It covers what the bundled page copy and episode descriptions
// use: headers, emphasis, inline code, links, list items and blockquotes.
// HTML tags are stripped and entities decoded.
package markdown

import (
	"html"
	"regexp"
	"strings"
)

type Converter struct {
	header     *regexp.Regexp
	listItem   *regexp.Regexp
	blockquote *regexp.Regexp
	htmlTag    *regexp.Regexp
	inline     *regexp.Regexp
}

func NewConverter() *Converter {
	return &Converter{
		header:     regexp.MustCompile(`^(#{1,6})\s+(.+)$`),
		listItem:   regexp.MustCompile(`^(\s*)([-*+]|\d+\.)\s+(.+)$`),
		blockquote: regexp.MustCompile(`^>\s*(.+)$`),
		htmlTag:    regexp.MustCompile(`<[^>]*>`),
		// Inline patterns combined so a single left-to-right scan finds the
		// earliest of bold, italic, code and link.
		inline: regexp.MustCompile("\\*\\*([^*]+)\\*\\*|__([^_]+)__|\\*([^*]+)\\*|_([^_]+)_|`([^`]+)`|\\[([^\\]]+)\\]\\(([^)]+)\\)"),
	}
}

// Render converts input to terminal lines. Empty input yields no lines;
// blank lines in the input are preserved as empty lines.
func (c *Converter) Render(input string) []Line {
	input = html.UnescapeString(input)
	input = c.htmlTag.ReplaceAllString(input, "")
	input = strings.ReplaceAll(input, "\r\n", "\n")

	var out []Line
	for _, raw := range strings.Split(input, "\n") {
		out = append(out, c.renderLine(raw))
	}
	// Drop a single trailing blank produced by a final newline.
	if n := len(out); n > 0 && out[n-1].Text == "" {
		out = out[:n-1]
	}
	return out
}

func (c *Converter) renderLine(raw string) Line {
	if m := c.header.FindStringSubmatch(raw); m != nil {
		line := c.renderInline(m[2])
		line.Spans = append(line.Spans, Span{Start: 0, End: runeLen(line.Text), Type: StyleHeader})
		return line
	}
	if m := c.listItem.FindStringSubmatch(raw); m != nil {
		line := c.renderInline(m[3])
		prefix := m[1] + "• "
		return prependText(prefix, line)
	}
	if m := c.blockquote.FindStringSubmatch(raw); m != nil {
		line := c.renderInline(m[1])
		return prependText("│ ", line)
	}
	return c.renderInline(raw)
}

// renderInline strips inline markup, recording a style span for each match.
func (c *Converter) renderInline(text string) Line {
	var b strings.Builder
	var spans []Span
	pos := 0 // rune position in the output

	for len(text) > 0 {
		loc := c.inline.FindStringSubmatchIndex(text)
		if loc == nil {
			b.WriteString(text)
			break
		}

		before := text[:loc[0]]
		b.WriteString(before)
		pos += runeLen(before)

		groups := []struct {
			idx   int
			style StyleType
		}{
			{1, StyleBold}, {2, StyleBold},
			{3, StyleItalic}, {4, StyleItalic},
			{5, StyleCode},
			{6, StyleLink},
		}
		for _, g := range groups {
			start, end := loc[2*g.idx], loc[2*g.idx+1]
			if start < 0 {
				continue
			}
			inner := text[start:end]
			b.WriteString(inner)
			spans = append(spans, Span{Start: pos, End: pos + runeLen(inner), Type: g.style})
			pos += runeLen(inner)
			break
		}

		text = text[loc[1]:]
	}

	return Line{Text: b.String(), Spans: spans}
}

// Wrap word-wraps rendered lines to the given width, splitting style spans
// across the breaks. Widths below 1 return the input unchanged.
func Wrap(lines []Line, width int) []Line {
	if width < 1 {
		return lines
	}

	var out []Line
	for _, line := range lines {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

func wrapLine(line Line, width int) []Line {
	runes := []rune(line.Text)
	if len(runes) <= width {
		return []Line{line}
	}

	var parts []Line
	offset := 0
	for len(runes) > width {
		cut := width
		for i := width; i > 0; i-- {
			if runes[i-1] == ' ' {
				cut = i
				break
			}
		}
		parts = append(parts, sliceLine(line, offset, offset+cut))
		runes = runes[cut:]
		offset += cut
		// Trim the leading space carried over the break.
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
			offset++
		}
	}
	if len(runes) > 0 {
		parts = append(parts, sliceLine(line, offset, offset+len(runes)))
	}
	return parts
}

// sliceLine extracts [start, end) of a line, shifting spans to the slice.
func sliceLine(line Line, start, end int) Line {
	runes := []rune(line.Text)
	if end > len(runes) {
		end = len(runes)
	}
	part := Line{Text: strings.TrimRight(string(runes[start:end]), " ")}
	limit := start + runeLen(part.Text)

	for _, sp := range line.Spans {
		s, e := sp.Start, sp.End
		if e <= start || s >= limit {
			continue
		}
		if s < start {
			s = start
		}
		if e > limit {
			e = limit
		}
		part.Spans = append(part.Spans, Span{Start: s - start, End: e - start, Type: sp.Type})
	}
	return part
}

func prependText(prefix string, line Line) Line {
	shift := runeLen(prefix)
	spans := make([]Span, len(line.Spans))
	for i, sp := range line.Spans {
		spans[i] = Span{Start: sp.Start + shift, End: sp.End + shift, Type: sp.Type}
	}
	return Line{Text: prefix + line.Text, Spans: spans}
}

func runeLen(s string) int {
	return len([]rune(s))
}
