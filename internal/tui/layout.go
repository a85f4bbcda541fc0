package tui

import (
	"strings"
)

type pageLayout struct {
	wrapWidth  int
	fieldWidth int
	compact    bool
}

func newPageLayout() pageLayout {
	return pageLayout{
		wrapWidth:  76,
		fieldWidth: 72,
	}
}

// Update sizes the hero for a window. Windows narrower than compactWidth
// drop the logo and the tab badge.
func (l *pageLayout) Update(width, compactWidth int) {
	inner := width - pageHorizontalPadding
	if inner < minFieldWidth {
		inner = minFieldWidth
	}
	if inner > maxFieldWidth {
		inner = maxFieldWidth
	}
	l.wrapWidth = inner
	l.fieldWidth = inner - fieldFrameWidth
	l.compact = compactWidth > 0 && width < compactWidth
}

// frameWidth is the outer width of the bordered field.
func (l pageLayout) frameWidth() int {
	return l.fieldWidth + fieldFrameWidth
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

// WriteBlock appends a block separated from earlier content by a blank line.
func (cb *contentBuilder) WriteBlock(s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	if cb.builder.Len() > 0 {
		cb.WriteString("\n\n")
	}
	cb.WriteString(s)
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

// Line is the zero-based line the next write starts on.
func (cb *contentBuilder) Line() int {
	return cb.lines
}

func previewText(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
