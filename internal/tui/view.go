package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func (m *model) View() string {
	if m.shuttingDown {
		return ""
	}
	hits := emptyHitMap()
	cb := &contentBuilder{}
	if !m.layout.compact {
		cb.WriteBlock(renderLogo())
	}
	cb.WriteBlock(m.heroView())

	fieldView := m.fieldView()
	cb.WriteBlock(fieldView)
	hits.fieldBottom = cb.Line()
	hits.fieldTop = hits.fieldBottom - lipgloss.Height(fieldView) + 1
	hits.fieldLeft = 0
	hits.fieldRight = lipgloss.Width(fieldView)

	cb.WriteRune('\n')
	row := cb.Line()
	affordances, badge, cta := m.affordanceRow()
	cb.WriteString(affordances)
	if badge.visible {
		hits.badgeRow, hits.badgeStart, hits.badgeEnd = row, badge.start, badge.end
	}
	if cta.visible {
		hits.ctaRow, hits.ctaStart, hits.ctaEnd = row, cta.start, cta.end
	}

	if m.errorMessage != "" {
		cb.WriteBlock(errorStyle.Render(m.errorMessage))
	} else if m.infoMessage != "" {
		cb.WriteBlock(infoStyle.Render(m.infoMessage))
	}
	cb.WriteBlock(m.help.View(m.keys))
	m.hits = hits
	return pageStyle.Render(cb.String())
}

func (m *model) heroView() string {
	width := m.layout.wrapWidth
	parts := []string{
		heroTitleStyle.Render(wordwrap.String(m.config.Headline, width)),
		subtitleStyle.Render(wordwrap.String(m.config.Subtitle, width)),
	}
	if !m.layout.compact {
		parts = append(parts, taglineStyle.Render(heroTagline))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) fieldView() string {
	style := fieldFrameStyle
	if m.field.Focused() {
		style = fieldFocusStyle
	}
	return style.Render(m.field.View())
}

type span struct {
	visible bool
	start   int
	end     int
}

// affordanceRow renders the line under the field: the tab badge trails
// the placeholder text and the CTA sits against the right edge.
func (m *model) affordanceRow() (string, span, span) {
	var badge, cta span
	frameWidth := m.layout.frameWidth()
	if m.state.TabAffordanceVisible() && !m.layout.compact {
		rendered := tabBadgeStyle.Render(tabBadgeLabel)
		width := lipgloss.Width(rendered)
		start := badgeColumn(m.state.CaretOffset(), width, frameWidth)
		badge = span{visible: true, start: start, end: start + width}
		return strings.Repeat(" ", start) + rendered, badge, cta
	}
	if m.state.CTAVisible() {
		rendered := ctaStyle.Render(ctaLabel)
		width := lipgloss.Width(rendered)
		start := frameWidth - width
		if start < 0 {
			start = 0
		}
		cta = span{visible: true, start: start, end: start + width}
		return strings.Repeat(" ", start) + rendered, badge, cta
	}
	return helperStyle.Render(m.fieldHint()), badge, cta
}

func (m *model) fieldHint() string {
	if m.field.Focused() {
		return "Esc leaves the field."
	}
	return ""
}

// badgeColumn converts a caret offset in character cells into the column
// where the badge starts, keeping the badge inside the field frame.
func badgeColumn(caret float64, badgeWidth, frameWidth int) int {
	col := fieldTextInset + int(math.Round(caret))
	if limit := frameWidth - badgeWidth; col > limit {
		col = limit
	}
	if col < 0 {
		col = 0
	}
	return col
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y][x] = cell{r: r, style: logoFaceStyle}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
