package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/solenne/marquee/pkg/model"
)

// DetailModel is the overlay opened when a tile is selected.
type DetailModel struct {
	visible bool
	item    model.ContentItem
	pos     model.FocusPosition
	width   int
	height  int
	copied  bool
}

// Show opens the overlay for the given item.
func (m *DetailModel) Show(item model.ContentItem, pos model.FocusPosition) {
	m.visible = true
	m.item = item
	m.pos = pos
	m.copied = false
}

// Hide closes the overlay
func (m *DetailModel) Hide() {
	m.visible = false
}

// IsVisible returns true if the overlay is showing
func (m *DetailModel) IsVisible() bool {
	return m.visible
}

// SetSize sets dimensions
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Item returns the item currently shown.
func (m *DetailModel) Item() model.ContentItem {
	return m.item
}

// Yank copies the content ID to the system clipboard.
func (m *DetailModel) Yank() {
	if err := clipboard.WriteAll(m.item.ContentID); err == nil {
		m.copied = true
	}
}

// View renders the detail overlay
func (m DetailModel) View() string {
	if !m.visible {
		return ""
	}

	boxWidth := m.width * 2 / 3
	if boxWidth < 40 {
		boxWidth = 40
	}
	if boxWidth > m.width-4 && m.width > 4 {
		boxWidth = m.width - 4
	}

	var b strings.Builder
	b.WriteString(m.renderBody(boxWidth - 4))

	b.WriteString("\n")
	hint := "[y] copy id   [esc] close"
	if m.copied {
		hint = "copied!   " + hint
	}
	b.WriteString(HintStyle.Render(hint))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())
}

// renderBody renders the item's details as markdown. Falls back to plain
// text when the renderer cannot be built.
func (m DetailModel) renderBody(wrap int) string {
	if wrap < 20 {
		wrap = 20
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", m.item.Title)
	if m.item.Rating != "" || m.item.Year > 0 {
		if m.item.Year > 0 {
			fmt.Fprintf(&md, "**%d**", m.item.Year)
		}
		if m.item.Rating != "" {
			if m.item.Year > 0 {
				md.WriteString(" · ")
			}
			fmt.Fprintf(&md, "`%s`", m.item.Rating)
		}
		md.WriteString("\n\n")
	}
	if m.item.Synopsis != "" {
		md.WriteString(m.item.Synopsis + "\n")
	} else {
		md.WriteString("*No synopsis available.*\n")
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md.String()
	}
	out, err := r.Render(md.String())
	if err != nil {
		return md.String()
	}
	return strings.TrimRight(out, "\n")
}
