package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/solenne/marquee/pkg/model"
)

// Layout constants for vertical windowing.
const (
	headerLines = 2 // title + divider
	footerLines = 2 // divider + key hints
	// rowBlockLines is one row's rendered height: title, 4-line tile box,
	// trailing blank.
	rowBlockLines = 6
)

// visibleRowCount returns how many row blocks fit in the current window.
func (m *BrowserModel) visibleRowCount() int {
	content := m.height - headerLines - footerLines
	count := content / rowBlockLines
	if count < 1 {
		count = 1
	}
	return count
}

// rowViewportWidth is the horizontal space available to a row's tiles.
func (m *BrowserModel) rowViewportWidth() int {
	w := m.width - SpaceSM*2
	if w < m.cfg.TileWidth {
		w = m.cfg.TileWidth
	}
	return w
}

// View implements tea.Model
func (m *BrowserModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return ""
	}

	switch m.state {
	case stateLoading:
		return m.viewLoading()
	case stateFailed:
		return m.viewFailed()
	}

	if m.help.IsVisible() {
		return m.centerOverlay(m.help.View())
	}
	if m.search.Active() {
		return m.centerOverlay(m.search.View())
	}
	if m.detail.IsVisible() {
		return m.centerOverlay(m.detail.View())
	}

	return m.viewGrid()
}

func (m *BrowserModel) viewLoading() string {
	msg := m.spin.View() + " Loading catalog..."
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m *BrowserModel) viewFailed() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDanger).
		Padding(1, 3).
		Render(ErrorStyle.Render("Couldn't load the catalog") + "\n\n" +
			PlaceholderStyle.Render(m.loadErr) + "\n\n" +
			HintStyle.Render("[R] retry   [q] quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *BrowserModel) viewGrid() string {
	var b strings.Builder

	// Header
	title := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("MARQUEE")
	pos := m.Position()
	counter := HintStyle.Render(fmt.Sprintf("row %d/%d", pos.Row+1, len(m.rows)))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(counter) - SpaceSM*2
	if gap < 1 {
		gap = 1
	}
	b.WriteString(" " + title + strings.Repeat(" ", gap) + counter + "\n")
	b.WriteString(RenderDivider(m.width) + "\n")

	// Row window
	last := m.topRow + m.visibleRowCount()
	if last > len(m.rows) {
		last = len(m.rows)
	}
	for i := m.topRow; i < last; i++ {
		b.WriteString(m.renderRow(i))
	}

	// Footer
	b.WriteString(RenderDivider(m.width) + "\n")
	b.WriteString(" " + HintStyle.Render("←↓↑→/hjkl move · enter open · / search · ? help · q quit"))

	return b.String()
}

// renderRow renders one row block: title line, content, trailing blank.
func (m *BrowserModel) renderRow(row int) string {
	var b strings.Builder

	focusedRow := m.Position().Row == row

	titleStyle := RowTitleStyle
	if focusedRow {
		titleStyle = FocusedRowTitleStyle
	}
	title := titleStyle.Render(m.rows[row].Title)

	status := m.res.Status(row)
	if status != model.StatusReady {
		title += " " + RenderStatusBadge(status)
	}
	b.WriteString(" " + title + "\n")

	switch status {
	case model.StatusPending:
		if m.vis.Eligible(row) {
			b.WriteString(m.renderRowPlaceholder(m.spin.View() + " loading collection..."))
		} else {
			b.WriteString(m.renderRowPlaceholder(PlaceholderStyle.Render("── scroll to load ──")))
		}
	case model.StatusLoading:
		b.WriteString(m.renderRowPlaceholder(m.spin.View() + " loading collection..."))
	case model.StatusFailed:
		b.WriteString(m.renderRowPlaceholder(ErrorStyle.Render("⚠ " + m.res.ErrorMessage(row))))
	case model.StatusReady:
		items := m.res.Items(row)
		if len(items) == 0 {
			b.WriteString(m.renderRowPlaceholder(PlaceholderStyle.Render("nothing in this collection")))
		} else {
			b.WriteString(m.renderTiles(row, items))
		}
	}

	b.WriteString("\n")
	return b.String()
}

// renderRowPlaceholder pads a single message line to the row block height.
func (m *BrowserModel) renderRowPlaceholder(msg string) string {
	return "\n " + msg + "\n\n\n"
}

// renderTiles renders the horizontal tile strip for a row, windowed by the
// row's remembered scroll offset.
func (m *BrowserModel) renderTiles(row int, items []model.ContentItem) string {
	stride := m.cfg.TileWidth + m.cfg.TileGap
	avail := m.rowViewportWidth()

	firstTile := 0
	if off := m.rowOffsets[row]; off > 0 && stride > 0 {
		firstTile = off / stride
	}

	var tiles []string
	used := 0
	for col := firstTile; col < len(items); col++ {
		if used+m.cfg.TileWidth > avail {
			break
		}
		tiles = append(tiles, m.renderTile(row, col, items[col]))
		used += stride
	}
	if len(tiles) == 0 && len(items) > 0 {
		tiles = append(tiles, m.renderTile(row, firstTile, items[firstTile]))
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, joinWithGap(tiles, m.cfg.TileGap)...)
	return " " + strings.ReplaceAll(strip, "\n", "\n ") + "\n"
}

// joinWithGap interleaves spacer columns between tiles.
func joinWithGap(tiles []string, gap int) []string {
	if gap <= 0 || len(tiles) < 2 {
		return tiles
	}
	spacer := strings.Repeat(" ", gap)
	out := make([]string, 0, len(tiles)*2-1)
	for i, tile := range tiles {
		if i > 0 {
			out = append(out, spacer)
		}
		out = append(out, tile)
	}
	return out
}

// renderTile renders one bordered tile.
func (m *BrowserModel) renderTile(row, col int, item model.ContentItem) string {
	inner := m.cfg.TileWidth - 2 // border columns

	title := item.Title
	if title == "" {
		title = item.ContentID
	}
	title = runewidth.Truncate(title, inner, "…")

	meta := ""
	if item.Year > 0 {
		meta = fmt.Sprintf("%d", item.Year)
	}
	if item.Rating != "" {
		if meta != "" {
			meta += " "
		}
		meta += item.Rating
	}
	meta = runewidth.Truncate(meta, inner, "…")

	style := TileStyle
	if m.coord != nil && m.coord.IsFocused(row, col) {
		style = FocusedTileStyle
	}
	return style.Width(inner).Render(title + "\n" + HintStyle.Render(meta))
}

// centerOverlay places an overlay box in the middle of the screen.
func (m *BrowserModel) centerOverlay(overlay string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}
