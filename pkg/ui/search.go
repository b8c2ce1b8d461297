package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/solenne/marquee/pkg/model"
)

// searchTarget is one fuzzy-search candidate and the focus position it
// resolves to.
type searchTarget struct {
	label string
	pos   model.FocusPosition
}

// maxSearchResults caps the visible match list.
const maxSearchResults = 8

// SearchModel is the fuzzy jump overlay: type to filter rows and tiles,
// enter to move focus there.
type SearchModel struct {
	active   bool
	query    string
	targets  []searchTarget
	matches  []int // indexes into targets
	selected int
	width    int
	height   int
}

// Open activates the overlay over the given candidates.
func (m *SearchModel) Open(targets []searchTarget) {
	m.active = true
	m.query = ""
	m.targets = targets
	m.selected = 0
	m.refilter()
}

// Close deactivates the overlay.
func (m *SearchModel) Close() {
	m.active = false
}

// Active returns true while the overlay is open.
func (m *SearchModel) Active() bool {
	return m.active
}

// SetSize sets dimensions
func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// refilter rebuilds the match list for the current query.
func (m *SearchModel) refilter() {
	if m.query == "" {
		m.matches = m.matches[:0]
		for i := range m.targets {
			if len(m.matches) >= maxSearchResults {
				break
			}
			m.matches = append(m.matches, i)
		}
		m.selected = 0
		return
	}

	searchStrings := make([]string, len(m.targets))
	for i, t := range m.targets {
		searchStrings[i] = t.label
	}

	results := fuzzy.Find(m.query, searchStrings)
	m.matches = m.matches[:0]
	for _, match := range results {
		if len(m.matches) >= maxSearchResults {
			break
		}
		m.matches = append(m.matches, match.Index)
	}
	m.selected = 0
}

// HandleKey processes one key press. done reports that the overlay closed;
// jump is non-nil when focus should move.
func (m *SearchModel) HandleKey(msg tea.KeyMsg) (jump *model.FocusPosition, done bool) {
	switch msg.String() {
	case "esc":
		m.Close()
		return nil, true
	case "enter":
		m.Close()
		if m.selected < len(m.matches) {
			pos := m.targets[m.matches[m.selected]].pos
			return &pos, true
		}
		return nil, true
	case "up", "ctrl+p":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "ctrl+n":
		if m.selected < len(m.matches)-1 {
			m.selected++
		}
	case "backspace":
		if len(m.query) > 0 {
			m.query = m.query[:len(m.query)-1]
			m.refilter()
		}
	default:
		if len(msg.String()) == 1 && msg.String()[0] >= 32 && msg.String()[0] < 127 {
			m.query += msg.String()
			m.refilter()
		}
	}
	return nil, false
}

// View renders the search overlay
func (m SearchModel) View() string {
	if !m.active {
		return ""
	}

	boxWidth := m.width / 2
	if boxWidth < 36 {
		boxWidth = 36
	}

	var b strings.Builder
	promptStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	b.WriteString(promptStyle.Render("/") + m.query + "█\n\n")

	if len(m.matches) == 0 {
		b.WriteString(PlaceholderStyle.Render("no matches"))
	}
	for i, idx := range m.matches {
		label := m.targets[idx].label
		if i == m.selected {
			b.WriteString(lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render("> " + label))
		} else {
			b.WriteString("  " + HintStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HintStyle.Render("[enter] jump   [esc] cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBgHighlight).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())
}
