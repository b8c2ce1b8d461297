package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solenne/marquee/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// DESIGN TOKENS - Consistent spacing, colors, and visual language
// ══════════════════════════════════════════════════════════════════════════════

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired with extended semantic colors
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBg          = lipgloss.Color("#282A36")
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Primary accent colors
	ColorPrimary = lipgloss.Color("#BD93F9")
	ColorInfo    = lipgloss.Color("#8BE9FD")
	ColorSuccess = lipgloss.Color("#50FA7B")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorDanger  = lipgloss.Color("#FF5555")

	// Row status colors
	ColorStatusPending = lipgloss.Color("#6272A4")
	ColorStatusLoading = lipgloss.Color("#8BE9FD")
	ColorStatusReady   = lipgloss.Color("#50FA7B")
	ColorStatusFailed  = lipgloss.Color("#FF5555")
)

// ══════════════════════════════════════════════════════════════════════════════
// TILE AND ROW STYLES
// ══════════════════════════════════════════════════════════════════════════════

var (
	// TileStyle is the default style for unfocused tiles
	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight).
			Foreground(ColorSubtext)

	// FocusedTileStyle is the style for the focused tile
	FocusedTileStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Foreground(ColorText).
				Bold(true)

	// RowTitleStyle renders unfocused row titles
	RowTitleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext).
			Bold(true)

	// FocusedRowTitleStyle renders the focused row's title
	FocusedRowTitleStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	// PlaceholderStyle renders "scroll to load" / empty-row hints
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	// ErrorStyle renders per-row failure messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// HintStyle renders footer key hints
	HintStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// RenderStatusBadge returns a styled badge for a row load status
func RenderStatusBadge(status model.RowStatus) string {
	var fg lipgloss.Color
	var label string

	switch status {
	case model.StatusPending:
		fg, label = ColorStatusPending, "WAIT"
	case model.StatusLoading:
		fg, label = ColorStatusLoading, "LOAD"
	case model.StatusReady:
		fg, label = ColorStatusReady, "OK"
	case model.StatusFailed:
		fg, label = ColorStatusFailed, "FAIL"
	default:
		fg, label = ColorMuted, "????"
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Background(ColorBgSubtle).
		Padding(0, 0).
		Render(label)
}

// RenderRatingBadge returns a styled content-rating badge like "PG-13"
func RenderRatingBadge(rating string) string {
	if rating == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorWarning).
		Background(ColorBgSubtle).
		Render(rating)
}

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
