// Package focus owns the 2-D focus position across rows of heterogeneous,
// dynamically-discovered lengths.
package focus

import (
	"github.com/solenne/marquee/pkg/model"
)

// Direction is a D-pad navigation command.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the display name for the direction
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Coordinator processes directional navigation, selection and back commands
// against a grid whose per-row lengths arrive incrementally as rows resolve.
//
// A stored column is not re-clamped when a row's length later changes; the
// clamp happens lazily on the next navigation into that row.
type Coordinator struct {
	pos       model.FocusPosition
	totalRows int
	lengths   []int
	enabled   bool
	wrap      bool

	itemAt   func(row, col int) (model.ContentItem, bool)
	onFocus  func(model.FocusPosition)
	onSelect func(model.ContentItem, model.FocusPosition)
	onBack   func()
}

// NewCoordinator creates a coordinator for a grid of totalRows rows, all with
// unknown (zero) length, focused at the origin and enabled.
func NewCoordinator(totalRows int) *Coordinator {
	if totalRows < 0 {
		totalRows = 0
	}
	return &Coordinator{
		totalRows: totalRows,
		lengths:   make([]int, totalRows),
		enabled:   true,
	}
}

// SetWrap enables or disables wrap-around navigation. Off by default.
func (c *Coordinator) SetWrap(wrap bool) {
	c.wrap = wrap
}

// SetEnabled gates navigation and selection, e.g. while an overlay is open.
func (c *Coordinator) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// Enabled reports whether navigation is currently processed.
func (c *Coordinator) Enabled() bool {
	return c.enabled
}

// SetRowLength records a row's item count as it becomes known. The stored
// focus position is deliberately left alone.
func (c *Coordinator) SetRowLength(row, length int) {
	if row < 0 || row >= c.totalRows {
		return
	}
	if length < 0 {
		length = 0
	}
	c.lengths[row] = length
}

// RowLength returns the currently known length of a row.
func (c *Coordinator) RowLength(row int) int {
	if row < 0 || row >= c.totalRows {
		return 0
	}
	return c.lengths[row]
}

// SetItemFunc registers the lookup used by Select.
func (c *Coordinator) SetItemFunc(f func(row, col int) (model.ContentItem, bool)) {
	c.itemAt = f
}

// SetFocusFunc registers the focus-change notification.
func (c *Coordinator) SetFocusFunc(f func(model.FocusPosition)) {
	c.onFocus = f
}

// SetSelectFunc registers the selection notification.
func (c *Coordinator) SetSelectFunc(f func(model.ContentItem, model.FocusPosition)) {
	c.onSelect = f
}

// SetBackFunc registers the back notification.
func (c *Coordinator) SetBackFunc(f func()) {
	c.onBack = f
}

// Position returns the current focus position.
func (c *Coordinator) Position() model.FocusPosition {
	return c.pos
}

// IsFocused reports whether the given cell is the focused one.
func (c *Coordinator) IsFocused(row, col int) bool {
	return c.pos.Row == row && c.pos.Col == col
}

// clampCol pins col into the row's valid range. A row with no known items
// collapses the range to just column 0.
func (c *Coordinator) clampCol(row, col int) int {
	length := c.RowLength(row)
	if length <= 0 {
		return 0
	}
	if col >= length {
		return length - 1
	}
	if col < 0 {
		return 0
	}
	return col
}

// Move processes one directional command. Boundary commands without
// wrap-around are no-ops and emit no focus notification.
func (c *Coordinator) Move(dir Direction) {
	if !c.enabled || c.totalRows == 0 {
		return
	}

	next := c.pos
	switch dir {
	case Up:
		if next.Row > 0 {
			next.Row--
		} else if c.wrap {
			next.Row = c.totalRows - 1
		}
		next.Col = c.clampCol(next.Row, next.Col)
	case Down:
		if next.Row < c.totalRows-1 {
			next.Row++
		} else if c.wrap {
			next.Row = 0
		}
		next.Col = c.clampCol(next.Row, next.Col)
	case Left:
		if next.Col > 0 {
			next.Col--
		} else if c.wrap && next.Row > 0 {
			// Jump to the last column of the previous row.
			next.Row--
			next.Col = c.clampCol(next.Row, c.RowLength(next.Row)-1)
		}
	case Right:
		lastCol := c.RowLength(next.Row) - 1
		if lastCol < 0 {
			lastCol = 0
		}
		if next.Col < lastCol {
			next.Col++
		} else if c.wrap && next.Row < c.totalRows-1 {
			next.Row++
			next.Col = 0
		}
	}

	if next == c.pos {
		return
	}
	c.pos = next
	if c.onFocus != nil {
		c.onFocus(c.pos)
	}
}

// Set assigns a position directly, clamped the same way Move clamps. Used
// when selection elsewhere in the UI must resynchronize focus.
func (c *Coordinator) Set(pos model.FocusPosition) {
	if c.totalRows == 0 {
		return
	}
	if pos.Row < 0 {
		pos.Row = 0
	}
	if pos.Row >= c.totalRows {
		pos.Row = c.totalRows - 1
	}
	pos.Col = c.clampCol(pos.Row, pos.Col)

	if pos == c.pos {
		return
	}
	c.pos = pos
	if c.onFocus != nil {
		c.onFocus(c.pos)
	}
}

// Select looks up the item under the focus and emits the selection
// notification. No-op while disabled or when the cell holds no item.
func (c *Coordinator) Select() {
	if !c.enabled || c.itemAt == nil {
		return
	}
	item, ok := c.itemAt(c.pos.Row, c.pos.Col)
	if !ok {
		return
	}
	if c.onSelect != nil {
		c.onSelect(item, c.pos)
	}
}

// Back emits the back notification; its interpretation belongs to the caller.
func (c *Coordinator) Back() {
	if c.onBack != nil {
		c.onBack()
	}
}
