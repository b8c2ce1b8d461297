// Package catalog tracks row visibility and resolves row content on demand.
package catalog

// DefaultEagerRows is how many leading rows are eligible to load immediately,
// before any of them has scrolled into view.
const DefaultEagerRows = 3

// Visibility records which rows have scrolled into view. The signal is
// at-least-once: redundant Observe calls for an already-observed row are
// no-ops, and once observed a row stays observed for its lifetime.
type Visibility struct {
	eager    int
	observed map[int]bool
}

// NewVisibility creates a tracker. If eagerRows is not positive,
// DefaultEagerRows is used.
func NewVisibility(eagerRows int) *Visibility {
	if eagerRows <= 0 {
		eagerRows = DefaultEagerRows
	}
	return &Visibility{
		eager:    eagerRows,
		observed: make(map[int]bool),
	}
}

// Observe marks a row as having been visible. Sticky and idempotent.
func (v *Visibility) Observe(row int) {
	if row < 0 {
		return
	}
	v.observed[row] = true
}

// ObserveRange marks every row in [first, last] as visible.
func (v *Visibility) ObserveRange(first, last int) {
	for row := first; row <= last; row++ {
		v.Observe(row)
	}
}

// Observed reports whether the row has ever been visible.
func (v *Visibility) Observed(row int) bool {
	return v.observed[row]
}

// Eligible reports whether the row may start loading: either it is among the
// eager leading rows or it has been observed.
func (v *Visibility) Eligible(row int) bool {
	if row < 0 {
		return false
	}
	return row < v.eager || v.observed[row]
}
