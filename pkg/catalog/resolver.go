package catalog

import (
	"github.com/solenne/marquee/pkg/model"
)

// rowState is the mutable load state of one deferred row.
type rowState struct {
	status model.RowStatus
	items  []model.ContentItem
	errMsg string
}

// Resolver owns the per-row load state machine. Each deferred row moves
// Pending -> Loading -> Ready|Failed exactly once; terminal states are never
// left, even if the row's visibility is signalled again. Inline rows skip the
// machine entirely and are Ready from construction.
type Resolver struct {
	rows     []model.CatalogRow
	vis      *Visibility
	states   map[int]*rowState
	onLoaded func(row int, items []model.ContentItem)
}

// NewResolver creates a resolver over the catalog rows. Rows are addressed
// by slice position throughout, not by their Index field.
func NewResolver(rows []model.CatalogRow, vis *Visibility) *Resolver {
	states := make(map[int]*rowState)
	for i, row := range rows {
		if row.Kind == model.SourceDeferred {
			states[i] = &rowState{status: model.StatusPending}
		}
	}
	return &Resolver{
		rows:   rows,
		vis:    vis,
		states: states,
	}
}

// SetLoadedFunc registers the notification invoked when a row's items arrive.
// The focus coordinator uses it to learn per-row lengths.
func (r *Resolver) SetLoadedFunc(f func(row int, items []model.ContentItem)) {
	r.onLoaded = f
}

// Begin is the at-most-once fetch gate. It reports whether a fetch should
// start for the row and, if so, returns the row's reference and moves the row
// to Loading. Ineligible, inline, already-loading and terminal rows all
// return ok=false.
func (r *Resolver) Begin(row int) (ref string, ok bool) {
	st, found := r.states[row]
	if !found {
		return "", false
	}
	if st.status != model.StatusPending {
		return "", false
	}
	if !r.vis.Eligible(row) {
		return "", false
	}
	st.status = model.StatusLoading
	return r.rows[row].Ref, true
}

// Complete records a successful fetch and emits the loaded notification.
// Ignored unless the row is currently Loading.
func (r *Resolver) Complete(row int, items []model.ContentItem) {
	st, found := r.states[row]
	if !found || st.status != model.StatusLoading {
		return
	}
	st.status = model.StatusReady
	st.items = items
	if r.onLoaded != nil {
		r.onLoaded(row, items)
	}
}

// Fail records a fetch failure with a user-facing message. Failed is
// terminal; the row is never re-fetched.
func (r *Resolver) Fail(row int, msg string) {
	st, found := r.states[row]
	if !found || st.status != model.StatusLoading {
		return
	}
	st.status = model.StatusFailed
	st.errMsg = msg
}

// Status returns the row's current load status. Inline rows are always Ready.
func (r *Resolver) Status(row int) model.RowStatus {
	if st, found := r.states[row]; found {
		return st.status
	}
	if row >= 0 && row < len(r.rows) {
		return model.StatusReady
	}
	return model.StatusPending
}

// Items returns the row's current item list, empty until Ready.
func (r *Resolver) Items(row int) []model.ContentItem {
	if st, found := r.states[row]; found {
		if st.status == model.StatusReady {
			return st.items
		}
		return nil
	}
	if row >= 0 && row < len(r.rows) {
		return r.rows[row].Items
	}
	return nil
}

// ItemCount returns the row's currently known length, 0 while Pending or
// Loading.
func (r *Resolver) ItemCount(row int) int {
	return len(r.Items(row))
}

// ErrorMessage returns the failure message for a Failed row, "" otherwise.
func (r *Resolver) ErrorMessage(row int) string {
	if st, found := r.states[row]; found {
		return st.errMsg
	}
	return ""
}
