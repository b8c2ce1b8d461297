package model

import (
	"fmt"
)

// ContentItem is a single tile in a catalog row. Navigation only relies on
// ContentID; the remaining fields feed the presentation layer.
type ContentItem struct {
	ContentID string  `json:"contentId"`
	Title     string  `json:"title"`
	Synopsis  string  `json:"synopsis,omitempty"`
	Rating    string  `json:"rating,omitempty"`
	ImageURL  string  `json:"image,omitempty"`
	Year      int     `json:"year,omitempty"`
	Score     float64 `json:"score,omitempty"`
}

// SourceKind says where a row's items come from
type SourceKind string

const (
	// SourceInline rows carry their items in the catalog payload itself.
	SourceInline SourceKind = "inline"
	// SourceDeferred rows carry a reference that must be fetched separately.
	SourceDeferred SourceKind = "deferred"
)

// IsValid returns true if the source kind is a recognized value
func (k SourceKind) IsValid() bool {
	switch k {
	case SourceInline, SourceDeferred:
		return true
	}
	return false
}

// RowStatus represents the load state of a row
type RowStatus string

const (
	StatusPending RowStatus = "pending"
	StatusLoading RowStatus = "loading"
	StatusReady   RowStatus = "ready"
	StatusFailed  RowStatus = "failed"
)

// IsValid returns true if the status is a recognized value
func (s RowStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusLoading, StatusReady, StatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true once a row can never change state again.
// Failed rows are never retried.
func (s RowStatus) IsTerminal() bool {
	return s == StatusReady || s == StatusFailed
}

// CatalogRow is one horizontal collection on the home screen. Rows are
// constructed once from the decoded catalog response and immutable after.
type CatalogRow struct {
	Index int
	Title string
	Kind  SourceKind
	Items []ContentItem // populated only when Kind == SourceInline
	Ref   string        // populated only when Kind == SourceDeferred
}

// Validate checks the inline-xor-deferred invariant
func (r *CatalogRow) Validate() error {
	if r.Index < 0 {
		return fmt.Errorf("row index cannot be negative")
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("invalid source kind: %s", r.Kind)
	}
	switch r.Kind {
	case SourceInline:
		if r.Ref != "" {
			return fmt.Errorf("inline row cannot carry a reference")
		}
	case SourceDeferred:
		if r.Ref == "" {
			return fmt.Errorf("deferred row requires a reference")
		}
		if len(r.Items) > 0 {
			return fmt.Errorf("deferred row cannot carry inline items")
		}
	}
	return nil
}

// FocusPosition is the currently highlighted row/column pair.
type FocusPosition struct {
	Row int
	Col int
}
