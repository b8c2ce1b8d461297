package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/solenne/marquee/pkg/config"
	"github.com/solenne/marquee/pkg/model"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testItems(prefix string, n int) []model.ContentItem {
	items := make([]model.ContentItem, n)
	for i := range items {
		items[i] = model.ContentItem{
			ContentID: fmt.Sprintf("%s-%d", prefix, i),
			Title:     fmt.Sprintf("%s Title %d", prefix, i),
			Year:      2020 + i,
		}
	}
	return items
}

// testCatalog builds five rows: three inline, two deferred.
func testCatalog() []model.CatalogRow {
	return []model.CatalogRow{
		{Index: 0, Title: "Trending Now", Kind: model.SourceInline, Items: testItems("trend", 6)},
		{Index: 1, Title: "Continue Watching", Kind: model.SourceInline, Items: testItems("cont", 4)},
		{Index: 2, Title: "New Releases", Kind: model.SourceInline, Items: testItems("new", 5)},
		{Index: 3, Title: "Because You Watched", Kind: model.SourceDeferred, Ref: "byw"},
		{Index: 4, Title: "Critically Acclaimed", Kind: model.SourceDeferred, Ref: "crit"},
	}
}

// newTestBrowser builds a browser in local mode (nil client) with the catalog
// already loaded, sized to show `visible` row blocks.
func newTestBrowser(t *testing.T, visible int) *BrowserModel {
	t.Helper()
	cfg := config.Default()
	rows := testCatalog()
	m := NewBrowserModel(cfg, nil, func() ([]model.CatalogRow, error) {
		return rows, nil
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: headerLines + footerLines + visible*rowBlockLines})

	cmd := m.loadCatalogCmd()
	m.Update(cmd())
	return m
}

func TestBrowserLoadsCatalog(t *testing.T) {
	m := newTestBrowser(t, 5)

	if m.state != stateBrowsing {
		t.Fatalf("state = %v, want browsing", m.state)
	}
	if got := m.Position(); got != (model.FocusPosition{Row: 0, Col: 0}) {
		t.Errorf("initial position = %+v, want {0,0}", got)
	}
	for row := 0; row < 3; row++ {
		if m.RowStatus(row) != model.StatusReady {
			t.Errorf("inline row %d status = %v, want ready", row, m.RowStatus(row))
		}
	}
}

func TestBrowserLoadFailure(t *testing.T) {
	m := NewBrowserModel(config.Default(), nil, func() ([]model.CatalogRow, error) {
		return nil, fmt.Errorf("boom")
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	cmd := m.loadCatalogCmd()
	m.Update(cmd())

	if m.state != stateFailed {
		t.Fatalf("state = %v, want failed", m.state)
	}
	view := m.View()
	if !strings.Contains(view, "Couldn't load the catalog") {
		t.Errorf("failed view missing error banner:\n%s", view)
	}
}

func TestDeferredRowsStartLoadingWhenVisible(t *testing.T) {
	// Tall window: all five rows visible, so both deferred rows begin.
	m := newTestBrowser(t, 5)

	for row := 3; row <= 4; row++ {
		if got := m.RowStatus(row); got != model.StatusLoading {
			t.Errorf("row %d status = %v, want loading", row, got)
		}
	}
}

func TestOffscreenDeferredRowStaysPending(t *testing.T) {
	// One visible row plus the one-row preload margin: rows 0-1 observed,
	// row 4 stays pending until scrolled to.
	m := newTestBrowser(t, 1)

	if got := m.RowStatus(4); got != model.StatusPending {
		t.Fatalf("row 4 status = %v, want pending", got)
	}

	for i := 0; i < 4; i++ {
		m.Update(keyRunes("j"))
	}
	if got := m.RowStatus(4); got != model.StatusLoading {
		t.Errorf("row 4 status after scrolling down = %v, want loading", got)
	}
}

func TestRowItemsMessageMakesRowNavigable(t *testing.T) {
	m := newTestBrowser(t, 5)

	loaded := testItems("byw", 7)
	m.Update(rowItemsMsg{row: 3, items: loaded})

	if got := m.RowStatus(3); got != model.StatusReady {
		t.Fatalf("row 3 status = %v, want ready", got)
	}

	// Move to row 3 and walk right past the old zero length.
	for i := 0; i < 3; i++ {
		m.Update(keyRunes("j"))
	}
	for i := 0; i < 10; i++ {
		m.Update(keyRunes("l"))
	}
	if got := m.Position(); got != (model.FocusPosition{Row: 3, Col: 6}) {
		t.Errorf("position = %+v, want {3,6}", got)
	}
}

func TestRowFailureIsTerminal(t *testing.T) {
	m := newTestBrowser(t, 5)

	m.Update(rowFailedMsg{row: 3, msg: "timed out loading this collection"})
	if got := m.RowStatus(3); got != model.StatusFailed {
		t.Fatalf("row 3 status = %v, want failed", got)
	}

	view := m.View()
	if !strings.Contains(view, "timed out loading this collection") {
		t.Errorf("view missing failure message:\n%s", view)
	}

	// A late success must not resurrect the row.
	m.Update(rowItemsMsg{row: 3, items: testItems("late", 3)})
	if got := m.RowStatus(3); got != model.StatusFailed {
		t.Errorf("row 3 status after stale items = %v, want failed", got)
	}
}

func TestNavigationClampsAtEdges(t *testing.T) {
	m := newTestBrowser(t, 5)

	m.Update(keyRunes("k"))
	m.Update(keyRunes("h"))
	if got := m.Position(); got != (model.FocusPosition{Row: 0, Col: 0}) {
		t.Errorf("position after up/left at origin = %+v, want {0,0}", got)
	}

	for i := 0; i < 20; i++ {
		m.Update(keyRunes("l"))
	}
	if got := m.Position(); got != (model.FocusPosition{Row: 0, Col: 5}) {
		t.Errorf("position after walking right = %+v, want {0,5}", got)
	}
}

func TestGotoFirstAndLastRow(t *testing.T) {
	m := newTestBrowser(t, 5)

	m.Update(keyRunes("G"))
	if got := m.Position().Row; got != 4 {
		t.Errorf("row after G = %d, want 4", got)
	}
	m.Update(keyRunes("g"))
	if got := m.Position().Row; got != 0 {
		t.Errorf("row after g = %d, want 0", got)
	}
}

func TestEnterOpensDetailAndEscCloses(t *testing.T) {
	m := newTestBrowser(t, 5)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.detail.IsVisible() {
		t.Fatal("detail overlay not visible after enter")
	}
	if m.detail.Item().ContentID != "trend-0" {
		t.Errorf("detail item = %q, want trend-0", m.detail.Item().ContentID)
	}

	// Navigation is suspended while the overlay is open.
	m.Update(keyRunes("j"))
	if got := m.Position().Row; got != 0 {
		t.Errorf("row moved while detail open: %d", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail.IsVisible() {
		t.Fatal("detail overlay still visible after esc")
	}
	m.Update(keyRunes("j"))
	if got := m.Position().Row; got != 1 {
		t.Errorf("row after closing detail and moving = %d, want 1", got)
	}
}

func TestHelpOverlayTogglesOnAnyKey(t *testing.T) {
	m := newTestBrowser(t, 5)

	m.Update(keyRunes("?"))
	if !m.help.IsVisible() {
		t.Fatal("help overlay not visible after ?")
	}
	m.Update(keyRunes("x"))
	if m.help.IsVisible() {
		t.Fatal("help overlay still visible after keypress")
	}
}

func TestSearchJumpsToRow(t *testing.T) {
	m := newTestBrowser(t, 5)

	m.Update(keyRunes("/"))
	if !m.search.Active() {
		t.Fatal("search overlay not active after /")
	}
	for _, ch := range "continue" {
		m.Update(keyRunes(string(ch)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.search.Active() {
		t.Fatal("search overlay still active after enter")
	}
	if got := m.Position(); got != (model.FocusPosition{Row: 1, Col: 0}) {
		t.Errorf("position after search jump = %+v, want {1,0}", got)
	}
}

func TestSearchJumpStartsDeferredRowLoad(t *testing.T) {
	// One-row window: row 4 starts off screen and pending. Jumping to it by
	// search scrolls it into view, which must begin its load immediately.
	m := newTestBrowser(t, 1)
	if got := m.RowStatus(4); got != model.StatusPending {
		t.Fatalf("row 4 status before jump = %v, want pending", got)
	}

	m.Update(keyRunes("/"))
	for _, ch := range "critically" {
		m.Update(keyRunes(string(ch)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.Position(); got != (model.FocusPosition{Row: 4, Col: 0}) {
		t.Fatalf("position after search jump = %+v, want {4,0}", got)
	}
	if m.topRow != 4 {
		t.Fatalf("topRow after search jump = %d, want 4", m.topRow)
	}
	if got := m.RowStatus(4); got != model.StatusLoading {
		t.Errorf("row 4 status after search jump = %v, want loading", got)
	}
}

func TestSearchEscCancelsWithoutMoving(t *testing.T) {
	m := newTestBrowser(t, 5)
	m.Update(keyRunes("j"))

	m.Update(keyRunes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if got := m.Position().Row; got != 1 {
		t.Errorf("position changed on cancelled search: row %d", got)
	}
	m.Update(keyRunes("j"))
	if got := m.Position().Row; got != 2 {
		t.Errorf("navigation broken after cancelled search: row %d", got)
	}
}

func TestViewShowsScrollToLoadPlaceholder(t *testing.T) {
	cfg := config.Default()
	cfg.EagerRows = 1
	cfg.PreloadMargin = 0
	rows := []model.CatalogRow{
		{Index: 0, Title: "Top", Kind: model.SourceInline, Items: testItems("top", 3)},
		{Index: 1, Title: "Later", Kind: model.SourceDeferred, Ref: "later"},
	}
	m := NewBrowserModel(cfg, nil, func() ([]model.CatalogRow, error) {
		return rows, nil
	})
	// Two row blocks visible, so the pending row is on screen but its
	// fetch already began via observation. Shrink to one block instead.
	m.Update(tea.WindowSizeMsg{Width: 100, Height: headerLines + footerLines + rowBlockLines*2})

	cmd := m.loadCatalogCmd()
	m.Update(cmd())

	// Both rows fit the window, so row 1 was observed and is loading.
	if got := m.RowStatus(1); got != model.StatusLoading {
		t.Fatalf("row 1 status = %v, want loading", got)
	}
	view := m.View()
	if !strings.Contains(view, "loading collection") {
		t.Errorf("view missing loading placeholder:\n%s", view)
	}
}

func TestReloadResetsToLoadingState(t *testing.T) {
	m := newTestBrowser(t, 5)

	m.Update(keyRunes("R"))
	if m.state != stateLoading {
		t.Fatalf("state after R = %v, want loading", m.state)
	}
}

func TestCatalogChangedMessageReloads(t *testing.T) {
	reloads := 0
	rows := testCatalog()
	m := NewBrowserModel(config.Default(), nil, func() ([]model.CatalogRow, error) {
		reloads++
		return rows, nil
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	cmd := m.loadCatalogCmd()
	m.Update(cmd())

	_, reload := m.Update(CatalogChangedMsg{})
	if reload == nil {
		t.Fatal("expected reload command")
	}
	m.Update(reload())
	if reloads != 2 {
		t.Errorf("loadCatalog calls = %d, want 2", reloads)
	}
}

func TestGridViewRendersTilesAndTitles(t *testing.T) {
	m := newTestBrowser(t, 5)

	view := m.View()
	for _, want := range []string{"MARQUEE", "Trending Now", "Continue Watching", "trend Title 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuitKeyEmitsQuit(t *testing.T) {
	m := newTestBrowser(t, 5)

	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("command produced %T, want tea.QuitMsg", msg)
	}
}
