package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/solenne/marquee/pkg/catalog"
	"github.com/solenne/marquee/pkg/config"
	"github.com/solenne/marquee/pkg/fetch"
	"github.com/solenne/marquee/pkg/focus"
	"github.com/solenne/marquee/pkg/model"
)

// screenState is the top-level display mode
type screenState int

const (
	stateLoading screenState = iota
	stateBrowsing
	stateFailed
)

// Messages produced by asynchronous work.
type (
	catalogLoadedMsg struct{ rows []model.CatalogRow }
	catalogFailedMsg struct{ err error }
	rowItemsMsg      struct {
		row   int
		items []model.ContentItem
	}
	rowFailedMsg struct {
		row int
		msg string
	}
	// CatalogChangedMsg asks the model to reload its catalog source. The
	// file watcher sends it through Program.Send.
	CatalogChangedMsg struct{}
)

// BrowserModel is the home-screen grid: a vertical stack of horizontally
// scrolling rows with D-pad focus navigation.
type BrowserModel struct {
	cfg    config.Config
	client *fetch.Client
	// loadCatalog is the catalog source: remote API or local file.
	loadCatalog func() ([]model.CatalogRow, error)

	state   screenState
	loadErr string

	rows  []model.CatalogRow
	vis   *catalog.Visibility
	res   *catalog.Resolver
	coord *focus.Coordinator

	// rowOffsets remembers each row's horizontal scroll. A row keeps its
	// offset when focus leaves it, like a real carousel.
	rowOffsets map[int]int

	topRow int // first visible row index

	spin   spinner.Model
	detail DetailModel
	search SearchModel
	help   HelpOverlayModel

	width  int
	height int

	quitting bool
}

// NewBrowserModel creates the home-screen model. client may be nil in
// local-file mode; deferred rows then fail with a configuration message.
func NewBrowserModel(cfg config.Config, client *fetch.Client, loadCatalog func() ([]model.CatalogRow, error)) *BrowserModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorPrimary)

	return &BrowserModel{
		cfg:         cfg,
		client:      client,
		loadCatalog: loadCatalog,
		state:       stateLoading,
		rowOffsets:  make(map[int]int),
		spin:        sp,
		help:        NewHelpOverlayModel(),
	}
}

// Init implements tea.Model
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadCatalogCmd())
}

func (m *BrowserModel) loadCatalogCmd() tea.Cmd {
	load := m.loadCatalog
	return func() tea.Msg {
		rows, err := load()
		if err != nil {
			return catalogFailedMsg{err: err}
		}
		return catalogLoadedMsg{rows: rows}
	}
}

// setCatalog wires a fresh catalog into the visibility tracker, resolver and
// focus coordinator.
func (m *BrowserModel) setCatalog(rows []model.CatalogRow) {
	m.rows = rows
	m.vis = catalog.NewVisibility(m.cfg.EagerRows)
	m.res = catalog.NewResolver(rows, m.vis)
	m.coord = focus.NewCoordinator(len(rows))
	m.coord.SetWrap(m.cfg.WrapAround)
	m.rowOffsets = make(map[int]int)
	m.topRow = 0
	m.state = stateBrowsing

	// Inline rows have a known length from the start; deferred rows report
	// theirs through the loaded notification.
	for _, row := range rows {
		if row.Kind == model.SourceInline {
			m.coord.SetRowLength(row.Index, len(row.Items))
		}
	}
	m.res.SetLoadedFunc(func(row int, items []model.ContentItem) {
		m.coord.SetRowLength(row, len(items))
	})

	m.coord.SetItemFunc(func(row, col int) (model.ContentItem, bool) {
		items := m.res.Items(row)
		if col < 0 || col >= len(items) {
			return model.ContentItem{}, false
		}
		return items[col], true
	})
	m.coord.SetFocusFunc(func(pos model.FocusPosition) {
		m.rowOffsets[pos.Row] = focus.TargetOffset(pos.Col, m.cfg.TileWidth, m.cfg.TileGap, m.rowViewportWidth())
		m.ensureRowVisible(pos.Row)
	})
	m.coord.SetSelectFunc(func(item model.ContentItem, pos model.FocusPosition) {
		m.detail.Show(item, pos)
		m.coord.SetEnabled(false)
	})
	m.coord.SetBackFunc(func() {
		if m.detail.IsVisible() {
			m.detail.Hide()
			m.coord.SetEnabled(true)
		}
	})
}

// fetchRowCmd loads one deferred row's reference set.
func (m *BrowserModel) fetchRowCmd(row int, ref string) tea.Cmd {
	client := m.client
	timeout := m.cfg.FetchTimeout.Std()
	return func() tea.Msg {
		if client == nil {
			return rowFailedMsg{row: row, msg: "no content service configured"}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		items, err := client.FetchReferenceSet(ctx, ref)
		if err != nil {
			return rowFailedMsg{row: row, msg: failureMessage(err)}
		}
		return rowItemsMsg{row: row, items: items}
	}
}

// failureMessage turns a fetch error into the user-facing row message.
func failureMessage(err error) string {
	switch fetch.KindOf(err) {
	case fetch.ErrTimeout:
		return "timed out loading this collection"
	case fetch.ErrShape:
		return "collection data was malformed"
	default:
		return "couldn't reach the content service"
	}
}

// markVisibleRows observes every row inside the visible window plus the
// pre-load margin. Redundant observations are no-ops.
func (m *BrowserModel) markVisibleRows() {
	if m.state != stateBrowsing {
		return
	}
	first := m.topRow - m.cfg.PreloadMargin
	last := m.topRow + m.visibleRowCount() - 1 + m.cfg.PreloadMargin
	if first < 0 {
		first = 0
	}
	if last >= len(m.rows) {
		last = len(m.rows) - 1
	}
	m.vis.ObserveRange(first, last)
}

// pendingFetchCmds starts a fetch for every eligible row that has not begun
// loading. The resolver's Begin gate guarantees at most one fetch per row.
func (m *BrowserModel) pendingFetchCmds() []tea.Cmd {
	var cmds []tea.Cmd
	for _, row := range m.rows {
		if ref, ok := m.res.Begin(row.Index); ok {
			cmds = append(cmds, m.fetchRowCmd(row.Index, ref))
		}
	}
	return cmds
}

// refreshVisibility recomputes observations after a scroll or resize and
// returns any newly triggered fetches.
func (m *BrowserModel) refreshVisibility() tea.Cmd {
	if m.state != stateBrowsing {
		return nil
	}
	m.markVisibleRows()
	if cmds := m.pendingFetchCmds(); len(cmds) > 0 {
		return tea.Batch(cmds...)
	}
	return nil
}

// Update implements tea.Model
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.SetSize(msg.Width, msg.Height)
		m.search.SetSize(msg.Width, msg.Height)
		m.help.SetSize(msg.Width, msg.Height)
		return m, m.refreshVisibility()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		m.setCatalog(msg.rows)
		return m, m.refreshVisibility()

	case catalogFailedMsg:
		m.state = stateFailed
		m.loadErr = failureMessage(msg.err)
		return m, nil

	case CatalogChangedMsg:
		return m, m.loadCatalogCmd()

	case rowItemsMsg:
		m.res.Complete(msg.row, msg.items)
		return m, nil

	case rowFailedMsg:
		m.res.Fail(msg.row, msg.msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays swallow input while open.
	if m.help.IsVisible() {
		m.help.Hide()
		m.coord.SetEnabled(true)
		return m, nil
	}
	if m.search.Active() {
		if pos, done := m.search.HandleKey(msg); done {
			m.coord.SetEnabled(true)
			if pos != nil {
				// The jump can scroll a deferred row into the window, so
				// observations must be recomputed like any other move.
				m.coord.Set(*pos)
				return m, m.refreshVisibility()
			}
		}
		return m, nil
	}
	if m.detail.IsVisible() {
		switch msg.String() {
		case "esc", "backspace", "q":
			m.coord.Back()
		case "y":
			m.detail.Yank()
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.coord != nil {
			m.coord.Move(focus.Up)
			return m, m.refreshVisibility()
		}
	case "down", "j":
		if m.coord != nil {
			m.coord.Move(focus.Down)
			return m, m.refreshVisibility()
		}
	case "left", "h":
		if m.coord != nil {
			m.coord.Move(focus.Left)
		}
	case "right", "l":
		if m.coord != nil {
			m.coord.Move(focus.Right)
		}

	case "g":
		if m.coord != nil {
			m.coord.Set(model.FocusPosition{Row: 0, Col: 0})
			return m, m.refreshVisibility()
		}
	case "G":
		if m.coord != nil && len(m.rows) > 0 {
			m.coord.Set(model.FocusPosition{Row: len(m.rows) - 1, Col: 0})
			return m, m.refreshVisibility()
		}

	case "enter", " ":
		if m.coord != nil {
			m.coord.Select()
		}

	case "esc", "backspace":
		if m.coord != nil {
			m.coord.Back()
		}

	case "/":
		if m.state == stateBrowsing {
			m.search.Open(m.searchTargets())
			m.coord.SetEnabled(false)
		}

	case "?":
		if m.state == stateBrowsing {
			m.help.Show()
			m.coord.SetEnabled(false)
		}

	case "R":
		if m.client != nil {
			m.client.Cache().Clear()
		}
		m.state = stateLoading
		return m, m.loadCatalogCmd()
	}

	return m, nil
}

// searchTargets flattens the catalog into fuzzy-search candidates: one per
// row title and one per loaded tile.
func (m *BrowserModel) searchTargets() []searchTarget {
	var targets []searchTarget
	for _, row := range m.rows {
		targets = append(targets, searchTarget{
			label: row.Title,
			pos:   model.FocusPosition{Row: row.Index, Col: 0},
		})
		for col, item := range m.res.Items(row.Index) {
			label := item.Title
			if label == "" {
				label = item.ContentID
			}
			targets = append(targets, searchTarget{
				label: row.Title + " ▸ " + label,
				pos:   model.FocusPosition{Row: row.Index, Col: col},
			})
		}
	}
	return targets
}

// ensureRowVisible keeps the focused row inside the window, with a reduced
// scrolloff (1/4 of the window) so context stays visible above and below.
func (m *BrowserModel) ensureRowVisible(row int) {
	visible := m.visibleRowCount()
	scrolloff := visible / 4

	targetTop := row - scrolloff
	if targetTop < 0 {
		targetTop = 0
	}
	maxTop := len(m.rows) - visible
	if maxTop < 0 {
		maxTop = 0
	}
	if targetTop > maxTop {
		targetTop = maxTop
	}
	m.topRow = targetTop
}

// Position returns the current focus position.
func (m *BrowserModel) Position() model.FocusPosition {
	if m.coord == nil {
		return model.FocusPosition{}
	}
	return m.coord.Position()
}

// RowStatus returns a row's load status.
func (m *BrowserModel) RowStatus(row int) model.RowStatus {
	if m.res == nil {
		return model.StatusPending
	}
	return m.res.Status(row)
}
