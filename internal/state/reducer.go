package state

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/kk-code-lab/rhist/internal/catalog"
	"github.com/kk-code-lab/rhist/internal/panel"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

// ErrLastPanel is returned when closing the only open panel.
var ErrLastPanel = errors.New("cannot close the last panel")

// StateReducer applies actions to AppState and runs the per-frame history
// update.
type StateReducer struct {
	catalog *catalog.Catalog
	manager *tracker.Manager
	logger  *slog.Logger
}

// NewStateReducer creates a reducer. New panels open on cat; their history is
// tracked by manager.
func NewStateReducer(cat *catalog.Catalog, manager *tracker.Manager, logger *slog.Logger) *StateReducer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StateReducer{
		catalog: cat,
		manager: manager,
		logger:  logger,
	}
}

// Manager returns the history manager.
func (r *StateReducer) Manager() *tracker.Manager {
	return r.manager
}

// Frame runs the history layer once: trackers of closed panels are dropped and
// the active panel is polled. It reports whether the undo/redo buttons
// changed. Nothing is polled while a history menu is open, so the steps its
// entries carry stay valid until it closes.
func (r *StateReducer) Frame(state *AppState) bool {
	if state.Menu.Open {
		return false
	}
	var active tracker.Panel
	if p := state.ActivePanel(); p != nil {
		active = p
	}
	r.manager.Sync(state.trackedPanels(), active)

	prev := state.Buttons
	state.Buttons = r.buttons(state)
	return prev != state.Buttons
}

func (r *StateReducer) buttons(state *AppState) tracker.Buttons {
	p := state.ActivePanel()
	if p == nil {
		return tracker.Buttons{}
	}
	t, ok := r.manager.Tracker(p.ID())
	if !ok {
		return tracker.Buttons{}
	}
	return t.Buttons()
}

func (r *StateReducer) activeTracker(state *AppState) (*panel.Panel, *tracker.Tracker) {
	p := state.ActivePanel()
	if p == nil {
		return nil, nil
	}
	return p, r.manager.Ensure(p)
}

// Reduce applies action to state.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	state.LastError = nil
	if _, resize := action.(ResizeAction); !resize {
		state.Status = ""
	}

	switch a := action.(type) {

	// ===== VIEW =====

	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		return state, nil

	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
		return state, nil

	case ToggleHiddenFilesAction:
		state.ShowHidden = !state.ShowHidden
		r.catalog.SetShowHidden(state.ShowHidden)
		for _, p := range state.Panels {
			p.Refresh()
		}
		return state, r.activeErr(state)

	case RefreshAction:
		p := state.ActivePanel()
		if p == nil {
			return state, nil
		}
		p.Refresh()
		return state, r.activeErr(state)

	case ToggleViewModeAction:
		p := state.ActivePanel()
		if p == nil {
			return state, nil
		}
		p.ToggleViewMode()
		r.closeMenu(state)
		state.Buttons = r.buttons(state)
		state.Status = fmt.Sprintf("view: %s", p.ViewMode())
		return state, nil

	// ===== PANELS =====

	case PanelNewAction:
		p := panel.New(r.catalog)
		state.Panels = append(state.Panels, p)
		state.Active = len(state.Panels) - 1
		state.Focus = FocusTree
		r.closeMenu(state)
		r.logger.Debug("panel opened", "panel", p.ID(), "count", len(state.Panels))
		return state, p.Err()

	case PanelCloseAction:
		if len(state.Panels) <= 1 {
			return state, ErrLastPanel
		}
		closed := state.Panels[state.Active]
		state.Panels = slices.Delete(state.Panels, state.Active, state.Active+1)
		if state.Active >= len(state.Panels) {
			state.Active = len(state.Panels) - 1
		}
		r.closeMenu(state)
		r.logger.Debug("panel closed", "panel", closed.ID(), "count", len(state.Panels))
		return state, nil

	case PanelNextAction:
		if len(state.Panels) == 0 {
			return state, nil
		}
		n := len(state.Panels)
		state.Active = ((state.Active+a.Delta)%n + n) % n
		r.closeMenu(state)
		return state, nil

	case PanelSelectAction:
		if a.Index < 0 || a.Index >= len(state.Panels) {
			return state, nil
		}
		state.Active = a.Index
		r.closeMenu(state)
		return state, nil

	// ===== FOCUS =====

	case FocusNextAction:
		switch state.Focus {
		case FocusAssets:
			state.Focus = FocusTree
		default:
			state.Focus = FocusAssets
		}
		return state, nil

	case FocusSearchAction:
		state.Focus = FocusSearch
		return state, nil

	// ===== HISTORY =====

	case UndoAction:
		_, t := r.activeTracker(state)
		if t == nil {
			return state, nil
		}
		if t.Undo() {
			state.Status = "undo"
		}
		state.Buttons = t.Buttons()
		return state, r.activeErr(state)

	case RedoAction:
		_, t := r.activeTracker(state)
		if t == nil {
			return state, nil
		}
		if t.Redo() {
			state.Status = "redo"
		}
		state.Buttons = t.Buttons()
		return state, r.activeErr(state)

	case HistoryMenuOpenAction:
		p, t := r.activeTracker(state)
		if t == nil || p.ViewMode() == tracker.OneColumn {
			return state, nil
		}
		entries := t.Menu(a.Kind)
		state.Menu = HistoryMenu{
			Open:    true,
			Kind:    a.Kind,
			Entries: entries,
			Index:   firstSelectable(entries),
		}
		return state, nil

	case HistoryMenuNavigateAction:
		if !state.Menu.Open {
			return state, nil
		}
		state.Menu.Index = stepSelectable(state.Menu.Entries, state.Menu.Index, a.Delta)
		return state, nil

	case HistoryMenuSelectAction:
		if !state.Menu.Open || a.Index < 0 || a.Index >= len(state.Menu.Entries) {
			return state, nil
		}
		if !state.Menu.Entries[a.Index].Selectable() {
			return state, nil
		}
		state.Menu.Index = a.Index
		return r.acceptMenu(state)

	case HistoryMenuAcceptAction:
		return r.acceptMenu(state)

	case HistoryMenuCloseAction:
		r.closeMenu(state)
		return state, nil
	}

	p := state.ActivePanel()
	if p == nil {
		return state, nil
	}

	switch a := action.(type) {

	// ===== TREE =====

	case TreeMoveAction:
		p.MoveTreeCursor(a.Delta)
		return state, nil

	case TreeExpandAction:
		p.Expand()
		return state, p.Err()

	case TreeCollapseAction:
		p.Collapse()
		return state, nil

	case TreeSelectAction:
		if a.Toggle {
			p.ToggleAtCursor()
		} else {
			p.SelectAtCursor()
		}
		return state, p.Err()

	case TreeClickAction:
		if a.Row < 0 || a.Row >= len(p.Rows()) {
			return state, nil
		}
		state.Focus = FocusTree
		p.SetTreeCursor(a.Row)
		if a.Toggle {
			p.ToggleAtCursor()
		} else {
			p.SelectAtCursor()
		}
		return state, p.Err()

	// ===== ASSETS =====

	case AssetMoveAction:
		p.MoveAssetCursor(a.Delta)
		return state, nil

	case AssetOpenAction:
		if p.OpenAsset() {
			state.Focus = FocusAssets
		}
		return state, p.Err()

	case AssetClickAction:
		if a.Index < 0 || a.Index >= len(p.Assets()) {
			return state, nil
		}
		state.Focus = FocusAssets
		p.SetAssetCursor(a.Index)
		return state, nil

	// ===== SEARCH =====

	case SearchCharAction:
		state.Focus = FocusSearch
		p.TypeSearch(a.Char)
		return state, p.Err()

	case SearchBackspaceAction:
		p.BackspaceSearch()
		return state, p.Err()

	case SearchClearAction:
		p.ClearSearch()
		state.Focus = FocusTree
		return state, p.Err()

	case SearchCycleScopeAction:
		p.CycleScope()
		if p.SearchScope().Searching() {
			state.Status = fmt.Sprintf("scope: %s", p.SearchScope())
		}
		return state, p.Err()
	}

	return state, nil
}

func (r *StateReducer) acceptMenu(state *AppState) (*AppState, error) {
	entry, ok := state.Menu.Selected()
	r.closeMenu(state)
	if !ok || !entry.Selectable() {
		return state, nil
	}
	_, t := r.activeTracker(state)
	if t == nil {
		return state, nil
	}
	if t.Activate(entry) && entry.Action == tracker.ActionClear {
		state.Status = "history cleared"
	}
	state.Buttons = t.Buttons()
	return state, r.activeErr(state)
}

func (r *StateReducer) closeMenu(state *AppState) {
	state.Menu = HistoryMenu{}
}

func (r *StateReducer) activeErr(state *AppState) error {
	if p := state.ActivePanel(); p != nil {
		return p.Err()
	}
	return nil
}

func firstSelectable(entries []tracker.MenuEntry) int {
	for i, e := range entries {
		if e.Selectable() {
			return i
		}
	}
	return -1
}

// stepSelectable moves from idx by delta entries, skipping separators and
// stopping at either end.
func stepSelectable(entries []tracker.MenuEntry, idx, delta int) int {
	if delta == 0 || len(entries) == 0 {
		return idx
	}
	dir := 1
	if delta < 0 {
		dir = -1
		delta = -delta
	}
	cur := idx
	for ; delta > 0; delta-- {
		next := cur + dir
		for next >= 0 && next < len(entries) && !entries[next].Selectable() {
			next += dir
		}
		if next < 0 || next >= len(entries) {
			break
		}
		cur = next
	}
	return cur
}
