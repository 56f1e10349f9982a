package state

import "github.com/kk-code-lab/rhist/internal/tracker"

// Action is the base interface for all state mutations
type Action interface{}

// ===== TREE ACTIONS =====

type TreeMoveAction struct {
	Delta int
}
type TreeExpandAction struct{}
type TreeCollapseAction struct{}
type TreeSelectAction struct {
	Toggle bool // add/remove instead of replacing the selection
}
type TreeClickAction struct {
	Row    int
	Toggle bool
}

// ===== ASSET ACTIONS =====

type AssetMoveAction struct {
	Delta int
}
type AssetOpenAction struct{}
type AssetClickAction struct {
	Index int
}

// ===== FOCUS ACTIONS =====

type FocusNextAction struct{}
type FocusSearchAction struct{}

// ===== SEARCH ACTIONS =====

type SearchCharAction struct {
	Char rune
}
type SearchBackspaceAction struct{}
type SearchClearAction struct{}
type SearchCycleScopeAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

type ToggleViewModeAction struct{}
type ToggleHiddenFilesAction struct{}
type RefreshAction struct{}
type HelpToggleAction struct{}

// ===== HISTORY ACTIONS =====

type UndoAction struct{}
type RedoAction struct{}
type HistoryMenuOpenAction struct {
	Kind tracker.MenuKind
}
type HistoryMenuNavigateAction struct {
	Delta int
}
type HistoryMenuSelectAction struct {
	Index int // activates the entry at Index
}
type HistoryMenuAcceptAction struct{}
type HistoryMenuCloseAction struct{}

// ===== PANEL ACTIONS =====

type PanelNewAction struct{}
type PanelCloseAction struct{}
type PanelNextAction struct {
	Delta int
}
type PanelSelectAction struct {
	Index int
}

// ===== APPLICATION ACTIONS =====

type YankPathAction struct{}   // y - copy the highlighted asset's path
type OpenEditorAction struct{} // e - edit the highlighted file

type QuitAction struct{}          // q - return to original directory
type QuitAndChangeAction struct{} // x - change to the selected folder
type SuspendAction struct{}
