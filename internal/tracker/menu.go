package tracker

import "github.com/kk-code-lab/rhist/internal/history"

// MenuKind selects which side of the history a menu lists.
type MenuKind int

const (
	UndoMenu MenuKind = iota
	RedoMenu
)

// EntryAction is what activating a menu entry does.
type EntryAction int

const (
	ActionStep EntryAction = iota
	ActionSeparator
	ActionClear
)

// ClearLabel is the label of the entry that wipes the history.
const ClearLabel = "Clear undo/redo history"

// MenuEntry is one line of a history menu.
type MenuEntry struct {
	Label  string
	Action EntryAction
	Kind   MenuKind
	Steps  int
}

// Selectable reports whether the entry can be activated.
func (e MenuEntry) Selectable() bool {
	return e.Action != ActionSeparator
}

// Menu lists history records for a right-click menu. The undo menu starts with
// the most recent earlier state, the redo menu with the next one. Both end
// with a separator and a clear entry.
func (t *Tracker) Menu(kind MenuKind) []MenuEntry {
	records := t.ledger.RedoList()
	if kind == UndoMenu {
		undo := t.ledger.UndoList()
		records = make([]history.Record, 0, len(undo))
		for i := len(undo) - 1; i >= 0; i-- {
			records = append(records, undo[i])
		}
	}

	entries := make([]MenuEntry, 0, len(records)+2)
	for i, rec := range records {
		entries = append(entries, MenuEntry{
			Label:  rec.Label(t.nameOf),
			Action: ActionStep,
			Kind:   kind,
			Steps:  i + 1,
		})
	}
	entries = append(entries,
		MenuEntry{Action: ActionSeparator, Kind: kind},
		MenuEntry{Label: ClearLabel, Action: ActionClear, Kind: kind},
	)
	return entries
}

// Activate performs a menu entry. It reports whether the panel changed.
func (t *Tracker) Activate(e MenuEntry) bool {
	switch e.Action {
	case ActionStep:
		if e.Kind == UndoMenu {
			return t.UndoTo(e.Steps)
		}
		return t.RedoTo(e.Steps)
	case ActionClear:
		return t.Clear()
	default:
		return false
	}
}
