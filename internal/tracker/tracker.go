package tracker

import (
	"io"
	"log/slog"
	"time"

	"github.com/kk-code-lab/rhist/internal/history"
)

// DefaultDebounce is how long search text must stay unchanged before it is
// recorded.
const DefaultDebounce = 2 * time.Second

// Buttons holds the enabled state of the undo and redo controls.
type Buttons struct {
	Undo bool
	Redo bool
}

// Tracker observes one panel, records its state changes into a ledger and
// replays ledger records back onto the panel.
type Tracker struct {
	bridge   Bridge
	ledger   *history.Ledger
	folders  FolderChecker
	clock    Clock
	debounce time.Duration
	logger   *slog.Logger
	nameOf   func(id string) string

	oneColumn bool
	lastText  string
	commitAt  time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(t *Tracker) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithDebounce sets the quiet period before search text is recorded.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) {
		if d >= 0 {
			t.debounce = d
		}
	}
}

// WithLogger sets the logger used for history events.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithNamer sets how folder identifiers are shown in menu labels.
func WithNamer(fn func(id string) string) Option {
	return func(t *Tracker) {
		t.nameOf = fn
	}
}

// New creates a tracker for bridge that records into ledger. folders may be
// nil, in which case every selected item counts as a folder.
func New(bridge Bridge, ledger *history.Ledger, folders FolderChecker, opts ...Option) *Tracker {
	t := &Tracker{
		bridge:   bridge,
		ledger:   ledger,
		folders:  folders,
		clock:    systemClock{},
		debounce: DefaultDebounce,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ledger returns the ledger the tracker records into.
func (t *Tracker) Ledger() *history.Ledger {
	return t.ledger
}

// Poll inspects the panel once. Call it every frame.
func (t *Tracker) Poll() {
	t.oneColumn = t.bridge.ViewMode() == OneColumn
	if t.oneColumn {
		return
	}

	t.checkSearchText(t.clock.Now())
	t.checkSelection()
}

// Buttons reports which of the undo and redo controls are usable.
func (t *Tracker) Buttons() Buttons {
	oneColumn := t.bridge.ViewMode() == OneColumn
	return Buttons{
		Undo: !oneColumn && t.ledger.CanUndo(),
		Redo: !oneColumn && t.ledger.CanRedo(),
	}
}

// Undo replays the previous record. It reports whether the panel changed.
func (t *Tracker) Undo() bool {
	if t.refuse() {
		return false
	}
	rec, ok := t.ledger.Undo()
	if !ok {
		return false
	}
	t.apply(rec)
	return true
}

// Redo replays the next record. It reports whether the panel changed.
func (t *Tracker) Redo() bool {
	if t.refuse() {
		return false
	}
	rec, ok := t.ledger.Redo()
	if !ok {
		return false
	}
	t.apply(rec)
	return true
}

// UndoTo steps back n records at once.
func (t *Tracker) UndoTo(n int) bool {
	if t.refuse() || n <= 0 {
		return false
	}
	rec, ok := t.ledger.UndoMultiple(n)
	if !ok {
		return false
	}
	t.apply(rec)
	return true
}

// RedoTo steps forward n records at once.
func (t *Tracker) RedoTo(n int) bool {
	if t.refuse() || n <= 0 {
		return false
	}
	rec, ok := t.ledger.RedoMultiple(n)
	if !ok {
		return false
	}
	t.apply(rec)
	return true
}

// Clear drops the panel's whole history. It does nothing in one-column mode.
func (t *Tracker) Clear() bool {
	if t.refuse() {
		return false
	}
	t.ledger.Clear()
	t.logger.Debug("history cleared")
	return true
}

func (t *Tracker) refuse() bool {
	t.oneColumn = t.bridge.ViewMode() == OneColumn
	return t.oneColumn
}

// apply pushes rec onto the panel. The search text it sets is treated as
// already seen so replaying never records a new state.
func (t *Tracker) apply(rec history.Record) {
	folders := rec.Folders()
	if applier, ok := t.bridge.(RecordApplier); ok {
		applier.ApplyRecord(folders, rec.SearchText(), rec.Scope())
	} else {
		t.bridge.SetSelection(folders)
		t.bridge.SetSearch(rec.SearchText(), rec.Scope(), folders)
	}

	t.lastText = t.bridge.SearchText()
	t.commitAt = time.Time{}
	t.logger.Debug("history record applied", "record", rec.String(), "cursor", t.ledger.Cursor())
}

func (t *Tracker) checkSearchText(now time.Time) {
	text := t.bridge.SearchText()

	if text != t.lastText {
		t.commitAt = now.Add(t.debounce)
		t.lastText = text
	}

	// Still typing.
	if now.Before(t.commitAt) {
		return
	}
	if text == "" {
		return
	}
	scope := t.bridge.SearchScope()
	if scope == history.NotSearching {
		return
	}

	current, hasCurrent := t.ledger.Current()
	if !hasCurrent || text != current.SearchText() {
		t.push(history.NewRecord(current.Folders(), text, scope))
		return
	}

	if scope != current.Scope() {
		t.ledger.ReplaceCurrentScope(scope)
		t.logger.Debug("history scope updated", "scope", scope.String())
	}
}

func (t *Tracker) checkSelection() {
	selected := t.bridge.Selection()
	if len(selected) == 0 {
		return
	}

	folders := make([]string, 0, len(selected))
	for _, id := range selected {
		if t.folders == nil || t.folders.IsFolder(id) {
			folders = append(folders, id)
		}
	}

	if len(folders) == 0 {
		return
	}

	last, hasLast := t.ledger.Current()
	if hasLast && last.SameFolders(folders) {
		return
	}

	// A sub-folder search follows the selection; any other search ends with it.
	text := ""
	scope := history.NotSearching
	if hasLast && last.Scope() == history.SubFolders {
		text = last.SearchText()
		scope = history.SubFolders
	}
	t.push(history.NewRecord(folders, text, scope))
}

func (t *Tracker) push(rec history.Record) {
	t.ledger.SetCurrentRecord(rec)
	t.logger.Debug("history record pushed", "record", rec.String(), "size", t.ledger.Len())
}
