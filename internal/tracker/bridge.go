package tracker

import (
	"time"

	"github.com/kk-code-lab/rhist/internal/history"
)

// ViewMode is the layout of a browser panel.
type ViewMode int

const (
	// OneColumn shows a single combined tree. History is not tracked in it.
	OneColumn ViewMode = iota
	// TwoColumns shows the folder tree next to the asset list.
	TwoColumns
)

func (m ViewMode) String() string {
	if m == OneColumn {
		return "one-column"
	}
	return "two-columns"
}

// Bridge is the narrow view of a browser panel the tracker reads from and
// replays records onto.
type Bridge interface {
	Selection() []string
	SetSelection(ids []string)
	SearchText() string
	SearchScope() history.Scope
	SetSearch(text string, scope history.Scope, folders []string)
	ViewMode() ViewMode
}

// RecordApplier is implemented by bridges that can take a whole record in one
// step. Replay prefers it over SetSelection followed by SetSearch.
type RecordApplier interface {
	ApplyRecord(folders []string, text string, scope history.Scope)
}

// Panel is a Bridge with a stable identity.
type Panel interface {
	Bridge
	ID() string
}

// FolderChecker tells folders apart from other selected items.
type FolderChecker interface {
	IsFolder(id string) bool
}

// Clock supplies the monotonic time used for debouncing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
