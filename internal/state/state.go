package state

import (
	"github.com/kk-code-lab/rhist/internal/catalog"
	"github.com/kk-code-lab/rhist/internal/panel"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

// Focus names the part of the active panel receiving keys.
type Focus int

const (
	FocusTree Focus = iota
	FocusAssets
	FocusSearch
)

func (f Focus) String() string {
	switch f {
	case FocusTree:
		return "tree"
	case FocusAssets:
		return "assets"
	case FocusSearch:
		return "search"
	default:
		return "unknown"
	}
}

// HistoryMenu is the popup listing undo or redo records.
type HistoryMenu struct {
	Open    bool
	Kind    tracker.MenuKind
	Entries []tracker.MenuEntry
	Index   int
}

// Selected returns the highlighted entry.
func (m HistoryMenu) Selected() (tracker.MenuEntry, bool) {
	if !m.Open || m.Index < 0 || m.Index >= len(m.Entries) {
		return tracker.MenuEntry{}, false
	}
	return m.Entries[m.Index], true
}

// AppState is the single source of truth
type AppState struct {
	// Panels (tabs)
	Panels []*panel.Panel
	Active int
	Focus  Focus

	// History controls of the active panel
	Buttons tracker.Buttons
	Menu    HistoryMenu

	// View
	ShowHidden  bool
	HelpVisible bool

	// External tools
	ClipboardAvailable bool
	EditorAvailable    bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	Status string

	// Error state
	LastError error
}

// NewAppState opens count panels on cat.
func NewAppState(cat *catalog.Catalog, count int) *AppState {
	if count < 1 {
		count = 1
	}
	s := &AppState{ShowHidden: cat.ShowHidden()}
	for i := 0; i < count; i++ {
		s.Panels = append(s.Panels, panel.New(cat))
	}
	return s
}

// ActivePanel returns the panel keys and history controls apply to.
func (s *AppState) ActivePanel() *panel.Panel {
	if s == nil || s.Active < 0 || s.Active >= len(s.Panels) {
		return nil
	}
	return s.Panels[s.Active]
}

// SelectedFolderPath returns the absolute path of the active panel's first
// selected folder.
func (s *AppState) SelectedFolderPath() string {
	p := s.ActivePanel()
	if p == nil {
		return ""
	}
	sel := p.Selection()
	id := catalog.RootID
	if len(sel) > 0 {
		id = sel[0]
	}
	full, err := p.Catalog().Path(id)
	if err != nil {
		return p.Catalog().Root()
	}
	return full
}

// CurrentAssetPath returns the full path of the highlighted asset, or of the
// first selected folder when the asset list is empty.
func (s *AppState) CurrentAssetPath() string {
	p := s.ActivePanel()
	if p == nil {
		return ""
	}
	if entry, ok := p.CurrentAsset(); ok {
		return entry.FullPath
	}
	return s.SelectedFolderPath()
}

func (s *AppState) trackedPanels() []tracker.Panel {
	out := make([]tracker.Panel, 0, len(s.Panels))
	for _, p := range s.Panels {
		out = append(out, p)
	}
	return out
}
