// Package panel implements the project browser panel: a folder tree with a
// multi-folder selection, a search field with a scope, and the asset list the
// two produce. Panel satisfies tracker.Panel so its state can be recorded and
// replayed.
package panel

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/kk-code-lab/rhist/internal/catalog"
	"github.com/kk-code-lab/rhist/internal/history"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

const searchTimeout = 5 * time.Second

// TreeRow is one visible line of the folder tree.
type TreeRow struct {
	ID       string
	Name     string
	Depth    int
	Expanded bool
}

// Panel is one browser panel (a tab).
type Panel struct {
	id      string
	catalog *catalog.Catalog

	expanded   map[string]bool
	rows       []TreeRow
	treeCursor int

	selection     []string
	searchText    string
	scope         history.Scope
	searchFolders []string
	viewMode      tracker.ViewMode

	assets      []catalog.Entry
	assetCursor int
	truncated   bool

	lastErr error
}

// New opens a panel on cat with the root folder selected.
func New(cat *catalog.Catalog) *Panel {
	p := &Panel{
		id:       uuid.NewString(),
		catalog:  cat,
		expanded: map[string]bool{catalog.RootID: true},
		viewMode: tracker.TwoColumns,
	}
	p.rebuildTree()
	p.selection = []string{catalog.RootID}
	p.refreshAssets()
	return p
}

// ID returns the panel identity.
func (p *Panel) ID() string {
	return p.id
}

// Catalog returns the catalog the panel browses.
func (p *Panel) Catalog() *catalog.Catalog {
	return p.catalog
}

// Title is the short name shown on the panel tab.
func (p *Panel) Title() string {
	if p.searchText != "" {
		return "?" + p.searchText
	}
	if len(p.selection) == 0 {
		return p.catalog.DisplayName(catalog.RootID)
	}
	title := p.catalog.DisplayName(p.selection[0])
	if len(p.selection) > 1 {
		title += "+"
	}
	return title
}

// Err returns the last error raised while reading the catalog.
func (p *Panel) Err() error {
	return p.lastErr
}

// ===== tracker.Bridge =====

// Selection returns the selected folder identifiers in selection order.
func (p *Panel) Selection() []string {
	return slices.Clone(p.selection)
}

// SetSelection replaces the selection, revealing the folders in the tree. It
// leaves the search untouched.
func (p *Panel) SetSelection(ids []string) {
	p.lastErr = nil
	p.setSelection(ids)
	p.refreshAssets()
}

// ApplyRecord replaces selection and search together and reloads the asset
// list once.
func (p *Panel) ApplyRecord(folders []string, text string, scope history.Scope) {
	p.lastErr = nil
	p.setSelection(folders)
	p.setSearch(text, scope, folders)
	p.refreshAssets()
}

func (p *Panel) setSelection(ids []string) {
	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if cleaned, err := catalog.CleanID(id); err == nil && !slices.Contains(next, cleaned) {
			next = append(next, cleaned)
		}
	}
	p.selection = next
	for _, id := range p.selection {
		p.reveal(id)
	}
	p.rebuildTree()
	if len(p.selection) > 0 {
		p.moveTreeCursorTo(p.selection[0])
	}
}

// SearchText returns the text in the search field.
func (p *Panel) SearchText() string {
	return p.searchText
}

// SearchScope returns where the current search applies.
func (p *Panel) SearchScope() history.Scope {
	return p.scope
}

// SetSearch replaces the search. Empty text ends the search; a non-searching
// scope keeps the current scope, or picks a default one.
func (p *Panel) SetSearch(text string, scope history.Scope, folders []string) {
	p.lastErr = nil
	p.setSearch(text, scope, folders)
	p.refreshAssets()
}

func (p *Panel) setSearch(text string, scope history.Scope, folders []string) {
	p.searchText = text
	p.searchFolders = slices.Clone(folders)
	switch {
	case text == "":
		p.scope = history.NotSearching
		p.searchFolders = nil
	case scope.Searching():
		p.scope = scope
	case !p.scope.Searching():
		p.scope = p.defaultScope()
	}
}

// ViewMode returns the panel layout.
func (p *Panel) ViewMode() tracker.ViewMode {
	return p.viewMode
}

// ===== tree =====

// Rows returns the visible tree rows.
func (p *Panel) Rows() []TreeRow {
	return p.rows
}

// TreeCursor returns the index of the highlighted tree row.
func (p *Panel) TreeCursor() int {
	return p.treeCursor
}

// CursorID returns the folder under the tree cursor.
func (p *Panel) CursorID() string {
	if p.treeCursor < 0 || p.treeCursor >= len(p.rows) {
		return ""
	}
	return p.rows[p.treeCursor].ID
}

// IsSelected reports whether id is part of the selection.
func (p *Panel) IsSelected(id string) bool {
	return slices.Contains(p.selection, id)
}

// MoveTreeCursor moves the tree highlight by delta rows, clamped.
func (p *Panel) MoveTreeCursor(delta int) {
	p.SetTreeCursor(p.treeCursor + delta)
}

// SetTreeCursor moves the tree highlight to row idx, clamped.
func (p *Panel) SetTreeCursor(idx int) {
	if len(p.rows) == 0 {
		p.treeCursor = 0
		return
	}
	p.treeCursor = max(0, min(idx, len(p.rows)-1))
}

// Expand opens the folder under the cursor.
func (p *Panel) Expand() {
	id := p.CursorID()
	if id == "" || p.expanded[id] {
		return
	}
	p.lastErr = nil
	p.expanded[id] = true
	p.rebuildTree()
	p.moveTreeCursorTo(id)
}

// Collapse closes the folder under the cursor, or moves to its parent when it
// is already closed.
func (p *Panel) Collapse() {
	id := p.CursorID()
	if id == "" {
		return
	}
	if p.expanded[id] && id != catalog.RootID {
		p.lastErr = nil
		delete(p.expanded, id)
		p.rebuildTree()
		p.moveTreeCursorTo(id)
		return
	}
	p.moveTreeCursorTo(catalog.Parent(id))
}

// SelectAtCursor makes the folder under the cursor the only selection.
// Selecting a folder ends any search except a sub-folder search.
func (p *Panel) SelectAtCursor() {
	id := p.CursorID()
	if id == "" {
		return
	}
	p.lastErr = nil
	p.selectFolders([]string{id})
}

// ToggleAtCursor adds the folder under the cursor to the selection, or removes
// it when already selected. The last folder cannot be removed.
func (p *Panel) ToggleAtCursor() {
	id := p.CursorID()
	if id == "" {
		return
	}
	p.lastErr = nil
	next := slices.Clone(p.selection)
	if idx := slices.Index(next, id); idx >= 0 {
		if len(next) == 1 {
			return
		}
		next = slices.Delete(next, idx, idx+1)
	} else {
		next = append(next, id)
	}
	p.selectFolders(next)
}

func (p *Panel) selectFolders(ids []string) {
	p.selection = ids
	if p.scope != history.SubFolders {
		p.searchText = ""
		p.scope = history.NotSearching
	}
	p.searchFolders = nil
	p.refreshAssets()
}

func (p *Panel) moveTreeCursorTo(id string) {
	for i, row := range p.rows {
		if row.ID == id {
			p.treeCursor = i
			return
		}
	}
	p.SetTreeCursor(p.treeCursor)
}

// reveal expands every ancestor of id.
func (p *Panel) reveal(id string) {
	for cur := catalog.Parent(id); ; cur = catalog.Parent(cur) {
		p.expanded[cur] = true
		if cur == catalog.RootID {
			return
		}
	}
}

func (p *Panel) rebuildTree() {
	rows := []TreeRow{{
		ID:       catalog.RootID,
		Name:     p.catalog.DisplayName(catalog.RootID),
		Expanded: p.expanded[catalog.RootID],
	}}
	if p.expanded[catalog.RootID] {
		rows = p.appendChildren(rows, catalog.RootID, 1)
	}
	p.rows = rows

	// Drop expansion state of folders that vanished.
	for id := range p.expanded {
		if id != catalog.RootID && !p.catalog.IsFolder(id) {
			delete(p.expanded, id)
		}
	}
	p.SetTreeCursor(p.treeCursor)
}

func (p *Panel) appendChildren(rows []TreeRow, id string, depth int) []TreeRow {
	folders, err := p.catalog.Folders(id)
	if err != nil {
		p.lastErr = err
		return rows
	}
	for _, f := range folders {
		open := p.expanded[f.ID]
		rows = append(rows, TreeRow{ID: f.ID, Name: f.Name, Depth: depth, Expanded: open})
		if open {
			rows = p.appendChildren(rows, f.ID, depth+1)
		}
	}
	return rows
}

// ===== search =====

// TypeSearch appends r to the search text. Starting a search picks
// SubFolders when folders are selected, AllAssets otherwise.
func (p *Panel) TypeSearch(r rune) {
	p.lastErr = nil
	p.searchText += string(r)
	if !p.scope.Searching() {
		p.scope = p.defaultScope()
	}
	p.refreshAssets()
}

// BackspaceSearch removes the last rune of the search text.
func (p *Panel) BackspaceSearch() {
	if p.searchText == "" {
		return
	}
	p.lastErr = nil
	runes := []rune(p.searchText)
	p.searchText = string(runes[:len(runes)-1])
	if p.searchText == "" {
		p.scope = history.NotSearching
		p.searchFolders = nil
	}
	p.refreshAssets()
}

// ClearSearch ends the search.
func (p *Panel) ClearSearch() {
	if p.searchText == "" && p.scope == history.NotSearching {
		return
	}
	p.SetSearch("", history.NotSearching, nil)
}

// CycleScope moves an active search to the next scope.
func (p *Panel) CycleScope() {
	if !p.scope.Searching() {
		return
	}
	p.lastErr = nil
	p.scope = p.scope.Next()
	p.refreshAssets()
}

func (p *Panel) defaultScope() history.Scope {
	if len(p.selection) > 0 {
		return history.SubFolders
	}
	return history.AllAssets
}

// ===== view =====

// ToggleViewMode switches between one and two columns.
func (p *Panel) ToggleViewMode() {
	if p.viewMode == tracker.OneColumn {
		p.viewMode = tracker.TwoColumns
	} else {
		p.viewMode = tracker.OneColumn
	}
}

// SetShowHidden toggles hidden entries and reloads.
func (p *Panel) SetShowHidden(show bool) {
	p.catalog.SetShowHidden(show)
	p.Refresh()
}

// Refresh rereads the tree and the asset list from disk. Selected folders
// that vanished stay selected so history can notice them.
func (p *Panel) Refresh() {
	p.lastErr = nil
	cursorID := p.CursorID()
	p.rebuildTree()
	p.moveTreeCursorTo(cursorID)
	p.refreshAssets()
}

// Assets returns the asset list: search results while searching, otherwise
// the contents of the selected folders.
func (p *Panel) Assets() []catalog.Entry {
	return p.assets
}

// Truncated reports whether search results were cut at the result limit.
func (p *Panel) Truncated() bool {
	return p.truncated
}

// AssetCursor returns the highlighted asset index.
func (p *Panel) AssetCursor() int {
	return p.assetCursor
}

// MoveAssetCursor moves the asset highlight by delta, clamped.
func (p *Panel) MoveAssetCursor(delta int) {
	p.SetAssetCursor(p.assetCursor + delta)
}

// SetAssetCursor moves the asset highlight to idx, clamped.
func (p *Panel) SetAssetCursor(idx int) {
	if len(p.assets) == 0 {
		p.assetCursor = 0
		return
	}
	p.assetCursor = max(0, min(idx, len(p.assets)-1))
}

// CurrentAsset returns the highlighted asset.
func (p *Panel) CurrentAsset() (catalog.Entry, bool) {
	if p.assetCursor < 0 || p.assetCursor >= len(p.assets) {
		return catalog.Entry{}, false
	}
	return p.assets[p.assetCursor], true
}

// OpenAsset selects the highlighted asset when it is a folder.
func (p *Panel) OpenAsset() bool {
	entry, ok := p.CurrentAsset()
	if !ok || !entry.IsDir {
		return false
	}
	p.lastErr = nil
	p.reveal(entry.ID)
	p.rebuildTree()
	p.moveTreeCursorTo(entry.ID)
	p.selectFolders([]string{entry.ID})
	return true
}

func (p *Panel) refreshAssets() {
	p.assets = nil
	p.truncated = false
	p.assetCursor = 0

	if p.searchText != "" && p.scope.Searching() {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		res, err := p.catalog.Search(ctx, p.searchRequest())
		if err != nil {
			p.lastErr = err
		}
		p.assets = res.Entries
		p.truncated = res.Truncated
		return
	}

	for _, id := range p.selection {
		entries, err := p.catalog.ReadDir(id)
		if err != nil {
			p.lastErr = err
			continue
		}
		p.assets = append(p.assets, entries...)
	}
}

func (p *Panel) searchRequest() catalog.SearchRequest {
	req := catalog.SearchRequest{Query: p.searchText}
	pkg := p.catalog.PackagesID()
	switch p.scope {
	case history.AllAssets:
		req.Roots = []string{catalog.RootID}
	case history.InAssetsOnly:
		req.Roots = []string{catalog.RootID}
		req.Exclude = []string{pkg}
	case history.InPackagesOnly:
		req.Roots = []string{pkg}
	case history.SubFolders:
		req.Roots = p.searchFolders
		if len(req.Roots) == 0 {
			req.Roots = p.selection
		}
	}
	return req
}
