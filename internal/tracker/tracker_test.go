package tracker

import (
	"slices"
	"testing"
	"time"

	"github.com/kk-code-lab/rhist/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakePanel is an in-memory Bridge. Identifiers ending in ".png" are files.
type fakePanel struct {
	id        string
	selection []string
	text      string
	scope     history.Scope
	mode      ViewMode
	searchIn  []string
	applied   int
}

func newFakePanel(id string) *fakePanel {
	return &fakePanel{id: id, mode: TwoColumns}
}

func (p *fakePanel) ID() string                 { return p.id }
func (p *fakePanel) Selection() []string        { return slices.Clone(p.selection) }
func (p *fakePanel) SearchText() string         { return p.text }
func (p *fakePanel) SearchScope() history.Scope { return p.scope }
func (p *fakePanel) ViewMode() ViewMode         { return p.mode }

func (p *fakePanel) SetSelection(ids []string) {
	p.selection = slices.Clone(ids)
	p.applied++
}

func (p *fakePanel) SetSearch(text string, scope history.Scope, folders []string) {
	p.text = text
	p.searchIn = slices.Clone(folders)
	if text == "" {
		p.scope = history.NotSearching
		return
	}
	if scope.Searching() {
		p.scope = scope
	}
}

type folderSet map[string]bool

func (f folderSet) IsFolder(id string) bool { return !f["file:"+id] }

func (f folderSet) Resolve(ids []string) []bool {
	out := make([]bool, len(ids))
	for i, id := range ids {
		out[i] = !f["gone:"+id]
	}
	return out
}

type harness struct {
	panel   *fakePanel
	clock   *fakeClock
	folders folderSet
	tracker *Tracker
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		panel:   newFakePanel("p1"),
		clock:   &fakeClock{now: time.Unix(1000, 0)},
		folders: folderSet{},
	}
	h.tracker = New(h.panel, history.NewLedger(h.folders), h.folders, WithClock(h.clock))
	return h
}

func (h *harness) selectFolders(ids ...string) {
	h.panel.selection = ids
	h.tracker.Poll()
}

func (h *harness) typeSearch(text string, scope history.Scope) {
	h.panel.text = text
	h.panel.scope = scope
	h.tracker.Poll()
}

func TestSelectionChangesAreRecorded(t *testing.T) {
	h := newHarness(t)

	h.selectFolders("a")
	h.tracker.Poll()
	h.selectFolders("b")
	h.selectFolders("b", "c")

	l := h.tracker.Ledger()
	require.Equal(t, 3, l.Len())
	cur, _ := l.Current()
	assert.Equal(t, []string{"b", "c"}, cur.Folders())
	assert.Equal(t, history.NotSearching, cur.Scope())
}

func TestEmptySelectionIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.tracker.Poll()
	assert.Equal(t, 0, h.tracker.Ledger().Len())

	h.folders["file:a.png"] = true
	h.selectFolders("a.png")
	assert.Equal(t, 0, h.tracker.Ledger().Len())
}

func TestNonFolderSelectionIsFiltered(t *testing.T) {
	h := newHarness(t)
	h.folders["file:art/tree.png"] = true

	h.selectFolders("art", "art/tree.png")

	cur, ok := h.tracker.Ledger().Current()
	require.True(t, ok)
	assert.Equal(t, []string{"art"}, cur.Folders())
}

func TestSearchTextIsDebounced(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")

	h.typeSearch("tr", history.AllAssets)
	h.clock.Advance(time.Second)
	h.typeSearch("tree", history.AllAssets)
	h.clock.Advance(1500 * time.Millisecond)
	h.tracker.Poll()
	assert.Equal(t, 1, h.tracker.Ledger().Len(), "still inside the quiet period")

	h.clock.Advance(600 * time.Millisecond)
	h.tracker.Poll()

	l := h.tracker.Ledger()
	require.Equal(t, 2, l.Len())
	cur, _ := l.Current()
	assert.Equal(t, "tree", cur.SearchText())
	assert.Equal(t, history.AllAssets, cur.Scope())
	assert.Equal(t, []string{"a"}, cur.Folders())

	h.clock.Advance(10 * time.Second)
	h.tracker.Poll()
	assert.Equal(t, 2, l.Len(), "same text is recorded once")
}

func TestSearchWithoutScopeIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.typeSearch("x", history.NotSearching)
	h.clock.Advance(3 * time.Second)
	h.tracker.Poll()

	assert.Equal(t, 1, h.tracker.Ledger().Len())
}

func TestScopeChangeRewritesCurrentRecord(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.typeSearch("x", history.AllAssets)
	h.clock.Advance(3 * time.Second)
	h.tracker.Poll()
	require.Equal(t, 2, h.tracker.Ledger().Len())

	h.panel.scope = history.InPackagesOnly
	h.tracker.Poll()

	l := h.tracker.Ledger()
	assert.Equal(t, 2, l.Len())
	cur, _ := l.Current()
	assert.Equal(t, history.InPackagesOnly, cur.Scope())
}

func TestSubFolderSearchFollowsSelection(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.typeSearch("x", history.SubFolders)
	h.clock.Advance(3 * time.Second)
	h.tracker.Poll()

	h.selectFolders("b")

	cur, _ := h.tracker.Ledger().Current()
	assert.Equal(t, []string{"b"}, cur.Folders())
	assert.Equal(t, "x", cur.SearchText())
	assert.Equal(t, history.SubFolders, cur.Scope())
}

func TestOtherSearchEndsWithSelection(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.typeSearch("x", history.AllAssets)
	h.clock.Advance(3 * time.Second)
	h.tracker.Poll()

	h.panel.text = ""
	h.panel.scope = history.NotSearching
	h.selectFolders("b")

	cur, _ := h.tracker.Ledger().Current()
	assert.Equal(t, []string{"b"}, cur.Folders())
	assert.Empty(t, cur.SearchText())
	assert.Equal(t, history.NotSearching, cur.Scope())
}

func TestUndoRedoReplaysOntoPanel(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.typeSearch("x", history.AllAssets)
	h.clock.Advance(3 * time.Second)
	h.tracker.Poll()
	h.panel.text = ""
	h.panel.scope = history.NotSearching
	h.selectFolders("b")

	require.True(t, h.tracker.Undo())
	assert.Equal(t, []string{"a"}, h.panel.selection)
	assert.Equal(t, "x", h.panel.text)
	assert.Equal(t, history.AllAssets, h.panel.scope)
	assert.Equal(t, []string{"a"}, h.panel.searchIn)

	require.True(t, h.tracker.Undo())
	assert.Equal(t, []string{"a"}, h.panel.selection)
	assert.Empty(t, h.panel.text)
	assert.False(t, h.tracker.Undo())

	// Polling after replay must not create new records.
	h.clock.Advance(5 * time.Second)
	h.tracker.Poll()
	h.tracker.Poll()
	assert.Equal(t, 3, h.tracker.Ledger().Len())

	require.True(t, h.tracker.Redo())
	require.True(t, h.tracker.Redo())
	assert.Equal(t, []string{"b"}, h.panel.selection)
	assert.False(t, h.tracker.Redo())
}

func TestReplayDoesNotRearmDebounce(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.typeSearch("x", history.AllAssets)
	h.clock.Advance(3 * time.Second)
	h.tracker.Poll()
	h.panel.text = ""
	h.panel.scope = history.NotSearching
	h.selectFolders("b")

	require.True(t, h.tracker.UndoTo(1))
	h.tracker.Poll()
	assert.Equal(t, 1, h.tracker.Ledger().Cursor())
	assert.Equal(t, 3, h.tracker.Ledger().Len())
}

func TestOneColumnDisablesHistory(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.selectFolders("b")

	h.panel.mode = OneColumn
	h.selectFolders("c")
	assert.Equal(t, 2, h.tracker.Ledger().Len())
	assert.Equal(t, Buttons{}, h.tracker.Buttons())
	assert.False(t, h.tracker.Undo())
	assert.False(t, h.tracker.UndoTo(1))

	h.panel.mode = TwoColumns
	assert.Equal(t, Buttons{Undo: true}, h.tracker.Buttons())
}

func TestClearRefusedInOneColumn(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.selectFolders("b")

	h.panel.mode = OneColumn
	assert.False(t, h.tracker.Clear())
	assert.False(t, h.tracker.Activate(MenuEntry{Action: ActionClear}))
	assert.Equal(t, 2, h.tracker.Ledger().Len())

	h.panel.mode = TwoColumns
	assert.True(t, h.tracker.Clear())
	assert.Equal(t, 0, h.tracker.Ledger().Len())
}

// applierPanel takes records through ApplyRecord only.
type applierPanel struct {
	*fakePanel
	records int
}

func (p *applierPanel) SetSelection([]string) {
	panic("SetSelection called during replay")
}

func (p *applierPanel) ApplyRecord(folders []string, text string, scope history.Scope) {
	p.records++
	p.selection = slices.Clone(folders)
	p.fakePanel.SetSearch(text, scope, folders)
}

func TestReplayPrefersRecordApplier(t *testing.T) {
	panel := &applierPanel{fakePanel: newFakePanel("p1")}
	folders := folderSet{}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	tr := New(panel, history.NewLedger(folders), folders, WithClock(clock))

	panel.selection = []string{"a"}
	tr.Poll()
	panel.text = "x"
	panel.scope = history.AllAssets
	tr.Poll()
	clock.Advance(3 * time.Second)
	tr.Poll()
	panel.text = ""
	panel.scope = history.NotSearching
	panel.selection = []string{"b"}
	tr.Poll()

	require.True(t, tr.Undo())
	assert.Equal(t, 1, panel.records)
	assert.Equal(t, []string{"a"}, panel.selection)
	assert.Equal(t, "x", panel.text)
	assert.Equal(t, history.AllAssets, panel.scope)

	tr.Poll()
	assert.Equal(t, 3, tr.Ledger().Len())
}

func TestButtons(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, Buttons{}, h.tracker.Buttons())

	h.selectFolders("a")
	h.selectFolders("b")
	h.selectFolders("c")
	assert.Equal(t, Buttons{Undo: true}, h.tracker.Buttons())

	h.tracker.Undo()
	assert.Equal(t, Buttons{Undo: true, Redo: true}, h.tracker.Buttons())
}

func TestUndoSkipsDeletedFolders(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.selectFolders("b")
	h.selectFolders("c")

	h.folders["gone:b"] = true

	require.True(t, h.tracker.Undo())
	assert.Equal(t, []string{"a"}, h.panel.selection)
}

func TestMenuListsAndActivates(t *testing.T) {
	h := newHarness(t)
	for _, id := range []string{"a", "b", "c", "d"} {
		h.selectFolders(id)
	}
	h.tracker.Undo() // on c

	undo := h.tracker.Menu(UndoMenu)
	require.Len(t, undo, 4)
	assert.Equal(t, "b", undo[0].Label)
	assert.Equal(t, "a", undo[1].Label)
	assert.Equal(t, ActionSeparator, undo[2].Action)
	assert.False(t, undo[2].Selectable())
	assert.Equal(t, ClearLabel, undo[3].Label)

	redo := h.tracker.Menu(RedoMenu)
	require.Len(t, redo, 3)
	assert.Equal(t, "d", redo[0].Label)

	require.True(t, h.tracker.Activate(undo[1]))
	assert.Equal(t, []string{"a"}, h.panel.selection)
	assert.Equal(t, 0, h.tracker.Ledger().Cursor())

	redo = h.tracker.Menu(RedoMenu)
	require.Len(t, redo, 5)
	require.True(t, h.tracker.Activate(redo[2]))
	assert.Equal(t, []string{"d"}, h.panel.selection)

	assert.False(t, h.tracker.Activate(redo[3]))
	assert.True(t, h.tracker.Activate(redo[4]))
	assert.Equal(t, 0, h.tracker.Ledger().Len())
}

func TestMenuUsesNamer(t *testing.T) {
	h := newHarness(t)
	h.tracker = New(h.panel, history.NewLedger(nil), nil, WithClock(h.clock),
		WithNamer(func(id string) string { return "<" + id + ">" }))
	h.selectFolders("a")
	h.selectFolders("b")

	undo := h.tracker.Menu(UndoMenu)
	assert.Equal(t, "<a>", undo[0].Label)
}

func TestUndoToIgnoresNonPositiveSteps(t *testing.T) {
	h := newHarness(t)
	h.selectFolders("a")
	h.selectFolders("b")

	assert.False(t, h.tracker.UndoTo(0))
	assert.False(t, h.tracker.RedoTo(-1))
	assert.Equal(t, 1, h.tracker.Ledger().Cursor())
}
