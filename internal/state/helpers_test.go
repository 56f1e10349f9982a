package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kk-code-lab/rhist/internal/catalog"
	"github.com/kk-code-lab/rhist/internal/history"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

// newTestTree creates root/{assets/art,docs,packages/core} with one file in
// each folder.
func newTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"assets/art", "docs", "packages/core"} {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(dir)), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		name := filepath.Join(root, filepath.FromSlash(dir), "tree.txt")
		if err := os.WriteFile(name, []byte(dir), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return root
}

func newTestReducer(t *testing.T, panels int) (*StateReducer, *AppState) {
	t.Helper()
	cat, err := catalog.New(newTestTree(t))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	registry := history.NewRegistry(cat)
	manager := tracker.NewManager(registry, cat, nil, tracker.WithDebounce(0))
	reducer := NewStateReducer(cat, manager, nil)
	state := NewAppState(cat, panels)
	state.ScreenWidth = 120
	state.ScreenHeight = 40
	reducer.Frame(state)
	return reducer, state
}

func mustReduce(t *testing.T, r *StateReducer, s *AppState, action Action) {
	t.Helper()
	if _, err := r.Reduce(s, action); err != nil {
		t.Fatalf("Reduce(%T) failed: %v", action, err)
	}
}

// rowOf returns the tree row index of id in the active panel.
func rowOf(t *testing.T, s *AppState, id string) int {
	t.Helper()
	for i, row := range s.ActivePanel().Rows() {
		if row.ID == id {
			return i
		}
	}
	t.Fatalf("folder %q not visible in tree", id)
	return -1
}

func selectFolder(t *testing.T, r *StateReducer, s *AppState, id string) {
	t.Helper()
	mustReduce(t, r, s, TreeClickAction{Row: rowOf(t, s, id)})
	r.Frame(s)
}
