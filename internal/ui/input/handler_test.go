package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

func expectAction[T statepkg.Action](t *testing.T, ch chan statepkg.Action) T {
	t.Helper()
	select {
	case action := <-ch:
		typed, ok := action.(T)
		if !ok {
			var zero T
			t.Fatalf("expected %T, got %T", zero, action)
		}
		return typed
	default:
		var zero T
		t.Fatalf("expected %T to be emitted", zero)
		return zero
	}
}

func expectNoAction(t *testing.T, ch chan statepkg.Action) {
	t.Helper()
	select {
	case action := <-ch:
		t.Fatalf("expected no action, got %T", action)
	default:
	}
}

func newHandler(state *statepkg.AppState) (*InputHandler, chan statepkg.Action) {
	ch := make(chan statepkg.Action, 4)
	h := NewInputHandler(ch)
	h.SetState(state)
	return h, ch
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestBracketsUndoAndRedo(t *testing.T) {
	h, ch := newHandler(&statepkg.AppState{})

	h.ProcessEvent(runeKey('['))
	expectAction[statepkg.UndoAction](t, ch)
	h.ProcessEvent(runeKey(']'))
	expectAction[statepkg.RedoAction](t, ch)
}

func TestBracesOpenHistoryMenus(t *testing.T) {
	h, ch := newHandler(&statepkg.AppState{})

	h.ProcessEvent(runeKey('{'))
	if got := expectAction[statepkg.HistoryMenuOpenAction](t, ch); got.Kind != tracker.UndoMenu {
		t.Fatalf("expected undo menu, got %v", got.Kind)
	}
	h.ProcessEvent(runeKey('}'))
	if got := expectAction[statepkg.HistoryMenuOpenAction](t, ch); got.Kind != tracker.RedoMenu {
		t.Fatalf("expected redo menu, got %v", got.Kind)
	}
}

func TestAltArrowsUndoWhileSearching(t *testing.T) {
	h, ch := newHandler(&statepkg.AppState{Focus: statepkg.FocusSearch})

	h.ProcessEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt))
	expectAction[statepkg.UndoAction](t, ch)
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModAlt))
	expectAction[statepkg.RedoAction](t, ch)
}

func TestSearchFocusTypesEverything(t *testing.T) {
	h, ch := newHandler(&statepkg.AppState{Focus: statepkg.FocusSearch})

	for _, r := range "q[x" {
		if !h.ProcessEvent(runeKey(r)) {
			t.Fatalf("typing %q in search must not quit", r)
		}
		if got := expectAction[statepkg.SearchCharAction](t, ch); got.Char != r {
			t.Fatalf("expected %q, got %q", r, got.Char)
		}
	}

	h.ProcessEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	expectAction[statepkg.SearchCycleScopeAction](t, ch)
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	expectAction[statepkg.SearchBackspaceAction](t, ch)
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	expectAction[statepkg.FocusNextAction](t, ch)
}

func TestMenuKeysWhileOpen(t *testing.T) {
	state := &statepkg.AppState{Menu: statepkg.HistoryMenu{Open: true}}
	h, ch := newHandler(state)

	h.ProcessEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if got := expectAction[statepkg.HistoryMenuNavigateAction](t, ch); got.Delta != 1 {
		t.Fatalf("expected +1, got %d", got.Delta)
	}
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	expectAction[statepkg.HistoryMenuAcceptAction](t, ch)
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	expectAction[statepkg.HistoryMenuCloseAction](t, ch)

	// Browse keys are swallowed while the menu is open.
	h.ProcessEvent(runeKey('['))
	expectNoAction(t, ch)
}

func TestTreeAndAssetNavigation(t *testing.T) {
	state := &statepkg.AppState{}
	h, ch := newHandler(state)

	h.ProcessEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if got := expectAction[statepkg.TreeMoveAction](t, ch); got.Delta != 1 {
		t.Fatalf("expected tree move +1, got %d", got.Delta)
	}
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if got := expectAction[statepkg.TreeSelectAction](t, ch); got.Toggle {
		t.Fatalf("enter should replace the selection")
	}
	h.ProcessEvent(runeKey(' '))
	if got := expectAction[statepkg.TreeSelectAction](t, ch); !got.Toggle {
		t.Fatalf("space should toggle the folder")
	}

	state.Focus = statepkg.FocusAssets
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if got := expectAction[statepkg.AssetMoveAction](t, ch); got.Delta != -1 {
		t.Fatalf("expected asset move -1, got %d", got.Delta)
	}
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	expectAction[statepkg.AssetOpenAction](t, ch)
}

func TestPanelKeys(t *testing.T) {
	h, ch := newHandler(&statepkg.AppState{})

	h.ProcessEvent(runeKey('t'))
	expectAction[statepkg.PanelNewAction](t, ch)
	h.ProcessEvent(runeKey('w'))
	expectAction[statepkg.PanelCloseAction](t, ch)
	h.ProcessEvent(runeKey('3'))
	if got := expectAction[statepkg.PanelSelectAction](t, ch); got.Index != 2 {
		t.Fatalf("expected panel index 2, got %d", got.Index)
	}
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl))
	if got := expectAction[statepkg.PanelNextAction](t, ch); got.Delta != 1 {
		t.Fatalf("expected next panel, got %d", got.Delta)
	}
	h.ProcessEvent(runeKey('v'))
	expectAction[statepkg.ToggleViewModeAction](t, ch)
}

func TestQuitKeys(t *testing.T) {
	h, ch := newHandler(&statepkg.AppState{})

	if h.ProcessEvent(runeKey('q')) {
		t.Fatalf("q should stop the loop")
	}
	expectAction[statepkg.QuitAction](t, ch)

	if h.ProcessEvent(runeKey('x')) {
		t.Fatalf("x should stop the loop")
	}
	expectAction[statepkg.QuitAndChangeAction](t, ch)

	if h.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Fatalf("Ctrl+C should stop the loop")
	}
	expectAction[statepkg.QuitAction](t, ch)
}

func TestHelpVisibleSwallowsKeys(t *testing.T) {
	h, ch := newHandler(&statepkg.AppState{HelpVisible: true})

	h.ProcessEvent(runeKey('t'))
	expectNoAction(t, ch)
	h.ProcessEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	expectAction[statepkg.HelpToggleAction](t, ch)
}

func TestResizeEmitsAction(t *testing.T) {
	h, ch := newHandler(nil)
	h.ProcessEvent(tcell.NewEventResize(100, 30))
	got := expectAction[statepkg.ResizeAction](t, ch)
	if got.Width != 100 || got.Height != 30 {
		t.Fatalf("unexpected resize %+v", got)
	}
}

func TestYankAndEditKeys(t *testing.T) {
	state := &statepkg.AppState{}
	h, ch := newHandler(state)

	h.ProcessEvent(runeKey('e'))
	expectNoAction(t, ch)
	h.ProcessEvent(runeKey('y'))
	expectAction[statepkg.YankPathAction](t, ch)

	state.Focus = statepkg.FocusAssets
	h.ProcessEvent(runeKey('e'))
	expectAction[statepkg.OpenEditorAction](t, ch)
}
