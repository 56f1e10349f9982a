package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/tracker"
)

const pageStep = 10

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false when
// the event ends the application.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) emit(action statepkg.Action) {
	ih.actionChan <- action
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.emit(statepkg.QuitAction{})
		return false
	case tcell.KeyCtrlZ:
		ih.emit(statepkg.SuspendAction{})
		return true
	}

	if ih.state != nil && ih.state.HelpVisible {
		return ih.processHelpKey(ev)
	}
	if ih.state != nil && ih.state.Menu.Open {
		return ih.processMenuKey(ev)
	}

	// Alt+←/→ step through history from any focus.
	if ev.Modifiers()&tcell.ModAlt != 0 {
		switch ev.Key() {
		case tcell.KeyLeft:
			ih.emit(statepkg.UndoAction{})
			return true
		case tcell.KeyRight:
			ih.emit(statepkg.RedoAction{})
			return true
		}
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		switch ev.Key() {
		case tcell.KeyLeft:
			ih.emit(statepkg.PanelNextAction{Delta: -1})
			return true
		case tcell.KeyRight:
			ih.emit(statepkg.PanelNextAction{Delta: 1})
			return true
		}
	}

	focus := statepkg.FocusTree
	if ih.state != nil {
		focus = ih.state.Focus
	}
	if focus == statepkg.FocusSearch {
		return ih.processSearchKey(ev)
	}
	return ih.processBrowseKey(ev, focus)
}

func (ih *InputHandler) processHelpKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.HelpToggleAction{})
	case tcell.KeyRune:
		switch ev.Rune() {
		case '?', 'q', 'Q':
			ih.emit(statepkg.HelpToggleAction{})
		}
	}
	return true
}

func (ih *InputHandler) processMenuKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		ih.emit(statepkg.HistoryMenuCloseAction{})
	case tcell.KeyUp:
		ih.emit(statepkg.HistoryMenuNavigateAction{Delta: -1})
	case tcell.KeyDown:
		ih.emit(statepkg.HistoryMenuNavigateAction{Delta: 1})
	case tcell.KeyPgUp:
		ih.emit(statepkg.HistoryMenuNavigateAction{Delta: -pageStep})
	case tcell.KeyPgDn:
		ih.emit(statepkg.HistoryMenuNavigateAction{Delta: pageStep})
	case tcell.KeyEnter:
		ih.emit(statepkg.HistoryMenuAcceptAction{})
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', '{', '}':
			ih.emit(statepkg.HistoryMenuCloseAction{})
		case 'k':
			ih.emit(statepkg.HistoryMenuNavigateAction{Delta: -1})
		case 'j':
			ih.emit(statepkg.HistoryMenuNavigateAction{Delta: 1})
		}
	}
	return true
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.ActivePanel() != nil && ih.state.ActivePanel().SearchText() == "" {
			ih.emit(statepkg.FocusNextAction{})
			return true
		}
		ih.emit(statepkg.SearchClearAction{})
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.emit(statepkg.SearchBackspaceAction{})
	case tcell.KeyTab:
		ih.emit(statepkg.SearchCycleScopeAction{})
	case tcell.KeyEnter, tcell.KeyDown:
		ih.emit(statepkg.FocusNextAction{})
	case tcell.KeyRune:
		ih.emit(statepkg.SearchCharAction{Char: ev.Rune()})
	}
	return true
}

func (ih *InputHandler) processBrowseKey(ev *tcell.EventKey, focus statepkg.Focus) bool {
	inTree := focus == statepkg.FocusTree

	move := func(delta int) {
		if inTree {
			ih.emit(statepkg.TreeMoveAction{Delta: delta})
		} else {
			ih.emit(statepkg.AssetMoveAction{Delta: delta})
		}
	}

	switch ev.Key() {
	case tcell.KeyUp:
		move(-1)
		return true
	case tcell.KeyDown:
		move(1)
		return true
	case tcell.KeyPgUp:
		move(-pageStep)
		return true
	case tcell.KeyPgDn:
		move(pageStep)
		return true
	case tcell.KeyHome:
		move(-1 << 20)
		return true
	case tcell.KeyEnd:
		move(1 << 20)
		return true
	case tcell.KeyRight:
		if inTree {
			ih.emit(statepkg.TreeExpandAction{})
		}
		return true
	case tcell.KeyLeft:
		if inTree {
			ih.emit(statepkg.TreeCollapseAction{})
		} else {
			ih.emit(statepkg.FocusNextAction{})
		}
		return true
	case tcell.KeyEnter:
		if inTree {
			ih.emit(statepkg.TreeSelectAction{})
		} else {
			ih.emit(statepkg.AssetOpenAction{})
		}
		return true
	case tcell.KeyTab, tcell.KeyBacktab:
		ih.emit(statepkg.FocusNextAction{})
		return true
	case tcell.KeyEscape:
		if ih.state != nil && ih.state.ActivePanel() != nil && ih.state.ActivePanel().SearchText() != "" {
			ih.emit(statepkg.SearchClearAction{})
		}
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	r := ev.Rune()
	switch r {
	case 'q':
		ih.emit(statepkg.QuitAction{})
		return false
	case 'x':
		ih.emit(statepkg.QuitAndChangeAction{})
		return false
	case ' ':
		if inTree {
			ih.emit(statepkg.TreeSelectAction{Toggle: true})
		}
	case '?':
		ih.emit(statepkg.HelpToggleAction{})
	case '.':
		ih.emit(statepkg.ToggleHiddenFilesAction{})
	case 'r', 'R':
		ih.emit(statepkg.RefreshAction{})
	case 'v':
		ih.emit(statepkg.ToggleViewModeAction{})
	case 't':
		ih.emit(statepkg.PanelNewAction{})
	case 'w':
		ih.emit(statepkg.PanelCloseAction{})
	case '[':
		ih.emit(statepkg.UndoAction{})
	case ']':
		ih.emit(statepkg.RedoAction{})
	case '{':
		ih.emit(statepkg.HistoryMenuOpenAction{Kind: tracker.UndoMenu})
	case '}':
		ih.emit(statepkg.HistoryMenuOpenAction{Kind: tracker.RedoMenu})
	case '/':
		ih.emit(statepkg.FocusSearchAction{})
	case 'y':
		ih.emit(statepkg.YankPathAction{})
	case 'e':
		if !inTree {
			ih.emit(statepkg.OpenEditorAction{})
		}
	case 'k':
		move(-1)
	case 'j':
		move(1)
	case 'l':
		if inTree {
			ih.emit(statepkg.TreeExpandAction{})
		}
	case 'h':
		if inTree {
			ih.emit(statepkg.TreeCollapseAction{})
		}
	default:
		if r >= '1' && r <= '9' {
			ih.emit(statepkg.PanelSelectAction{Index: int(r - '1')})
		}
	}
	return true
}
