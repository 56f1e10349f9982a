package app

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/tracker"
	renderui "github.com/kk-code-lab/rhist/internal/ui/render"
)

const (
	doubleClickThreshold = 300 * time.Millisecond
	wheelStep            = 3
)

// handleMouse maps clicks on the last rendered layout to actions. Only the
// press edge of a button counts; drags and releases are ignored.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	if app.state == nil || app.renderer == nil {
		return false
	}

	buttons := ev.Buttons()
	pressed := buttons &^ app.lastButtons
	app.lastButtons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	layout, ok := app.renderer.LastLayout()
	if !ok || app.state.HelpVisible {
		return false
	}
	x, y := ev.Position()

	switch {
	case buttons&tcell.WheelUp != 0:
		return app.handleWheel(layout, x, y, -wheelStep)
	case buttons&tcell.WheelDown != 0:
		return app.handleWheel(layout, x, y, wheelStep)
	case pressed&tcell.Button1 != 0:
		return app.handlePrimaryClick(layout, x, y, ev.Modifiers())
	case pressed&tcell.Button2 != 0:
		return app.handleSecondaryClick(layout, x, y)
	}
	return false
}

func (app *Application) handlePrimaryClick(layout renderui.Layout, x, y int, mods tcell.ModMask) bool {
	if app.state.Menu.Open {
		if idx, ok := layout.PopupEntryAt(x, y); ok {
			app.actionCh <- statepkg.HistoryMenuSelectAction{Index: idx}
			return true
		}
		if layout.Popup.Contains(x, y) {
			return false
		}
		app.actionCh <- statepkg.HistoryMenuCloseAction{}
		return true
	}

	switch {
	case layout.UndoButton.Contains(x, y):
		app.actionCh <- statepkg.UndoAction{}
		return true
	case layout.RedoButton.Contains(x, y):
		app.actionCh <- statepkg.RedoAction{}
		return true
	case layout.Search.Contains(x, y):
		app.actionCh <- statepkg.FocusSearchAction{}
		return true
	}

	if idx, ok := layout.TabAt(x, y); ok {
		app.actionCh <- statepkg.PanelSelectAction{Index: idx}
		return true
	}

	if row, ok := layout.TreeRowAt(x, y); ok {
		toggle := mods&(tcell.ModCtrl|tcell.ModShift) != 0
		app.actionCh <- statepkg.TreeClickAction{Row: row, Toggle: toggle}
		return true
	}

	if idx, ok := layout.AssetAt(x, y); ok {
		clickKey := fmt.Sprintf("asset-%d", idx)
		doubleClick := app.lastClickKey == clickKey && time.Since(app.lastClickTime) <= doubleClickThreshold
		app.lastClickKey = clickKey
		app.lastClickTime = time.Now()

		app.actionCh <- statepkg.AssetClickAction{Index: idx}
		if doubleClick {
			app.actionCh <- statepkg.AssetOpenAction{}
		}
		return true
	}
	return false
}

// handleSecondaryClick opens the history list of the button under the
// pointer.
func (app *Application) handleSecondaryClick(layout renderui.Layout, x, y int) bool {
	switch {
	case layout.UndoButton.Contains(x, y):
		app.actionCh <- statepkg.HistoryMenuOpenAction{Kind: tracker.UndoMenu}
		return true
	case layout.RedoButton.Contains(x, y):
		app.actionCh <- statepkg.HistoryMenuOpenAction{Kind: tracker.RedoMenu}
		return true
	case app.state.Menu.Open:
		app.actionCh <- statepkg.HistoryMenuCloseAction{}
		return true
	}
	return false
}

func (app *Application) handleWheel(layout renderui.Layout, x, y, delta int) bool {
	switch {
	case app.state.Menu.Open && layout.Popup.Contains(x, y):
		app.actionCh <- statepkg.HistoryMenuNavigateAction{Delta: delta}
	case layout.Tree.Contains(x, y):
		app.actionCh <- statepkg.TreeMoveAction{Delta: delta}
	case layout.Assets.Contains(x, y):
		app.actionCh <- statepkg.AssetMoveAction{Delta: delta}
	default:
		return false
	}
	return true
}
