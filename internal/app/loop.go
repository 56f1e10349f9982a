package app

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
)

// Run drives the event loop until the user quits. Every poll interval the
// history layer observes the active panel.
func (app *Application) Run() {
	defer app.screen.Fini()

	app.reducer.Frame(app.state)
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	frames := time.NewTicker(app.pollInterval)
	defer frames.Stop()

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-frames.C:
			if app.frame() {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

// frame runs one history update and reports whether the screen needs a
// redraw.
func (app *Application) frame() bool {
	return app.reducer.Frame(app.state)
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.QuitAndChangeAction:
		app.resultPath = app.state.SelectedFolderPath()
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	}

	return app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) bool {
	switch action.(type) {
	case statepkg.YankPathAction:
		app.state.LastError = nil
		return app.handleClipboard()
	case statepkg.OpenEditorAction:
		return app.handleEditorOpen()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.state.LastError = err
		app.logger.Debug("action failed", "action", fmt.Sprintf("%T", action), "err", err)
	}
	return true
}
