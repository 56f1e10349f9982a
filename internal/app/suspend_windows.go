//go:build windows

package app

import "os"

func contSignals() []os.Signal {
	return nil
}

// On Windows there is no SIGTSTP/SIGCONT; treat suspend as no-op.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
