package app

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

var commandBuilder = exec.Command

// handleClipboard copies the highlighted asset's path, or the selected
// folder's when no asset is highlighted.
func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.Status = "no clipboard command found"
		return true
	}
	target := app.state.CurrentAssetPath()
	if target == "" {
		return true
	}

	clipPath := normalizeClipboardPath(target, runtime.GOOS)
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(clipPath)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("%s: %w", filepath.Base(app.clipboardCmd[0]), err)
		return true
	}
	app.state.Status = "copied " + clipPath
	app.logger.Debug("path copied", "path", clipPath)
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

func (app *Application) handleEditorOpen() bool {
	if !app.state.EditorAvailable || len(app.editorCmd) == 0 {
		return false
	}

	p := app.state.ActivePanel()
	if p == nil {
		return false
	}
	entry, ok := p.CurrentAsset()
	if !ok || entry.IsDir {
		return false
	}

	if err := app.openFileInEditor(entry.FullPath); err != nil {
		app.state.LastError = err
	}
	// The file may have been renamed or deleted from the editor.
	p.Refresh()
	return true
}

func (app *Application) openFileInEditor(filePath string) error {
	if len(app.editorCmd) == 0 {
		return fmt.Errorf("no editor configured")
	}

	editorArgs := app.editorArgsWithFile(filePath)
	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	var err error

	if useTTY {
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.openFileInEditorFallback(editorArgs)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(editorArgs[0], editorArgs[1:]...)
	if useTTY {
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	runErr := cmd.Run()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	_ = flushConsoleInput()
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", filepath.Base(editorArgs[0]), runErr)
	}
	return nil
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(args[0]), err)
	}
	return nil
}

func (app *Application) editorArgsWithFile(filePath string) []string {
	args := make([]string, len(app.editorCmd)+1)
	copy(args, app.editorCmd)
	args[len(app.editorCmd)] = filePath
	return args
}
