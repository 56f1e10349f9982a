package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rhist/internal/config"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
)

// newTestProject creates root/{assets,docs,packages} with one file in each.
func newTestProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"assets", "docs", "packages"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		if err := os.WriteFile(filepath.Join(root, dir, "notes.txt"), []byte(dir), 0o644); err != nil {
			t.Fatalf("write %s: %v", dir, err)
		}
	}
	return root
}

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(scr.Fini)
	scr.SetSize(100, 30)

	cfg := config.Default()
	cfg.Root = newTestProject(t)
	app, err := newApplication(scr, cfg, nil)
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	app.frame()
	app.renderer.Render(app.state)
	return app
}

// drain applies every queued action.
func drain(app *Application) {
	app.processActions()
	app.frame()
	app.renderer.Render(app.state)
}

func TestNewApplicationUsesConfig(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer scr.Fini()

	cfg := config.Default()
	cfg.Root = newTestProject(t)
	cfg.InitialPanels = 3
	cfg.PollInterval = 0
	app, err := newApplication(scr, cfg, nil)
	if err != nil {
		t.Fatalf("newApplication: %v", err)
	}
	if len(app.state.Panels) != 3 {
		t.Fatalf("expected 3 panels, got %d", len(app.state.Panels))
	}
	if app.pollInterval != config.Default().PollInterval.Std() {
		t.Fatalf("expected default poll interval, got %v", app.pollInterval)
	}
}

func TestNewApplicationRejectsMissingRoot(t *testing.T) {
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	defer scr.Fini()

	cfg := config.Default()
	cfg.Root = filepath.Join(t.TempDir(), "missing")
	if _, err := newApplication(scr, cfg, nil); err == nil {
		t.Fatalf("expected error for a missing project root")
	}
}

func TestFrameEnablesUndoAfterSelection(t *testing.T) {
	app := newTestApplication(t)
	if app.state.Buttons.Undo {
		t.Fatalf("undo should start disabled")
	}

	app.handleAction(statepkg.TreeClickAction{Row: 1})
	if !app.frame() {
		t.Fatalf("expected frame to report a button change")
	}
	if !app.state.Buttons.Undo {
		t.Fatalf("expected undo enabled after selecting a folder")
	}

	app.handleAction(statepkg.UndoAction{})
	if got := app.state.ActivePanel().Selection(); len(got) != 1 || got[0] != "." {
		t.Fatalf("expected root selection after undo, got %v", got)
	}
	if !app.state.Buttons.Redo {
		t.Fatalf("expected redo enabled after undo")
	}
}

func TestQuitAndChangeRecordsSelectedFolder(t *testing.T) {
	app := newTestApplication(t)
	app.handleAction(statepkg.TreeClickAction{Row: 2})
	want := app.state.SelectedFolderPath()

	app.handleAction(statepkg.QuitAndChangeAction{})
	if !app.shouldQuit {
		t.Fatalf("expected quit")
	}
	if app.ResultPath() != want || want == "" {
		t.Fatalf("expected result path %q, got %q", want, app.ResultPath())
	}
}

func TestQuitLeavesResultEmpty(t *testing.T) {
	app := newTestApplication(t)
	app.handleAction(statepkg.QuitAction{})
	if !app.shouldQuit || app.ResultPath() != "" {
		t.Fatalf("expected plain quit, got quit=%v path=%q", app.shouldQuit, app.ResultPath())
	}
}

func TestReducerErrorsLandInState(t *testing.T) {
	app := newTestApplication(t)
	app.handleAction(statepkg.PanelCloseAction{})
	if app.state.LastError == nil {
		t.Fatalf("expected an error when closing the last panel")
	}
}

func TestNormalizeClipboardPathWindows(t *testing.T) {
	input := `C:\Users\me/project/sub/file.txt`
	got := normalizeClipboardPath(input, "windows")
	want := `C:\Users\me\project\sub\file.txt`
	if got != want {
		t.Fatalf("normalizeClipboardPath(%q, windows) = %q, want %q", input, got, want)
	}
}

func TestNormalizeClipboardPathUnix(t *testing.T) {
	input := "/tmp/project/dir/../file.txt"
	got := normalizeClipboardPath(input, "linux")
	want := "/tmp/project/file.txt"
	if got != want {
		t.Fatalf("normalizeClipboardPath(%q, linux) = %q, want %q", input, got, want)
	}
}

func TestHandleClipboardSetsLastErrorOnFailure(t *testing.T) {
	app := newTestApplication(t)
	app.clipboardAvail = true
	app.clipboardCmd = []string{"fake-clip", "--flag"}

	var recorded []string
	withFakeCommandBuilder(t, 7, &recorded, func() {
		app.handleClipboard()
	})

	if app.state.LastError == nil {
		t.Fatalf("expected clipboard failure to set LastError")
	}
	if got := app.state.LastError.Error(); !strings.Contains(got, "fake-clip") {
		t.Fatalf("expected error mentioning command, got %q", got)
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip", "--flag"})
}

func TestHandleClipboardCopiesHighlightedAsset(t *testing.T) {
	app := newTestApplication(t)
	app.clipboardAvail = true
	app.clipboardCmd = []string{"fake-clip"}
	entry, ok := app.state.ActivePanel().CurrentAsset()
	if !ok {
		t.Fatalf("expected a highlighted asset in the project root")
	}

	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded, func() {
		app.handleClipboard()
	})

	if app.state.LastError != nil {
		t.Fatalf("expected LastError to remain nil on success, got %v", app.state.LastError)
	}
	if !strings.Contains(app.state.Status, filepath.Base(entry.FullPath)) {
		t.Fatalf("expected status naming the copied path, got %q", app.state.Status)
	}
	assertCommandRecorded(t, recorded, []string{"fake-clip"})
}

func TestHandleClipboardWithoutCommand(t *testing.T) {
	app := newTestApplication(t)
	app.handleClipboard()
	if app.state.Status == "" {
		t.Fatalf("expected a status explaining the missing clipboard")
	}
}

func TestHandleEditorOpenIgnoresFolders(t *testing.T) {
	app := newTestApplication(t)
	app.state.EditorAvailable = true
	app.editorCmd = []string{"fake-editor"}

	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded, func() {
		if app.handleEditorOpen() {
			t.Fatalf("expected folders to be skipped")
		}
	})
	if recorded != nil {
		t.Fatalf("expected no command, got %v", recorded)
	}
}

func TestOpenFileInEditorFallbackPropagatesError(t *testing.T) {
	app := newTestApplication(t)
	args := []string{"fake-editor", "--wait"}

	var recorded []string
	var err error
	withFakeCommandBuilder(t, 5, &recorded, func() {
		err = app.openFileInEditorFallback(args)
	})

	if err == nil {
		t.Fatalf("expected error from editor fallback")
	}
	if got := err.Error(); !strings.Contains(got, "fake-editor") {
		t.Fatalf("expected editor error to include command name, got %q", got)
	}
	assertCommandRecorded(t, recorded, args)
}

func TestEditorArgsWithFile(t *testing.T) {
	app := &Application{editorCmd: []string{"code", "--wait"}}
	got := app.editorArgsWithFile("/tmp/a.txt")
	assertCommandRecorded(t, got, []string{"code", "--wait", "/tmp/a.txt"})
	if len(app.editorCmd) != 2 {
		t.Fatalf("editor command must not grow, got %v", app.editorCmd)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	code, err := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	if err != nil {
		code = 1
	}
	os.Exit(code)
}

func withFakeCommandBuilder(t *testing.T, exitCode int, recorded *[]string, fn func()) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		return helperProcessCommand(exitCode, name, args...)
	}
	defer func() {
		commandBuilder = orig
	}()
	fn()
}

func helperProcessCommand(exitCode int, name string, args ...string) *exec.Cmd {
	cmdArgs := []string{"-test.run=TestHelperProcess", "--", name}
	cmdArgs = append(cmdArgs, args...)
	cmd := exec.Command(os.Args[0], cmdArgs...)
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
	)
	return cmd
}

func assertCommandRecorded(t *testing.T, recorded, want []string) {
	t.Helper()
	if len(recorded) != len(want) {
		t.Fatalf("expected command %v, got %v", want, recorded)
	}
	for i := range want {
		if recorded[i] != want[i] {
			t.Fatalf("expected command %v, got %v", want, recorded)
		}
	}
}
