package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rhist/internal/catalog"
	"github.com/kk-code-lab/rhist/internal/config"
	"github.com/kk-code-lab/rhist/internal/history"
	statepkg "github.com/kk-code-lab/rhist/internal/state"
	"github.com/kk-code-lab/rhist/internal/tracker"
	inputui "github.com/kk-code-lab/rhist/internal/ui/input"
	renderui "github.com/kk-code-lab/rhist/internal/ui/render"
)

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    *statepkg.AppState
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	actionCh chan statepkg.Action
	logger   *slog.Logger

	pollInterval time.Duration
	shouldQuit   bool
	resultPath   string

	clipboardCmd   []string
	clipboardAvail bool
	editorCmd      []string

	lastButtons   tcell.ButtonMask
	lastClickKey  string
	lastClickTime time.Time
}

// NewApplication opens the terminal and builds the browser described by cfg.
func NewApplication(cfg config.Config, logger *slog.Logger) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so modified clicks don't leak as key events.
	screen.EnableMouse()

	app, err := newApplication(screen, cfg, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}

	finder := systemFinder()
	app.clipboardCmd, app.clipboardAvail = finder.clipboard(cfg.Clipboard)
	var editorAvail bool
	app.editorCmd, editorAvail = finder.editor(cfg.Editor)
	for _, configured := range []string{cfg.Clipboard, cfg.Editor} {
		if _, ok := finder.resolve(configured); configured != "" && !ok {
			app.logger.Warn("configured command not found, falling back", "command", configured)
		}
	}
	app.logger.Debug("external commands", "clipboard", app.clipboardCmd, "editor", app.editorCmd)
	app.state.ClipboardAvailable = app.clipboardAvail
	app.state.EditorAvailable = editorAvail
	return app, nil
}

func newApplication(screen tcell.Screen, cfg config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cat, err := catalog.New(cfg.Root,
		catalog.WithPackagesDir(cfg.PackagesDir),
		catalog.WithHidden(cfg.ShowHidden),
		catalog.WithMaxResults(cfg.MaxResults),
	)
	if err != nil {
		return nil, fmt.Errorf("open project %s: %w", cfg.Root, err)
	}

	registry := history.NewRegistry(cat, history.WithCapacity(cfg.History.Capacity))
	manager := tracker.NewManager(registry, cat, logger,
		tracker.WithDebounce(cfg.History.SearchDebounce.Std()),
		tracker.WithNamer(cat.DisplayName),
	)

	state := statepkg.NewAppState(cat, cfg.InitialPanels)
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h

	actionCh := make(chan statepkg.Action, 10)
	reducer := statepkg.NewStateReducer(cat, manager, logger)
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	pollInterval := cfg.PollInterval.Std()
	if pollInterval <= 0 {
		pollInterval = config.Default().PollInterval.Std()
	}

	logger.Info("project opened", "root", cat.Root(), "panels", len(state.Panels))

	return &Application{
		screen:       screen,
		state:        state,
		reducer:      reducer,
		renderer:     renderui.NewRenderer(screen),
		input:        inputHandler,
		actionCh:     actionCh,
		logger:       logger,
		pollInterval: pollInterval,
	}, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	close(app.actionCh)
	app.screen.Fini()
	return nil
}

// ResultPath returns the folder chosen with quit-and-change, or "" when the
// user quit normally.
func (app *Application) ResultPath() string {
	return app.resultPath
}
