package cli

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	apppkg "github.com/kk-code-lab/rhist/internal/app"
	"github.com/kk-code-lab/rhist/internal/shellsetup"
)

// BrowseOptions holds flags of the browser itself.
type BrowseOptions struct {
	Print bool
}

func runBrowse(opts *RootOptions, browse *BrowseOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	// UTF-8 fallback keeps non-ASCII folder names readable on odd terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()

	path := app.ResultPath()
	if path == "" {
		return nil
	}
	logger.Info("quit and change", "path", path)
	if browse.Print {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	}

	// Owner-only: the wrapper refuses files it does not own.
	resultFile := shellsetup.ResultFileName(os.Getpid())
	if err := os.WriteFile(resultFile, []byte(path), 0o600); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not write result file: %v\n", err)
	}
	return nil
}
