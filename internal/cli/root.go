// Package cli wires the rhist command line: flags, configuration, logging
// and the browser itself.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Root       string
	LogFile    string
	Verbose    bool
}

// NewRootCommand creates the root command. Without a subcommand it opens the
// browser.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	browse := &BrowseOptions{}

	cmd := &cobra.Command{
		Use:   "rhist",
		Short: "rhist - project browser with undo/redo history",
		Long: `Browse a project's folders in the terminal. Every folder selection and
search is kept in a per-panel history that can be stepped through with the
toolbar buttons, the [ and ] keys, or the history lists.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts, browse, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/rhist/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.Root, "root", "", "project root to browse")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.Flags().BoolVar(&browse.Print, "print", false, "print the chosen folder on exit instead of writing the result file")

	// Add subcommands
	cmd.AddCommand(NewSetupCommand())
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}
