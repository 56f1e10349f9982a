package cli

import (
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/rhist/internal/shellsetup"
)

var parentShellDetector = shellsetup.DetectParentShellName

// NewSetupCommand prints the shell integration snippet.
func NewSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [shell]",
		Short: "Print shell integration for quit-and-change",
		Long: `Print a shell function named rhist. Add it to your shell profile so that
quitting with x changes the shell's working directory to the selected folder.

Supported shells: bash, zsh, sh, ksh, fish, pwsh, tcsh, csh, cmd. The shell is
detected from $SHELL or the parent process when omitted.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) == 1 {
				shell = args[0]
			}
			return shellsetup.Write(cmd.OutOrStdout(), shell, shellsetup.Config{DetectParent: parentShellDetector})
		},
	}
}
