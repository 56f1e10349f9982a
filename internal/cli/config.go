package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/rhist/internal/config"
)

// NewConfigCommand prints the effective configuration.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		asJSON   bool
		showPath bool
	)

	cmd := &cobra.Command{
		Use:          "config",
		Short:        "Show the effective configuration",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if showPath {
				_, err := fmt.Fprintln(out, config.DefaultPath())
				return err
			}

			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	cmd.Flags().BoolVar(&showPath, "path", false, "print the default config file path")
	return cmd
}
