package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtext/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Commands find the CLI logger in their context through loggerFromContext.
// Settings flags that are not given on the command line are taken from the
// config file (--config, or ~/.config/radialtext/config.toml when present).
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "radialtext arranges lines of text around a circle",
		Long:         `radialtext arranges lines of text radially around a center point, previews the result as SVG and exports it as PNG, JPEG or WEBP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/radialtext/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}
