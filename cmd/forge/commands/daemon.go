package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newDaemonCmd() *cobra.Command {
	var project func() (string, domain.Profile)
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Start the interactive build daemon",
		Long: `Start an interactive session that keeps the dependency graph and build
cache in memory between builds. Commands: build, run, help, close (alias exit).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, profile := project()
			return c.app.Daemon(cmd.Context(), root, profile)
		},
	}
	project = projectFlags(cmd)
	return cmd
}
