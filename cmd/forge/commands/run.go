package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var project func() (string, domain.Profile)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the project and execute the resulting binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, profile := project()
			return c.app.Run(cmd.Context(), root, profile)
		},
	}
	project = projectFlags(cmd)
	return cmd
}
