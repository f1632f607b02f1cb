package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/forge/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var project func() (string, domain.Profile)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile everything that changed and relink",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, profile := project()
			return c.app.Build(cmd.Context(), root, profile)
		},
	}
	project = projectFlags(cmd)
	return cmd
}
