package cmd

import (
	"github.com/gopak/gopak-query/internal/format"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "upgrades",
		Short: "Show foreign packages with a newer remote version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Flags(), format.OpUpgrades, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			return s.done(s.engine.Upgrades(cmd.Context()))
		},
	}
	rootCmd.AddCommand(cmd)
}
