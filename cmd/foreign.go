package cmd

import (
	"github.com/gopak/gopak-query/internal/format"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "foreign",
		Short: "Show installed packages that come from no sync repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Flags(), format.OpForeign, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			return s.done(s.engine.Foreign(cmd.Context()))
		},
	}
	rootCmd.AddCommand(cmd)
}
