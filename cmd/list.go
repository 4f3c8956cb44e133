package cmd

import (
	"github.com/gopak/gopak-query/internal/format"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Flags(), format.OpList, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			return s.done(s.engine.List(cmd.Context()))
		},
	}
	rootCmd.AddCommand(cmd)
}
