package cmd

import (
	"github.com/gopak/gopak-query/internal/format"
	"github.com/spf13/cobra"
)

func init() {
	var local, remote bool
	cmd := &cobra.Command{
		Use:   "query <target>...",
		Short: "Look packages up by name, optionally with repo/ and a version constraint",
		Example: `  gpq query yay
  gpq query 'yay>=12' core/bash`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Flags(), format.OpQuery, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			return s.done(s.engine.Query(cmd.Context(), args, sourcesFrom(local, remote)))
		},
	}
	cmd.Flags().BoolVarP(&local, "local", "Q", false, "look in installed packages only")
	cmd.Flags().BoolVarP(&remote, "remote", "A", false, "look in the remote repository only")
	rootCmd.AddCommand(cmd)
}
