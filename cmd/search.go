package cmd

import (
	"fmt"

	"github.com/gopak/gopak-query/internal/format"
	"github.com/gopak/gopak-query/internal/logging"
	"github.com/gopak/gopak-query/internal/ui/console"
	"github.com/spf13/cobra"
)

func init() {
	var regex, pick, local, remote bool
	cmd := &cobra.Command{
		Use:   "search <term>...",
		Short: "Search installed and remote packages by name and description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Flags(), format.OpSearch, cmd.OutOrStdout(), regex)
			if err != nil {
				return err
			}
			var picker *console.Picker
			if pick {
				picker = console.NewPicker()
				s.engine.Observe(picker.Observe)
			}
			if err := s.done(s.engine.Search(cmd.Context(), args, sourcesFrom(local, remote))); err != nil {
				return err
			}
			if picker == nil {
				return nil
			}
			chosen, err := picker.Pick("Select packages")
			if err != nil {
				return err
			}
			if len(chosen) == 0 {
				logging.Info("Nothing selected")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), console.RenderTable(chosen))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&regex, "regex", "e", false, "treat terms as regular expressions")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose among the results interactively")
	cmd.Flags().BoolVarP(&local, "local", "Q", false, "search installed packages only")
	cmd.Flags().BoolVarP(&remote, "remote", "A", false, "search the remote repository only")
	rootCmd.AddCommand(cmd)
}
