package cmd

import (
	"fmt"

	"github.com/gopak/gopak-query/internal/config"
	"github.com/gopak/gopak-query/internal/localdb"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the merged configuration and the installed-package database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		out := mergeFlags(cfg.Output, cmd.Flags())
		if err := config.Validate(config.Config{Output: out}); err != nil {
			return err
		}
		merged := cfg
		merged.Output = out
		if err := config.ValidateAgainstSchema(merged); err != nil {
			return err
		}
		db, err := localdb.Open(dbPath(cfg, cmd.Flags()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration is valid (%s: %d packages)\n", db.Path(), len(db.Packages()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
