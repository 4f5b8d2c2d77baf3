package cmd

import (
	"fmt"

	"streammusic/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and seed subscription plans",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Open(cfg)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
		if err := db.SeedPlans(cmd.Context(), gdb); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
