package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CreativeUnicorns/vaultprefs"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective preferences of a profile as JSON",
	Long: `Print the effective preferences of a profile as JSON.

Examples:
  vaultprefs dump --storage sqlite --dsn ./prefs.db
  vaultprefs dump --storage postgres --dsn "$DATABASE_URL" --profile work --category backups`,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, _ := cmd.Flags().GetString("profile")
		category, _ := cmd.Flags().GetString("category")

		b, err := openBackends(cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		opts := append(b.options, vaultprefs.WithProfile(profile))
		p, err := vaultprefs.New(opts...)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(p.ByCategory(category), "", "  ")
		if err != nil {
			return fmt.Errorf("encoding snapshot: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	dumpCmd.Flags().String("profile", vaultprefs.DefaultProfile, "profile to dump")
	dumpCmd.Flags().String("category", "", "only dump settings of this category")
}
