// Command vaultprefs serves and inspects vault preferences.
//
//	vaultprefs serve --storage sqlite --dsn ./prefs.db --cache memory
//	vaultprefs dump --storage sqlite --dsn ./prefs.db --profile default
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "vaultprefs",
	Short:         "Serve and inspect vault preferences",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addBackendFlags(rootCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dumpCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
