package main

import (
	"os"

	"github.com/spf13/cobra"

	"tally/internal/interfaces/cli/migrate"
	"tally/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally - shared-household tab and account service",
		Long:  `Tally tracks shared-household accounts, product tabs, and device sessions, and exposes them over an HTTP API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
