// Package cmd wires the crowdfund binary's subcommands.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "crowdfund",
	Short:   "Crowdfunding pledge ledger service",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; real deployments set the environment directly.
		_ = godotenv.Load()
		return nil
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}
