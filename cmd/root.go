package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "trading-journal",
	Short: "Setup evaluation and counterfactual backtesting for a futures trading journal",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
