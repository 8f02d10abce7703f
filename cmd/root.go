package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "netrecon",
	Short: "Reconcile logical network configuration with physical NIC inventory",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to netrecon.yml")
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(reconcileCmd)
	reconcileInit()
	rootCmd.AddCommand(inventoryCmd)
	inventoryInit()
	rootCmd.AddCommand(teamsCmd)
	teamsInit()
	rootCmd.AddCommand(serveCmd)
	serveInit()
	rootCmd.AddCommand(configCmd)
	configInit()
}

// Execute primary function for cobra
func Execute() {
	_ = rootCmd.Execute()
}
