/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fastobjectnotation/fon/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize FON tooling for local development",
	Long: `Initialize the FON tooling configuration.

This command will:
- Create the configuration directory
- Write a config file with codec and pipeline defaults
- Generate a client API key for the REST server

Examples:
	  fon init
	  fon init --data-dir=./data --force`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists. Use --force to reinitialize.\n")
			cmd.Printf("Config location: %s\n", configPath)
			return
		}

		cmd.Printf("Initializing FON tooling...\n")
		cmd.Printf("Config path: %s\n", configPath)

		bootstrapped, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			cmd.Printf("Error writing configuration: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("Initialization completed successfully!\n")
		cmd.Printf("Client API key: %s\n", bootstrapped.Security.ClientAPIKey)
		cmd.Printf("Data directory: %s\n", bootstrapped.DataDir)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  fon serve --config=%s\n", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().Bool("force", false, "Force reinitialization even if a config already exists")
}
