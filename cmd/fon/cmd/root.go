/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fastobjectnotation/fon/pkg/config"
)

// cfg is the active configuration, resolved once before any subcommand runs.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fon",
	Short: "FON - Fast Object Notation tooling",
	Long: `FON is a line-oriented serialization format for typed key-value
records. This tool reads, writes, inspects and serves FON files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}

		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}
		if parallelism, _ := cmd.Flags().GetInt("parallelism"); parallelism > 0 {
			cfg.Pipeline.Parallelism = parallelism
		}

		cfg.Apply()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file path (default is ~/.config/fon/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the record archive")
	rootCmd.PersistentFlags().IntP("parallelism", "j", 0, "Worker count for file operations (0 = one per hardware thread)")
}
