/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fastobjectnotation/fon/pkg/archive"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a FON file into the record archive",
	Long: `Read a FON file and store every record in the archive under its
line index.

Examples:
	  fon import data.fon
	  fon import --data-dir=./data data.fon`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openArchive()
		if err != nil {
			cmd.Printf("Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		n, err := a.ImportFile(args[0], cfg.Pipeline.Parallelism)
		if err != nil {
			cmd.Printf("Error importing records: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("Imported %d records from %s\n", n, args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// openArchive opens the pebble archive under the configured data directory.
func openArchive() (*archive.Archive, error) {
	path := filepath.Join(cfg.DataDir, "archive")
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, err
	}
	return archive.Open(path)
}
