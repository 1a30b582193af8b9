/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the record archive to a FON file",
	Long: `Write every record in the archive to a FON file in ascending index
order. Index holes collapse: the file carries records on consecutive lines.

Examples:
	  fon export backup.fon
	  fon export --data-dir=./data backup.fon`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a, err := openArchive()
		if err != nil {
			cmd.Printf("Error opening archive: %v\n", err)
			os.Exit(1)
		}
		defer a.Close()

		n, err := a.ExportFile(args[0], cfg.Pipeline.Parallelism)
		if err != nil {
			cmd.Printf("Error exporting records: %v\n", err)
			os.Exit(1)
		}

		cmd.Printf("Exported %d records to %s\n", n, args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
