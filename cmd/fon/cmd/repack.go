/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fastobjectnotation/fon/pkg/dump"
)

// repackCmd represents the repack command
var repackCmd = &cobra.Command{
	Use:   "repack <in> <out>",
	Short: "Rewrite a FON file in canonical form",
	Long: `Read a FON file and write it back out, normalizing every line to its
canonical serialization. Blank lines are dropped.

Examples:
	  fon repack messy.fon clean.fon
	  fon repack --ordered big.fon clean.fon`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ordered, _ := cmd.Flags().GetBool("ordered")
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		parallelism := cfg.Pipeline.Parallelism

		d, err := dump.DeserializeFromFile(args[0], parallelism)
		if err != nil {
			cmd.Printf("Error reading %s: %v\n", args[0], err)
			os.Exit(1)
		}

		switch {
		case ordered:
			err = dump.SerializeToFileOrdered(d, args[1], parallelism)
		case chunkSize > 0:
			err = dump.SerializeToFileChunked(d, args[1], chunkSize, parallelism)
		default:
			err = dump.SerializeToFile(d, args[1], parallelism)
		}
		if err != nil {
			cmd.Printf("Error writing %s: %v\n", args[1], err)
			os.Exit(1)
		}

		cmd.Printf("Repacked %d records into %s\n", d.Len(), args[1])
	},
}

func init() {
	rootCmd.AddCommand(repackCmd)

	repackCmd.Flags().Bool("ordered", false, "Use the ordered fan-out write strategy")
	repackCmd.Flags().Int("chunk-size", 0, "Records per write chunk (0 = choose automatically)")
}
