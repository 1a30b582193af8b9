/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fastobjectnotation/fon/pkg/dump"
	"github.com/fastobjectnotation/fon/pkg/fon"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Summarize the records in a FON file",
	Long: `Read a FON file and print record, field and type statistics.

Examples:
	  fon stats data.fon
	  fon stats --parallelism=4 data.fon`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := dump.DeserializeFromFile(args[0], cfg.Pipeline.Parallelism)
		if err != nil {
			cmd.Printf("Error reading file: %v\n", err)
			os.Exit(1)
		}

		fields := 0
		byTag := make(map[string]int)
		minIndex, maxIndex := -1, -1
		d.Each(func(index int, rec *fon.Record) bool {
			if minIndex < 0 {
				minIndex = index
			}
			maxIndex = index
			fields += rec.Len()
			for i := 0; i < rec.Len(); i++ {
				_, v := rec.At(i)
				tag := string(byte(v.Kind()))
				if v.IsArray() {
					tag += "[]"
				}
				byTag[tag]++
			}
			return true
		})

		cmd.Printf("Records: %d\n", d.Len())
		cmd.Printf("Fields:  %d\n", fields)
		if d.Len() > 0 {
			cmd.Printf("Indices: %d..%d\n", minIndex, maxIndex)
		}

		tags := make([]string, 0, len(byTag))
		for tag := range byTag {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			cmd.Printf("  %-4s %d\n", tag, byTag[tag])
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
