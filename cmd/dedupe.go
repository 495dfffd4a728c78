package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tenant-mapper/internal/sheet"
	"github.com/sells-group/tenant-mapper/internal/tenant"
)

var dedupeOutput string

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <file>",
	Short: "Remove duplicate locations by normalized address and state",
	Long: `Reads a cleaned CSV or XLSX export and removes rows whose normalized
Address plus State already appeared earlier in the file. The first
occurrence wins. The input is overwritten in place unless --output is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		table, err := sheet.Load(path)
		if err != nil {
			return err
		}
		before := len(table.Rows)

		removed, err := tenant.DedupeTable(table)
		if err != nil {
			return err
		}

		out := dedupeOutput
		if out == "" {
			out = path
		}
		if err := sheet.WriteCSV(out, table); err != nil {
			return err
		}

		zap.L().Info("dedupe: complete",
			zap.String("input", path),
			zap.String("output", out),
			zap.Int("before", before),
			zap.Int("after", len(table.Rows)),
			zap.Int("removed", removed),
		)
		fmt.Printf("Rows before: %d\nRows after: %d\nDuplicates removed: %d\n", before, len(table.Rows), removed)

		return nil
	},
}

func init() {
	dedupeCmd.Flags().StringVar(&dedupeOutput, "output", "", "write deduped CSV here instead of overwriting the input")
	rootCmd.AddCommand(dedupeCmd)
}
