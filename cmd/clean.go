package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tenant-mapper/internal/sheet"
)

// sensitiveColumns are dropped from every cleaned export. Missing columns
// are ignored so partially redacted files clean without complaint.
var sensitiveColumns = []string{"Ownership", "Contact", "Phone", "Email", "Notes"}

var cleanCmd = &cobra.Command{
	Use:   "clean <file>...",
	Short: "Strip sensitive columns from spreadsheet exports",
	Long: `Reads each CSV or XLSX export, drops the Ownership, Contact, Phone,
Email, and Notes columns, and writes the result next to the input as
<name>_cleaned.csv. Missing input files are skipped with a warning.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			if _, err := os.Stat(path); err != nil {
				zap.L().Warn("clean: input not found, skipping", zap.String("path", path))
				continue
			}

			table, err := sheet.Load(path)
			if err != nil {
				return err
			}

			dropped := table.DropColumns(sensitiveColumns...)

			out := cleanedPath(path)
			if err := sheet.WriteCSV(out, table); err != nil {
				return err
			}

			zap.L().Info("clean: wrote cleaned file",
				zap.String("input", path),
				zap.String("output", out),
				zap.Int("columns_dropped", dropped),
				zap.Int("rows", len(table.Rows)),
			)
			fmt.Printf("Cleaned file saved as: %s\n", out)
		}
		return nil
	},
}

// cleanedPath maps input.csv or input.xlsx to input_cleaned.csv.
func cleanedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_cleaned.csv"
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
