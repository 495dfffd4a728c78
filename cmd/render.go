package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tenant-mapper/internal/mapgen"
	"github.com/sells-group/tenant-mapper/internal/report"
)

var (
	renderOutput string
	renderStyle  string
)

var renderCmd = &cobra.Command{
	Use:   "render <enriched.csv>",
	Short: "Re-render the tenant map from an enriched CSV",
	Long: `Rebuilds the interactive HTML map from a previously geocoded enriched
CSV without touching the provider. Useful after editing the style file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		rows, err := report.LoadEnriched(path)
		if err != nil {
			return err
		}

		style, err := loadStyle(renderStyle)
		if err != nil {
			return err
		}

		out := renderOutput
		if out == "" {
			out = strings.TrimSuffix(path, filepath.Ext(path)) + "_map.html"
		}
		if err := mapgen.WriteHTML(out, rows, style); err != nil {
			return err
		}

		zap.L().Info("render: wrote map",
			zap.String("input", path),
			zap.String("output", out),
			zap.Int("rows", len(rows)),
		)
		fmt.Printf("Map saved as: %s\n", out)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOutput, "output", "", "map HTML path (default <input>_map.html)")
	renderCmd.Flags().StringVar(&renderStyle, "style", "", "YAML map style file")
	rootCmd.AddCommand(renderCmd)
}
