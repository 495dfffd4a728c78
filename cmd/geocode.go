package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tenant-mapper/internal/geocache"
	"github.com/sells-group/tenant-mapper/internal/mapgen"
	"github.com/sells-group/tenant-mapper/internal/report"
	"github.com/sells-group/tenant-mapper/internal/resilience"
	"github.com/sells-group/tenant-mapper/internal/sheet"
	"github.com/sells-group/tenant-mapper/internal/tenant"
	"github.com/sells-group/tenant-mapper/pkg/geocode"
)

var (
	geocodeOutput   string
	geocodeFailures string
	geocodeMap      string
	geocodeShp      string
	geocodeStyle    string
	geocodeNoMap    bool
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <file>",
	Short: "Geocode a cleaned export and render the tenant map",
	Long: `Reads a cleaned, deduped CSV or XLSX export, geocodes every location
against Nominatim, and writes the coordinate-enriched dataset, the
failures-only dataset, and an interactive HTML map.

A prior run's enriched output seeds the cache, so rerunning after a partial
failure only queries the provider for still-unresolved addresses.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeocode(cmd.Context(), geocodeOptions{
			Input:    args[0],
			Output:   geocodeOutput,
			Failures: geocodeFailures,
			MapPath:  geocodeMap,
			ShpPath:  geocodeShp,
			Style:    geocodeStyle,
			NoMap:    geocodeNoMap,
		})
	},
}

type geocodeOptions struct {
	Input    string
	Output   string
	Failures string
	MapPath  string
	ShpPath  string
	Style    string
	NoMap    bool
}

// defaults fills unset output paths from the input stem.
func (o *geocodeOptions) defaults() {
	stem := strings.TrimSuffix(o.Input, filepath.Ext(o.Input))
	if o.Output == "" {
		o.Output = stem + "_enriched.csv"
	}
	if o.Failures == "" {
		o.Failures = stem + "_failed.csv"
	}
	if o.MapPath == "" {
		o.MapPath = stem + "_map.html"
	}
}

func runGeocode(ctx context.Context, opts geocodeOptions) error {
	opts.defaults()

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	table, err := sheet.Load(opts.Input)
	if err != nil {
		return err
	}
	records, err := tenant.FromTable(table)
	if err != nil {
		return err
	}
	log.Info("geocode: loaded records",
		zap.String("input", opts.Input),
		zap.Int("records", len(records)),
	)

	cache := geocode.NewCache()
	seedCache(cache, opts.Output, log)

	store, err := openCacheStore(ctx, cache, log)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close() //nolint:errcheck
	}

	resolver := newResolver(cache, store, len(records))

	queries := make([]string, len(records))
	for i, r := range records {
		queries[i] = r.FullAddress
	}
	results := resolver.ResolveAll(ctx, queries)

	rows := make([]tenant.Enriched, len(records))
	for i, r := range records {
		rows[i] = tenant.Enriched{Record: r, Result: results[i]}
	}
	resolved, failed := tenant.Partition(rows)

	if err := report.WriteEnriched(opts.Output, resolved); err != nil {
		return err
	}
	if err := report.WriteEnriched(opts.Failures, failed); err != nil {
		return err
	}

	if !opts.NoMap && len(resolved) > 0 {
		style, err := loadStyle(opts.Style)
		if err != nil {
			return err
		}
		if err := mapgen.WriteHTML(opts.MapPath, resolved, style); err != nil {
			return err
		}
		fmt.Printf("Map saved as: %s\n", opts.MapPath)
	}

	if opts.ShpPath != "" {
		if err := report.WriteShapefile(opts.ShpPath, resolved); err != nil {
			return err
		}
		fmt.Printf("Shapefile saved as: %s\n", opts.ShpPath)
	}

	log.Info("geocode: complete",
		zap.Int("total", len(rows)),
		zap.Int("resolved", len(resolved)),
		zap.Int("failed", len(failed)),
	)
	fmt.Printf("Kept %d/%d locations; %d failed.\n", len(resolved), len(rows), len(failed))
	fmt.Printf("Enriched file saved as: %s\n", opts.Output)
	if len(failed) > 0 {
		fmt.Printf("Failures saved as: %s\n", opts.Failures)
	}

	return nil
}

// seedCache loads a prior run's enriched output into the in-memory cache.
// A missing or unreadable file means a cold start, not an error.
func seedCache(cache *geocode.Cache, output string, log *zap.Logger) {
	if _, err := os.Stat(output); err != nil {
		return
	}
	seed, err := report.LoadCacheSeed(output)
	if err != nil {
		log.Warn("geocode: prior output unusable as cache seed",
			zap.String("path", output),
			zap.Error(err),
		)
		return
	}
	cache.Seed(seed)
	log.Info("geocode: seeded cache from prior output",
		zap.String("path", output),
		zap.Int("entries", len(seed)),
	)
}

// openCacheStore opens the configured persistent cache backend, loads its
// contents into the in-memory cache, and returns it for write-through
// saves. Driver "none" returns nil.
func openCacheStore(ctx context.Context, cache *geocode.Cache, log *zap.Logger) (geocache.Store, error) {
	var (
		store geocache.Store
		err   error
	)
	switch cfg.Cache.Driver {
	case "none", "":
		return nil, nil
	case "sqlite":
		store, err = geocache.NewSQLite(cfg.Cache.Path)
	case "postgres":
		store, err = geocache.NewPostgres(ctx, cfg.Cache.DatabaseURL)
	default:
		return nil, eris.Errorf("geocode: unknown cache driver %q", cfg.Cache.Driver)
	}
	if err != nil {
		return nil, err
	}

	entries, err := store.Load(ctx)
	if err != nil {
		store.Close() //nolint:errcheck,gosec
		return nil, err
	}
	cache.Seed(entries)
	log.Info("geocode: loaded persistent cache",
		zap.String("driver", cfg.Cache.Driver),
		zap.Int("entries", len(entries)),
	)
	return store, nil
}

// newResolver wires the Nominatim client, retry policy, and progress
// reporting from config.
func newResolver(cache *geocode.Cache, store geocache.Store, total int) *geocode.Resolver {
	client := geocode.NewClient(
		geocode.WithBaseURL(cfg.Geocoder.BaseURL),
		geocode.WithUserAgent(cfg.Geocoder.UserAgent),
		geocode.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Geocoder.TimeoutSecs) * time.Second}),
		geocode.WithMinDelay(time.Duration(cfg.Geocoder.MinDelayMs)*time.Millisecond),
	)

	retry := resilience.RetryConfig{
		MaxAttempts: cfg.Geocoder.MaxAttempts,
		Backoff:     time.Duration(cfg.Geocoder.BackoffSecs) * time.Second,
		ShouldRetry: resilience.IsTransient,
		OnRetry:     resilience.RetryLogger("nominatim"),
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("geocoding"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	opts := []geocode.ResolverOption{
		geocode.WithRetry(retry),
		geocode.WithProgress(func(index, total int, query string, r geocode.Result) {
			_ = bar.Add(1)
			if index == 1 || index == total || index%10 == 0 {
				status := "ok"
				if !r.Matched {
					status = "failed"
				}
				fmt.Fprintf(os.Stderr, "[%d/%d] %s: %s\n", index, total, status, query)
			}
		}),
	}
	if store != nil {
		opts = append(opts, geocode.WithStore(store))
	}

	return geocode.NewResolver(client, cache, opts...)
}

// loadStyle resolves the map style: an explicit flag wins, then the
// configured style file, then defaults.
func loadStyle(path string) (mapgen.Style, error) {
	if path == "" {
		path = cfg.Map.StylePath
	}
	if path == "" {
		style := mapgen.DefaultStyle()
		if cfg.Map.Zoom > 0 {
			style.Zoom = cfg.Map.Zoom
		}
		return style, nil
	}
	return mapgen.LoadStyle(path)
}

func init() {
	geocodeCmd.Flags().StringVar(&geocodeOutput, "output", "", "enriched CSV path (default <input>_enriched.csv)")
	geocodeCmd.Flags().StringVar(&geocodeFailures, "failures", "", "failures CSV path (default <input>_failed.csv)")
	geocodeCmd.Flags().StringVar(&geocodeMap, "map", "", "map HTML path (default <input>_map.html)")
	geocodeCmd.Flags().StringVar(&geocodeShp, "shp", "", "also export resolved sites as a shapefile")
	geocodeCmd.Flags().StringVar(&geocodeStyle, "style", "", "YAML map style file")
	geocodeCmd.Flags().BoolVar(&geocodeNoMap, "no-map", false, "skip map rendering")
	rootCmd.AddCommand(geocodeCmd)
}
