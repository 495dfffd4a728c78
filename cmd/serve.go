package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/tenant-mapper/internal/mapgen"
	"github.com/sells-group/tenant-mapper/internal/report"
)

var (
	servePort int
	serveData string
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered map and a sites API for preview",
	Long: `Serves the output directory over HTTP so the rendered map can be
opened in a browser, plus a small JSON API over the enriched dataset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mux := serveMux(serveData, serveDir)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			<-gCtx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background()) //nolint:errcheck,gosec
			return nil
		})
		g.Go(func() error {
			zap.L().Info("starting server",
				zap.Int("port", port),
				zap.String("dir", serveDir),
				zap.String("data", serveData),
			)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})

		return g.Wait()
	},
}

// serveMux builds the preview routes: health, the sites API, and static
// files from the output directory.
func serveMux(data, dir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/sites", func(w http.ResponseWriter, r *http.Request) {
		rows, err := report.LoadEnriched(data)
		if err != nil {
			zap.L().Error("serve: load enriched data", zap.Error(err))
			http.Error(w, `{"error":"enriched data unavailable"}`, http.StatusInternalServerError)
			return
		}
		layers := mapgen.BuildLayers(rows, mapgen.DefaultStyle())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(layers)
	})

	mux.Handle("GET /", http.FileServer(http.Dir(dir)))

	return mux
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveData, "data", "tenant_locations_enriched.csv", "enriched CSV backing the sites API")
	serveCmd.Flags().StringVar(&serveDir, "dir", ".", "directory to serve (holds the rendered map)")
	rootCmd.AddCommand(serveCmd)
}
