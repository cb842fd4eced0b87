package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/matsen/bibstat/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: listen_addr from config, or :8080)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP",
	Long: `Load the dataset once and serve it through a read-only JSON API.

Endpoints:
  GET /api/reports                      list reports
  GET /api/reports/{name}               run a report (stat, year, from, to, type, author)
  GET /api/authors/{name}               author profile
  GET /api/authors/{name}/coauthors     collaborators
  GET /api/search?q=                    ranked author search
  GET /api/network                      co-authorship network (Cytoscape.js JSON)
  GET /network                          interactive network page

Requests are rate limited across all clients by rate_limit and rate_burst.

Examples:
  bibstat serve --data dblp.xml --staff staff.txt
  bibstat serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	staff, err := loadStaff(cfg.StaffFile)
	if err != nil {
		return err
	}
	store := mustLoadStore()

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv := web.NewServer(store, staff, web.Options{
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Start(addr) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
