package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexiusacademia/gorcc/internal/api"
	"github.com/alexiusacademia/gorcc/internal/store"
	"github.com/spf13/cobra"
)

var (
	serveAddr      string
	serveNoHistory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the column engine over HTTP",
	Long: `Start the JSON HTTP API.

Endpoints:
  GET  /api/health         Service status
  POST /api/column/curve   Interaction diagram and detailing of a column
  POST /api/column/check   Check demands against the interaction diagram
  POST /api/column/axial   Simplified pure axial check
  POST /api/loads          Factored demands for the load combinations
  GET  /api/history        Saved runs, newest first
  GET  /api/history/{id}   One saved run

Settings are read from the environment (or --env file):
  GORCC_ADDR, GORCC_DB, GORCC_LOG_LEVEL, GORCC_RATE, GORCC_BURST

Examples:
  gorcc serve
  gorcc serve --addr :9000 --no-history`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides GORCC_ADDR)")
	serveCmd.Flags().BoolVar(&serveNoHistory, "no-history", false, "Disable the run history database")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	opts := api.Options{
		Rate:   cfg.Rate,
		Burst:  cfg.Burst,
		Logger: slog.Default(),
	}
	if !serveNoHistory {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()
		opts.Store = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.New(opts).ListenAndServe(ctx, addr)
}
