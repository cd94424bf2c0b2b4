// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/internal/convert"
	"github.com/pdiddy/docsight/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Serve starts the JSON HTTP API. Analysis endpoints live under /api/v1
(keywords, sentiment, summary, conceptmap); uploaded documents are analyzed
and stored in the library under /api/v1/documents. GET /healthz reports
cache activity.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().String("library-dir", "", "library directory (default from config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, cfg, err := openAnalyzer(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	library, err := openLibrary(cmd, cfg)
	if err != nil {
		return err
	}
	defer library.Close()

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	return server.New(a, library, convert.PDFConverter{}, cfg.Server, slog.Default()).ListenAndServe(ctx)
}
