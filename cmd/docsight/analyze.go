// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/internal/acquire"
	"github.com/pdiddy/docsight/internal/convert"
	"github.com/pdiddy/docsight/internal/store"
	"github.com/pdiddy/docsight/pkg/types"
)

const defaultFetchTimeout = 60 * time.Second

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files or identifiers...]",
	Short: "Run the full analysis on one or more documents",
	Long: `Analyze extracts the text of each file and runs every stage: keywords
with definitions, sentiment, summary, and concept map. With --save the
results are stored in the library; otherwise they are printed as JSON.

Arguments that are not local files may be arXiv IDs, DOIs, or PDF URLs;
they are downloaded into <library-dir>/downloads first. A PDF whose text
cannot be extracted is analyzed from a placeholder rather than skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("save", false, "store results in the library")
	analyzeCmd.Flags().String("library-dir", "", "library directory (default from config)")
	analyzeCmd.Flags().Duration("timeout", defaultFetchTimeout, "download timeout for remote documents")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, cfg, err := openAnalyzer(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	save, _ := cmd.Flags().GetBool("save")
	var library *store.Store
	if save {
		library, err = openLibrary(cmd, cfg)
		if err != nil {
			return err
		}
		defer library.Close()
	}

	paths, titles, fetchFailed := resolveInputs(ctx, cmd, cfg, args)
	sources, result := convert.ReadBatch(convert.PDFConverter{}, paths, os.Stderr)
	result.Failed += fetchFailed
	for i := range sources {
		if title, ok := titles[sources[i].Document.Source]; ok && title != "" {
			sources[i].Document.Title = title
		}
	}

	var analyses []types.DocumentAnalysis
	for _, src := range sources {
		analysis, err := a.Analyze(ctx, src.Document, src.Text)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", src.Document.Title, err)
			result.Failed++
			continue
		}
		if library != nil {
			if err := library.Save(ctx, analysis); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "saved:   %s  %s  (%d keywords)\n",
				analysis.Document.ID, analysis.Document.Title, len(analysis.Keywords))
			continue
		}
		analyses = append(analyses, analysis)
	}

	if library == nil && len(analyses) > 0 {
		if err := printJSON(analyses); err != nil {
			return err
		}
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d document(s) failed analysis", result.Failed, result.Total())
	}
	return nil
}

// resolveInputs downloads arguments that name remote documents and returns
// the local paths to load, with titles known from remote metadata keyed by
// path.
func resolveInputs(ctx context.Context, cmd *cobra.Command, cfg types.Config, args []string) ([]string, map[string]string, int) {
	var paths, remote []string
	for _, arg := range args {
		if _, err := os.Stat(arg); err != nil {
			if _, ok := acquire.Parse(arg); ok {
				remote = append(remote, arg)
				continue
			}
		}
		paths = append(paths, arg)
	}
	if len(remote) == 0 {
		return paths, nil, 0
	}

	dir := cfg.Library.Dir
	if d, _ := cmd.Flags().GetString("library-dir"); d != "" {
		dir = d
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	f := acquire.NewFetcher(filepath.Join(dir, "downloads"), timeout)
	f.MaxRetries = cfg.AI.MaxRetries

	downloads, failed := f.FetchAll(ctx, remote, os.Stderr)
	titles := make(map[string]string, len(downloads))
	for _, d := range downloads {
		paths = append(paths, d.Path)
		titles[d.Path] = d.Title
	}
	return paths, titles, failed
}
