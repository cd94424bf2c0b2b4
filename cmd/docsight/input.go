// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pdiddy/docsight/internal/analyze"
	"github.com/pdiddy/docsight/internal/convert"
	"github.com/pdiddy/docsight/pkg/types"
)

// readInput loads the document named by args[0], or standard input when
// no file or "-" is given.
func readInput(args []string) (convert.Source, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return convert.Source{}, fmt.Errorf("reading stdin: %w", err)
		}
		return convert.Source{
			Document: types.Document{Title: "stdin", Source: "-"},
			Text:     string(data),
		}, nil
	}
	return convert.ReadText(convert.PDFConverter{}, args[0])
}

// openAnalyzer builds an Analyzer from the merged configuration.
func openAnalyzer(ctx context.Context) (*analyze.Analyzer, types.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cfg, err
	}
	a, err := analyze.Open(ctx, cfg, slog.Default())
	if err != nil {
		return nil, cfg, err
	}
	return a, cfg, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
