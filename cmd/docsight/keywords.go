// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/pkg/types"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords [file]",
	Short: "Extract and define the keywords of a document",
	Long: `Keywords cleans the document text, builds its semantic fingerprint, and
returns up to 20 ranked keywords, each with a definition. With --detect it
returns up to 50 keywords without definitions and makes no remote calls.

The file may be a PDF or plain text. Without a file, text is read from
standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKeywords,
}

func init() {
	keywordsCmd.Flags().Bool("detect", false, "detect keywords only, without definitions")
	keywordsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, args []string) error {
	src, err := readInput(args)
	if err != nil {
		return err
	}
	ctx := context.Background()
	a, _, err := openAnalyzer(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var kws []types.Keyword
	if detect, _ := cmd.Flags().GetBool("detect"); detect {
		kws, err = a.DetectKeywords(src.Text)
	} else {
		kws, err = a.AnalyzeSemanticFingerprintKeywords(ctx, src.Text)
	}
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(kws)
	}
	formatKeywords(kws)
	return nil
}

func formatKeywords(kws []types.Keyword) {
	if len(kws) == 0 {
		fmt.Println("No keywords found.")
		return
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-30s  %s\n", "Rank", "Keyword", "Definition")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for i, kw := range kws {
		def := kw.Definition
		if kw.IsFromExternalSource {
			def += " *"
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-30s  %s\n", i+1, truncate(kw.Word, 30), truncate(def, 64))
	}
	fmt.Fprintf(os.Stdout, "\n%d keywords\n", len(kws))
}
