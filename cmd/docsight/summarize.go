// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Compose a structured summary of a document",
	Long: `Summarize reports a document's main topic, key findings, methodology,
important concepts, audience, practical applications, type, reading time,
and complexity. Pass --keywords to steer the concepts; otherwise they are
extracted from the text. Results are cached; --force recomputes them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringSlice("keywords", nil, "keywords to use as important concepts")
	summarizeCmd.Flags().Bool("force", false, "ignore cached results")
	summarizeCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
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
	words, _ := cmd.Flags().GetStringSlice("keywords")
	for _, w := range words {
		kws = append(kws, types.Keyword{Word: w})
	}
	force, _ := cmd.Flags().GetBool("force")

	sum, err := a.SummarizeDocument(ctx, src.Text, kws, force)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(sum)
	}
	formatSummary(sum)
	return nil
}

func formatSummary(s types.DocumentSummary) {
	fmt.Printf("Topic:        %s\n", s.MainTopic)
	fmt.Printf("Type:         %s (%s, %s)\n", s.DocumentType, s.Complexity, s.ReadingTime)
	fmt.Printf("Audience:     %s\n", s.TargetAudience)
	fmt.Printf("Concepts:     %s\n", strings.Join(s.ImportantConcepts, ", "))
	fmt.Printf("Methodology:  %s\n", s.Methodology)
	if len(s.KeyFindings) > 0 {
		fmt.Println("Key findings:")
		for _, f := range s.KeyFindings {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(s.PracticalApplications) > 0 {
		fmt.Printf("Applications: %s\n", strings.Join(s.PracticalApplications, "; "))
	}
	fmt.Printf("\n%s\n", s.Summary)
}
