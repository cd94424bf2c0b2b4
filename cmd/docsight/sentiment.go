// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/pkg/types"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [file]",
	Short: "Score the sentiment of a document",
	Long: `Sentiment reports the overall sentiment of a document, its score in
[-1, 1], a confidence percentage, the words that drove the score, and a
per-section breakdown. Results are cached for the configured TTL; --force
recomputes and refreshes the cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSentiment,
}

func init() {
	sentimentCmd.Flags().Bool("force", false, "ignore cached results")
	sentimentCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(sentimentCmd)
}

func runSentiment(cmd *cobra.Command, args []string) error {
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

	force, _ := cmd.Flags().GetBool("force")
	res, err := a.AnalyzeSentiment(ctx, src.Text, force)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(res)
	}
	formatSentiment(res)
	return nil
}

func formatSentiment(r types.SentimentResult) {
	fmt.Printf("Sentiment:   %s (%.2f)\n", r.OverallSentiment, r.SentimentScore)
	fmt.Printf("Confidence:  %.0f%%\n", r.Confidence)
	if r.EmotionalTone != "" {
		fmt.Printf("Tone:        %s\n", r.EmotionalTone)
	}
	if r.AudiencePerception != "" {
		fmt.Printf("Audience:    %s\n", r.AudiencePerception)
	}
	if len(r.KeyIndicators) > 0 {
		fmt.Printf("Indicators:  %s\n", strings.Join(r.KeyIndicators, ", "))
	}
	if r.Summary != "" {
		fmt.Printf("Summary:     %s\n", r.Summary)
	}
	for _, s := range r.SectionBreakdown {
		fmt.Printf("  %-12s %-9s %.2f\n", s.Section, s.Sentiment, s.Score)
	}
}
