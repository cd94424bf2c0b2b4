// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docsight/internal/store"
	"github.com/pdiddy/docsight/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse, search, and export stored analyses",
	Long: `Library manages the local SQLite store of document analyses written by
"analyze --save" and the HTTP API. Use subcommands to list, show, search,
export, or delete entries.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored documents, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := libraryFromFlags(cmd)
		if err != nil {
			return err
		}
		defer library.Close()

		docs, err := library.List(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(docs)
		}
		if len(docs) == 0 {
			fmt.Println("Library is empty.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-12s  %-40s  %-5s  %s\n", "ID", "Title", "Pages", "Added")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
		for _, d := range docs {
			fmt.Fprintf(os.Stdout, "%-12s  %-40s  %-5d  %s\n",
				d.ID, truncate(d.Title, 40), d.PageCount, d.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(os.Stdout, "\n%d documents\n", len(docs))
		return nil
	},
}

// --- show subcommand ---

var libraryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the stored analysis of one document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := libraryFromFlags(cmd)
		if err != nil {
			return err
		}
		defer library.Close()

		a, err := library.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(a)
		}

		fmt.Printf("%s  %s\n\n", a.Document.ID, a.Document.Title)
		formatKeywords(a.Keywords)
		if a.Sentiment != nil {
			fmt.Println()
			formatSentiment(*a.Sentiment)
		}
		if a.Summary != nil {
			fmt.Println()
			formatSummary(*a.Summary)
		}
		return nil
	},
}

// --- search subcommand ---

var librarySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored keywords and definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := libraryFromFlags(cmd)
		if err != nil {
			return err
		}
		defer library.Close()

		documentID, _ := cmd.Flags().GetString("document")
		limit, _ := cmd.Flags().GetInt("limit")
		opts := store.QueryOptions{
			Query:      strings.Join(args, " "),
			DocumentID: documentID,
			MaxResults: limit,
		}
		if opts.IsEmpty() {
			return fmt.Errorf("query or filter required: provide a search query or --document")
		}

		results, err := library.Search(context.Background(), opts)
		if err != nil {
			return err
		}
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(results)
		}
		if len(results) == 0 {
			fmt.Println("No results found.")
			return nil
		}

		fmt.Fprintf(os.Stdout, "%-4s  %-24s  %-50s  %s\n", "Rank", "Keyword", "Definition", "Document")
		fmt.Fprintln(os.Stdout, strings.Repeat("-", 110))
		for i, r := range results {
			fmt.Fprintf(os.Stdout, "%-4d  %-24s  %-50s  %s\n",
				i+1, truncate(r.Word, 24), truncate(r.Definition, 50), truncate(r.DocumentTitle, 24))
		}
		fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
		return nil
	},
}

// --- export subcommand ---

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the library to YAML or JSON",
	Long: `Export writes every stored analysis to <library-dir>/export.yaml or
export.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := libraryFromFlags(cmd)
		if err != nil {
			return err
		}
		defer library.Close()

		format, _ := cmd.Flags().GetString("format")
		path, err := library.WriteExport(context.Background(), format)
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	},
}

// --- delete subcommand ---

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a document and its analysis from the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		library, err := libraryFromFlags(cmd)
		if err != nil {
			return err
		}
		defer library.Close()

		if err := library.Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

// --- shared helpers ---

func libraryFromFlags(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openLibrary(cmd, cfg)
}

// openLibrary opens the library, preferring --library-dir and
// --max-results over the configuration.
func openLibrary(cmd *cobra.Command, cfg types.Config) (*store.Store, error) {
	libCfg := cfg.Library
	if dir, _ := cmd.Flags().GetString("library-dir"); dir != "" {
		libCfg.Dir = dir
	}
	if cmd.Flags().Lookup("max-results") != nil {
		if n, _ := cmd.Flags().GetInt("max-results"); n > 0 {
			libCfg.MaxResults = n
		}
	}
	return store.Open(libCfg)
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	libraryCmd.PersistentFlags().String("library-dir", "", "library directory (default from config)")
	libraryCmd.PersistentFlags().Int("max-results", 0, "default maximum number of search results")

	libraryListCmd.Flags().Bool("json", false, "output results as JSON")
	libraryShowCmd.Flags().Bool("json", false, "output results as JSON")

	librarySearchCmd.Flags().String("document", "", "restrict results to a document ID")
	librarySearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	librarySearchCmd.Flags().Bool("json", false, "output results as JSON")

	libraryExportCmd.Flags().String("format", store.FormatYAML, "export format: yaml or json")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)

	rootCmd.AddCommand(libraryCmd)
}
