// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/canvas-outline/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion history",
	Long: `History shows which canvas files have been converted, when, and what the
resulting outlines contain. convert uses the same database to skip canvases
that have not changed.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions, most recent first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(recs) == 0 {
		fmt.Fprintln(out, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-20s  %-40s  %5s  %5s  %8s  %7s\n",
		"Converted", "Source", "Nodes", "Roots", "Headings", "Bullets")
	fmt.Fprintln(out, strings.Repeat("-", 96))
	for _, r := range recs {
		src := r.SourcePath
		if len(src) > 40 {
			src = "..." + src[len(src)-37:]
		}
		fmt.Fprintf(out, "%-20s  %-40s  %5d  %5d  %8d  %7d\n",
			r.ConvertedAt.Local().Format("2006-01-02 15:04:05"), src,
			r.Nodes, r.Roots, r.Headings, r.ListItems)
	}
	fmt.Fprintf(out, "\n%d conversions\n", len(recs))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history as YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
	case "json":
		return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func openHistory() (*history.Store, error) {
	path := viper.GetString("history.db_path")
	if path == "" {
		return nil, fmt.Errorf("history is disabled: set --history-db")
	}
	return history.Open(path)
}

func init() {
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
