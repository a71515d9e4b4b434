// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/canopy-engine/internal/canopy"
)

var canopiesCmd = &cobra.Command{
	Use:   "canopies",
	Short: "List the canopies present in the corpus",
	Long: `Canopies lists the distinct blocking-key values found on any signature,
paginated for interactive browsing. With --counted each canopy on the page
is annotated with its paper and signature counts and the author-name
variants behind it, sorted by descending paper count.`,
	RunE: runCanopies,
}

func runCanopies(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	counted, _ := cmd.Flags().GetBool("counted")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	all, err := canopy.List(ctx, st)
	if err != nil {
		return err
	}

	slice, pageCount := canopy.Page(all, page, pageSize)

	if !counted {
		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(slice)
		}
		for _, c := range slice {
			fmt.Println(c)
		}
		fmt.Printf("\npage %d of %d (%d canopies total)\n", page+1, pageCount, len(all))
		return nil
	}

	summaries, err := canopy.Summarize(ctx, st, slice)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-6s  %-10s  %s\n", "Canopy", "Papers", "Signatures", "Name variants")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 80))
	for _, s := range summaries {
		variants := strings.Join(s.NameVariants, ", ")
		if len(variants) > 40 {
			variants = variants[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-6d  %-10d  %s\n", s.Canopy, s.Papers, s.Signatures, variants)
	}
	fmt.Printf("\npage %d of %d (%d canopies total)\n", page+1, pageCount, len(all))
	return nil
}

func init() {
	canopiesCmd.Flags().Int("page", 0, "zero-based page number")
	canopiesCmd.Flags().Int("page-size", 80, "canopies per page")
	canopiesCmd.Flags().Bool("counted", false, "annotate canopies with counts and name variants")
	canopiesCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(canopiesCmd)
}
