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
	"github.com/pdiddy/canopy-engine/internal/mention"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

var canopyCmd = &cobra.Command{
	Use:   "canopy <name>",
	Short: "Show a canopy's clusters with full per-paper author lists",
	Long: `Canopy loads one canopy, groups its signatures by their committed
cluster assignments, and expands the view with every signature sharing a
paper with the canopy — including signatures from other canopies — so
each paper shows its complete author list. Signatures no run has assigned
yet group under ` + types.Unclustered + `.`,
	Args: cobra.ExactArgs(1),
	RunE: runCanopyShow,
}

func runCanopyShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	mentions, err := canopy.Load(ctx, st, args[0])
	if err != nil {
		return err
	}

	_, clusters, err := mention.Expand(ctx, st, mentions)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(clusters)
	}

	if len(clusters) == 0 {
		fmt.Printf("canopy %q has no signatures\n", args[0])
		return nil
	}
	printDisplayClusters(clusters)
	return nil
}

// printDisplayClusters renders cluster -> paper -> author-list views,
// marking each entry's focused signature with an asterisk.
func printDisplayClusters(clusters []types.DisplayCluster) {
	for _, dc := range clusters {
		fmt.Printf("Cluster %s\n", dc.ClusterID)
		for _, pws := range dc.Papers {
			fmt.Printf("   %s\n", pws.Paper.Title)
			names := make([]string, 0, len(pws.Signatures))
			for _, sf := range pws.Signatures {
				name := sf.Signature.AuthorInfo.FullName
				if sf.HasFocus {
					name = "*" + name + "*"
				}
				names = append(names, name)
			}
			fmt.Printf("      %s\n", strings.Join(names, ", "))
		}
		fmt.Println()
	}
}

func init() {
	canopyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(canopyCmd)
}
