// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/canopy-engine/internal/cluster"
	"github.com/pdiddy/canopy-engine/internal/mention"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

var clusterCmd = &cobra.Command{
	Use:   "cluster <cluster-id>",
	Short: "Show one committed cluster reconstructed from storage",
	Long: `Cluster rebuilds a cluster directly from its persisted membership rows:
member signatures, their papers, the originating canopy, and the
prediction group that produced it. An unknown cluster id shows an empty
result rather than failing the interactive call.`,
	Args: cobra.ExactArgs(1),
	RunE: runClusterShow,
}

func runClusterShow(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	rec, err := cluster.GetCluster(ctx, st, args[0])
	if errors.Is(err, types.ErrNotFound) {
		fmt.Printf("no cluster %q\n", args[0])
		return nil
	}
	if err != nil {
		return err
	}

	_, clusters, err := mention.Expand(ctx, st, rec.Mentions)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := struct {
			ClusterID       string                 `json:"cluster_id"`
			PredictionGroup string                 `json:"prediction_group"`
			Canopy          string                 `json:"canopy"`
			Clusters        []types.DisplayCluster `json:"clusters"`
		}{rec.ClusterID, rec.PredictionGroup, rec.Canopy, clusters}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Cluster %s (canopy %q, prediction group %s)\n\n",
		rec.ClusterID, rec.Canopy, rec.PredictionGroup)
	printDisplayClusters(clusters)
	return nil
}

func init() {
	clusterCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(clusterCmd)
}
