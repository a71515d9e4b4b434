// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/canopy-engine/internal/cluster"
	"github.com/pdiddy/canopy-engine/internal/pipeline"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

var predictCmd = &cobra.Command{
	Use:   "predict [canopy]",
	Short: "Run the clustering model over one canopy or the whole corpus",
	Long: `Predict loads a canopy's signatures and papers, runs the clustering
model over them as one block, and optionally commits the resulting
cluster assignments. With --all, every canopy in the corpus is processed
under a single prediction group; a failing canopy is reported and skipped
without aborting its siblings.

Without --commit the run is a dry run: partitions are computed and
printed but nothing is persisted.`,
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	commit, _ := cmd.Flags().GetBool("commit")
	group, _ := cmd.Flags().GetString("prediction-group")

	if !all && len(args) != 1 {
		return fmt.Errorf("provide a canopy name or --all")
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runner := pipeline.NewRunner(st, cluster.NameMatch{}, loadPreloads(cmd))
	ctx := context.Background()

	if all {
		summary, err := runner.RunAll(ctx, group, commit, os.Stdout)
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d canopy(ies) failed", summary.Failed)
		}
		return nil
	}

	records, err := runner.RunCanopy(ctx, args[0], group, commit, os.Stdout)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Printf("canopy %q has no signatures\n", args[0])
		return nil
	}
	for _, rec := range records {
		fmt.Printf("%s: %d signatures\n", rec.ClusterID, rec.Mentions.SignatureCount())
	}
	return nil
}

// loadPreloads builds the model side tables from flags. Absent tables are
// a supported state, not an error.
func loadPreloads(cmd *cobra.Command) cluster.Preloads {
	dir, _ := cmd.Flags().GetString("preloads-dir")
	nameCounts, _ := cmd.Flags().GetBool("name-counts")
	namePairs, _ := cmd.Flags().GetBool("name-pairs")

	return cluster.LoadPreloads(types.ClusteringConfig{
		PreloadsDir:   dir,
		UseNameCounts: nameCounts,
		UseNamePairs:  namePairs,
	})
}

func init() {
	predictCmd.Flags().Bool("all", false, "process every canopy in the corpus")
	predictCmd.Flags().Bool("commit", false, "persist cluster assignments")
	predictCmd.Flags().String("prediction-group", "", "run identifier for membership rows (default: generated)")
	predictCmd.Flags().String("preloads-dir", "", "directory with name-counts.yaml and name-pairs.yaml side tables")
	predictCmd.Flags().Bool("name-counts", false, "load the name-frequency prior")
	predictCmd.Flags().Bool("name-pairs", true, "load the name-equivalence table")

	rootCmd.AddCommand(predictCmd)
}
