// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the corpus store",
	Long: `Store manages the SQLite corpus database under the data directory.
Papers and signatures are produced by upstream ingestion; import loads
them from corpus YAML files into the store.`,
}

var storeImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import corpus YAML files into the store",
	Long: `Import reads every .yaml file under data/corpus/ and loads its papers
and signatures. Each file loads in its own transaction; a bad file is
reported and skipped. Signatures whose position matches no author on
their paper are imported with a warning.`,
	RunE: runStoreImport,
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	summary, err := st.ImportCorpus(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d corpus file(s) failed to import", summary.Failed)
	}
	return nil
}

func init() {
	storeCmd.AddCommand(storeImportCmd)
	rootCmd.AddCommand(storeCmd)
}
