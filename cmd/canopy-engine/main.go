// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the canopy-engine CLI.
// Implements: prd001-storage, prd002-canopies, prd003-clustering,
//             prd004-reconstruction, prd005-pipeline (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/canopy-engine/internal/store"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the canopy-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "canopy-engine",
	Short: "Author-signature disambiguation over a local corpus",
	Long: `canopy-engine resolves which author-name appearances on papers refer to
the same real-world author. Signatures are partitioned into canopies by a
normalized name token, each canopy is clustered independently by a
pairwise-similarity model, and the resulting cluster assignments are
persisted for browsing.

Each stage is a subcommand: store (import the corpus), predict (run the
clusterer), canopies, canopy, and cluster (browse results).`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./canopy-engine.yaml or ~/.config/canopy-engine/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "data", "base directory for the corpus store (contains corpus/, index/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("canopy-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "canopy-engine"))
		}
	}

	viper.SetEnvPrefix("CANOPY_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openStore opens the corpus store from the shared --data-dir flag, with
// the config file as fallback. The handle is opened per invocation and
// closed by the caller; nothing ambient.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if !cmd.Flags().Changed("data-dir") && viper.GetString("storage.data_dir") != "" {
		dataDir = viper.GetString("storage.data_dir")
	}
	return store.NewStore(types.StorageConfig{DataDir: dataDir})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
