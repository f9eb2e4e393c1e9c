package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tair/retail-dashboard/internal/app"
)

var (
	seedForce bool
	seedRows  int
	seedValue int64
)

// seedCmd writes the deterministic sample catalog
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the catalog with sample products",
	Long: `Generate the deterministic sample catalog. An existing catalog is
left alone unless --force is given.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Replace a non-empty catalog")
	seedCmd.Flags().IntVar(&seedRows, "rows", 0, "Number of rows (default: SEED_ROWS)")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (default: SEED_RANDOM)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedRows > 0 {
		cfg.Seed.Rows = seedRows
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed.Seed = seedValue
	}

	a, cleanup, err := app.Bootstrap(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	n, err := a.Seed(cmd.Context(), seedForce)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", n)
	return nil
}
