package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"launchdash/domain/launch"
	"launchdash/internal/config"
	"launchdash/internal/container"
	"launchdash/internal/testkit"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "launchdash-dev",
		Short:        "Launch dashboard development tools",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeTestCmd(),
	)
	return rootCmd
}

func newSeedCmd() *cobra.Command {
	var (
		out   string
		count int
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a synthetic launch file for development",
		Long: `Generate reproducible launch records in the column layout of the public
SpaceX export, so the dashboard can run without the real file.

Example: launchdash-dev seed --out spacex_launch_dash.csv --count 120 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := testkit.DefaultLaunchConfig()
			cfg.LaunchCount = count
			cfg.Seed = seed

			records, err := testkit.NewLaunchGenerator(cfg).GenerateRecords()
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if err := testkit.WriteCSV(f, records); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d launches to %s\n", len(records), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "spacex_launch_dash.csv", "Output CSV path")
	cmd.Flags().IntVar(&count, "count", testkit.DefaultLaunchConfig().LaunchCount, "Number of launches")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")
	return cmd
}

func newSmokeTestCmd() *cobra.Command {
	var dataFile string

	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Load the configured data and exercise every site selection",
		Long: `Load records exactly as the dashboard does, then for every dropdown option
compute both chart inputs twice, check the results match, and render both figures.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataFile != "" {
				cfg.Data.File = dataFile
				cfg.Database.URL = ""
			}

			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())
			if err := c.Init(cmd.Context()); err != nil {
				return err
			}

			return runSmoke(cmd.Context(), c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "CSV or XLSX launch file (overrides DATA_FILE)")
	return cmd
}

// runSmoke checks that each selection is repeatable and renders
func runSmoke(ctx context.Context, c *container.Container, out io.Writer) error {
	d := c.Dataset
	for _, option := range c.SiteOptions() {
		if err := ctx.Err(); err != nil {
			return err
		}
		sel := launch.DefaultSelection(d)
		sel.Site = option.Value

		agg := c.Transformer.ComputeOutcomeAggregation(d, sel)
		if diff := cmp.Diff(agg, c.Transformer.ComputeOutcomeAggregation(d, sel)); diff != "" {
			return fmt.Errorf("outcomes for %s are not repeatable:\n%s", option.Value, diff)
		}
		sub := c.Transformer.ComputeCorrelationSubset(d, sel)
		if diff := cmp.Diff(sub, c.Transformer.ComputeCorrelationSubset(d, sel)); diff != "" {
			return fmt.Errorf("correlation subset for %s is not repeatable:\n%s", option.Value, diff)
		}

		if _, err := c.Renderer.RenderOutcomes(agg); err != nil {
			return fmt.Errorf("render outcomes for %s: %w", option.Value, err)
		}
		if _, err := c.Renderer.RenderCorrelation(sub, d.PayloadBounds()); err != nil {
			return fmt.Errorf("render correlation for %s: %w", option.Value, err)
		}

		fmt.Fprintf(out, "✓ %-20s %3d categories, %3d records in range\n", option.Label, len(agg.Categories), sub.Len())
	}

	fmt.Fprintf(out, "Smoke test passed for dataset %s (%d records)\n", d.ID().Short(), d.Len())
	return nil
}
