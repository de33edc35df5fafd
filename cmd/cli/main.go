package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"launchdash/adapters/chart"
	"launchdash/app"
	"launchdash/domain/launch"
	"launchdash/internal/api"
	"launchdash/internal/config"
	"launchdash/internal/container"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// cliOptions are the persistent flags shared by every command
type cliOptions struct {
	dataFile string
	sheet    string
	format   string
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "launchdash-cli",
		Short: "Inspect SpaceX launch records and export dashboard figures",
		Long: `Runs the dashboard transformations from the command line.

Records come from DATA_FILE (or DATABASE_URL) exactly as for the web dashboard;
--data overrides both with a CSV or XLSX file.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dataFile, "data", "", "CSV or XLSX launch file (overrides DATA_FILE and DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "XLSX sheet name (overrides DATA_SHEET)")
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", string(formatTable), "Output format: table|markdown|json")

	rootCmd.AddCommand(
		newSitesCmd(opts),
		newOutcomesCmd(opts),
		newCorrelationCmd(opts),
		newSummaryCmd(opts),
		newRenderCmd(opts),
	)
	return rootCmd
}

// load builds a container from the environment plus flag overrides
func (o *cliOptions) load(ctx context.Context) (*container.Container, outputFormat, error) {
	format, err := parseFormat(o.format)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.dataFile != "" {
		cfg.Data.File = o.dataFile
		cfg.Database.URL = ""
	}
	if o.sheet != "" {
		cfg.Data.Sheet = o.sheet
	}

	c, err := container.New(cfg)
	if err != nil {
		return nil, "", err
	}
	if err := c.Init(ctx); err != nil {
		c.Shutdown(ctx)
		return nil, "", err
	}
	return c, format, nil
}

// selectionFlags holds --site, --low and --high as raw strings so they go
// through the same parsing as the HTTP query
type selectionFlags struct {
	site string
	low  string
	high string
}

func (f *selectionFlags) register(cmd *cobra.Command, withRange bool) {
	cmd.Flags().StringVar(&f.site, "site", launch.AllSites, "Launch site, or ALL")
	if withRange {
		cmd.Flags().StringVar(&f.low, "low", "", "Lowest payload in kg (default: dataset minimum)")
		cmd.Flags().StringVar(&f.high, "high", "", "Highest payload in kg (default: dataset maximum)")
	}
}

func (f *selectionFlags) selection(d *launch.Dataset) (launch.Selection, error) {
	q := url.Values{}
	q.Set("site", f.site)
	if f.low != "" {
		q.Set("low", f.low)
	}
	if f.high != "" {
		q.Set("high", f.high)
	}
	return api.ParseSelection(q, d)
}

func newSitesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the site dropdown options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			options := c.SiteOptions()
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), options)
			}

			t := newTable(format, "Label", "Value")
			for _, o := range options {
				t.Row(o.Label, o.Value)
			}
			return t.WriteTo(cmd.OutOrStdout())
		},
	}
}

func newOutcomesCmd(opts *cliOptions) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "outcomes",
		Short: "Print the success proportions for a site",
		Long: `Print the data behind the proportions chart.

With --site ALL (the default) this is the number of successful launches per
site; for a single site it is the Success and Failure counts.

Example: launchdash-cli outcomes --site "KSC LC-39A"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			s, err := sel.selection(c.Dataset)
			if err != nil {
				return err
			}
			agg := c.Transformer.ComputeOutcomeAggregation(c.Dataset, s)
			return printOutcomes(cmd, format, agg)
		},
	}
	sel.register(cmd, false)
	return cmd
}

func printOutcomes(cmd *cobra.Command, format outputFormat, agg launch.OutcomeAggregation) error {
	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, agg)
	}

	fmt.Fprintln(out, agg.Title)
	t := newTable(format, agg.Category, "Count")
	t.AlignRight(2)
	for _, cat := range agg.Categories {
		t.Row(cat.Label, cat.Count)
	}
	t.Footer("Total", agg.Total())
	return t.WriteTo(out)
}

func newCorrelationCmd(opts *cliOptions) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "correlation",
		Short: "List launches inside a payload range",
		Long: `Print the records behind the payload/outcome scatter chart.

Bounds are inclusive. A low bound above the high bound selects nothing.

Example: launchdash-cli correlation --site ALL --low 2000 --high 6000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			s, err := sel.selection(c.Dataset)
			if err != nil {
				return err
			}
			sub := c.Transformer.ComputeCorrelationSubset(c.Dataset, s)
			return printCorrelation(cmd, format, sub, c.Summaries.Correlation(sub))
		},
	}
	sel.register(cmd, true)
	return cmd
}

func printCorrelation(cmd *cobra.Command, format outputFormat, sub launch.CorrelationSubset, summary app.CorrelationSummary) error {
	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, struct {
			Subset  launch.CorrelationSubset `json:"subset"`
			Summary app.CorrelationSummary   `json:"summary"`
		}{sub, summary})
	}

	fmt.Fprintln(out, sub.Title)
	t := newTable(format, "Flight", "Launch Site", "Payload (kg)", "class", "Booster")
	t.AlignRight(1, 3, 4)
	for _, r := range sub.Records {
		flight := ""
		if r.FlightNumber > 0 {
			flight = fmt.Sprint(r.FlightNumber)
		}
		t.Row(flight, r.Site, humanize.Commaf(r.PayloadKg), r.Outcome.Indicator(), r.BoosterCategory)
	}

	corr := "n/a"
	if summary.PointBiserial != nil {
		corr = fmt.Sprintf("r=%+.3f", *summary.PointBiserial)
	}
	t.Footer(summary.Records, "", "", fmt.Sprintf("%d ok", summary.Successes), corr)
	return t.WriteTo(out)
}

func newSummaryCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print per-site launch and payload statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, format, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			summaries, err := c.Summaries.SiteSummaries(c.Dataset)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				return writeJSON(out, summaries)
			}

			t := newTable(format, "Launch Site", "Launches", "Successes", "Success rate", "Mean kg", "Median kg", "Max kg")
			t.AlignRight(2, 3, 4, 5, 6, 7)
			for _, s := range summaries {
				t.Row(s.Site, s.Launches, s.Successes, fmt.Sprintf("%.1f%%", s.SuccessRate*100),
					humanize.Commaf(roundKg(s.PayloadMeanKg)), humanize.Commaf(roundKg(s.PayloadMedianKg)), humanize.Commaf(s.PayloadMaxKg))
			}
			return t.WriteTo(out)
		},
	}
}

func newRenderCmd(opts *cliOptions) *cobra.Command {
	var (
		sel    selectionFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write both dashboard figures as SVG files",
		Long: `Render the proportions and scatter charts for one selection and write
outcomes.svg and correlation.svg into --out.

Example: launchdash-cli render --site "CCAFS LC-40" --low 0 --high 5000 --out figures`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := opts.load(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Shutdown(cmd.Context())

			s, err := sel.selection(c.Dataset)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			figures, err := renderFigures(cmd.Context(), c, s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, fig := range figures {
				path := filepath.Join(outDir, fig.Kind+".svg")
				if err := os.WriteFile(path, fig.Body, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Fprintf(out, "%s  %s  (%s)\n", path, fig.Title, humanize.Bytes(uint64(len(fig.Body))))
			}
			return nil
		},
	}
	sel.register(cmd, true)
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory the SVG files are written to")
	return cmd
}

// renderFigures draws both charts concurrently, outcomes first in the result
func renderFigures(ctx context.Context, c *container.Container, s launch.Selection) ([]*chart.Figure, error) {
	figures := make([]*chart.Figure, 2)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		fig, err := c.Renderer.RenderOutcomes(c.Transformer.ComputeOutcomeAggregation(c.Dataset, s))
		figures[0] = fig
		return err
	})
	g.Go(func() error {
		sub := c.Transformer.ComputeCorrelationSubset(c.Dataset, s)
		fig, err := c.Renderer.RenderCorrelation(sub, c.Dataset.PayloadBounds())
		figures[1] = fig
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to render figures: %w", err)
	}
	return figures, nil
}

func roundKg(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
