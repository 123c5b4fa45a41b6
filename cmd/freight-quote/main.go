// Command freight-quote builds rate bundles from tier workbooks and quotes parcels against them.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"freight-quote/internal/config"
	"freight-quote/internal/exporter"
	"freight-quote/internal/generator"
	"freight-quote/internal/logger"
	"freight-quote/internal/model"
	"freight-quote/internal/quote"
	"freight-quote/internal/ui"
)

const (
	appName    = "Freight Quote"
	appVersion = "1.0.0"
	appDesc    = "Rate-sheet extractor and parcel quoting engine for US last-mile channels"
)

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "freight-quote",
		Short:         appDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging (DEBUG level)")

	rootCmd.AddCommand(newGenerateCmd(), newQuoteCmd(), newVersionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		},
	}
}

// setup loads the configuration and starts the run log
func setup(outputDir string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if outputDir != "" {
		cfg.Output.Dir = outputDir
		if err := cfg.EnsureOutputDir(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(os.Stdout, cfg.LogPath(), verbose); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// --- generate ---

func newGenerateCmd() *cobra.Command {
	var (
		outputDir string
		formats   string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Extract every tier workbook into a rate bundle and export it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup(outputDir)
			if err != nil {
				return err
			}
			defer logger.Close()

			if cmd.Flags().Changed("format") {
				cfg.Output.Formats = strings.Split(formats, ",")
			}

			printBanner()
			if verbose {
				cfg.Print()
			}
			return runGenerate(cmd.Context(), cfg, quiet)
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Override output directory from config")
	cmd.Flags().StringVar(&formats, "format", "json,excel,word", "Comma-separated output formats (json,excel,word)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide progress bars")
	return cmd
}

func runGenerate(ctx context.Context, cfg *config.Config, quiet bool) error {
	start := time.Now()

	pipeline := ui.NewPipeline(ui.GenerationPhases)
	if quiet {
		pipeline.Disable()
	}

	// 1. Extraction
	logger.Info("Extracting %d tier workbook(s) from %s", len(cfg.Data.Tiers), cfg.Data.Dir)
	res, err := generator.Run(ctx, cfg, generator.Options{Pipeline: pipeline})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	b := res.Bundle

	// 2. Export
	exporters := exporter.GetExporters(cfg.Output.Formats)
	if len(exporters) == 0 {
		return fmt.Errorf("no usable output format in %v", cfg.Output.Formats)
	}

	bar := pipeline.NextPhase(len(exporters))
	var exportErrors []error
	for _, exp := range exporters {
		bar.Describe(exp.Name())
		if err := exp.Export(b, cfg); err != nil {
			logger.Error("%s export failed: %v", exp.Name(), err)
			exportErrors = append(exportErrors, err)
		}
		bar.Increment()
	}
	pipeline.Finish()

	pipeline.PrintSummary(fmt.Sprintf("\n%d tier(s), %d rate table(s), %d skipped channel(s), %d warning(s) in %s",
		len(b.TierOrder), b.TableCount(), len(res.Skipped), logger.Warnings(), time.Since(start).Round(time.Millisecond)))

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %w", errors.Join(exportErrors...))
	}

	logger.Info("✅ Generation %s complete. Check [%s] directory.", b.GenerationID, cfg.Output.Dir)
	return nil
}

// --- quote ---

type quoteFlags struct {
	bundle      string
	tier        string
	warehouse   string
	zip         string
	length      float64
	width       float64
	height      float64
	weight      float64
	residential bool
	signature   bool
	fuel        float64
	asJSON      bool
}

func newQuoteCmd() *cobra.Command {
	var f quoteFlags

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote one parcel against every channel of a rate bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup("")
			if err != nil {
				return err
			}
			defer logger.Close()

			return runQuote(cmd, cfg, f)
		},
	}

	cmd.Flags().StringVar(&f.bundle, "bundle", "", "Bundle JSON (default: <output>/<file_name>.json)")
	cmd.Flags().StringVar(&f.tier, "tier", "", "Customer tier (default: quote.default_tier)")
	cmd.Flags().StringVar(&f.warehouse, "warehouse", "", "Origin warehouse zip")
	cmd.Flags().StringVar(&f.zip, "zip", "", "Destination zip (5 digits)")
	cmd.Flags().Float64Var(&f.length, "length", 0, "Length in inches")
	cmd.Flags().Float64Var(&f.width, "width", 0, "Width in inches")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Height in inches")
	cmd.Flags().Float64Var(&f.weight, "weight", 0, "Actual weight in pounds")
	cmd.Flags().BoolVar(&f.residential, "residential", false, "Residential delivery address")
	cmd.Flags().BoolVar(&f.signature, "signature", false, "Signature required")
	cmd.Flags().Float64Var(&f.fuel, "fuel", 0, "Fuel surcharge percent (default: highest rate in the tier)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print quotes as JSON")

	for _, name := range []string{"warehouse", "zip", "length", "width", "height", "weight"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runQuote(cmd *cobra.Command, cfg *config.Config, f quoteFlags) error {
	path := f.bundle
	if path == "" {
		path = cfg.OutputPath("json")
	}
	b, err := model.LoadBundle(path)
	if err != nil {
		return err
	}

	tier := f.tier
	if tier == "" {
		tier = cfg.Quote.DefaultTier
	}
	if _, ok := b.Tiers[tier]; !ok {
		return fmt.Errorf("tier %s not in bundle (have %v)", tier, b.TierOrder)
	}

	fuel := f.fuel
	if !cmd.Flags().Changed("fuel") {
		fuel = b.DefaultFuelPercent(tier)
		if fuel <= 0 {
			fuel = cfg.Quote.DefaultFuelPercent
		}
	}

	req := quote.Request{
		Tier:      tier,
		Warehouse: f.warehouse,
		Zip:       f.zip,
		Package: model.Package{
			Length: f.length,
			Width:  f.width,
			Height: f.height,
			Weight: f.weight,
		},
		Residential: f.residential,
		Signature:   f.signature,
		FuelPercent: fuel,
	}

	quotes, err := quote.NewBundleEngine(b).QuoteAll(b, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(quotes)
	}

	// Destination and advisory header
	loc := quote.LocateZip(b, req.Zip)
	fmt.Fprintf(out, "Tier %s  %s -> %s", tier, req.Warehouse, req.Zip)
	if loc.Locality != nil {
		fmt.Fprintf(out, " (%s, %s %s)", loc.Locality.City, loc.Locality.State, loc.Locality.CNState)
	}
	if loc.Remote {
		fmt.Fprint(out, " [FedEx remote area]")
	}
	fmt.Fprintf(out, "\nDim weight %.2f lb, girth %.1f in, fuel %.2f%%\n", req.Package.DimWeight(), req.Package.Girth(), fuel)
	for _, msg := range quote.CheckCompliance(req.Package).Messages {
		fmt.Fprintf(out, "  ! %s\n", msg)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Channel\tZone\tBillable\tBase\tSurcharges\tTotal\tNote")
	for _, q := range quotes {
		if !q.Eligible {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t%s %s\n", q.Channel, q.Reason, strings.Join(q.Notes, "; "))
			continue
		}
		var lines []string
		for _, s := range q.Surcharges {
			lines = append(lines, fmt.Sprintf("%s %s", s.Label, s.Amount.StringFixed(2)))
		}
		label := q.Channel
		if q.Service != model.ServiceNone {
			label += " " + q.Service.Name()
		}
		fmt.Fprintf(w, "%s\t%d\t%g\t%s\t%s\t%s\t%s\n",
			label, q.Zone, q.BillableWeight, q.BasePrice.StringFixed(2),
			strings.Join(lines, ", "), q.Total.StringFixed(2), strings.Join(q.Notes, "; "))
	}
	return w.Flush()
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                    FREIGHT QUOTE v1.0.0                   ║
║        Rate Sheet Extraction & Parcel Quoting Engine      ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
