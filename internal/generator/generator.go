// Package generator runs the batch generation: zip reference table, remote-area
// zips and every (tier, channel) rate table, assembled into one bundle.
package generator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"freight-quote/internal/catalog"
	"freight-quote/internal/config"
	"freight-quote/internal/extractor"
	"freight-quote/internal/logger"
	"freight-quote/internal/model"
	"freight-quote/internal/remote"
	"freight-quote/internal/sheet"
	"freight-quote/internal/ui"
)

// ErrNoInputData is the only fatal outcome of a run: no tier workbook could be opened
var ErrNoInputData = errors.New("no input data: none of the tier workbooks could be opened")

// Skip records a channel that produced no rates for a tier
type Skip struct {
	Tier    string
	Channel string
	Err     error
}

// Result is the outcome of a generation run
type Result struct {
	Bundle  *model.Bundle
	Skipped []Skip
}

// Options tunes a run; the zero value is usable
type Options struct {
	// Pipeline receives phase progress; nil disables progress output
	Pipeline *ui.Pipeline

	// Now stamps the bundle; defaults to time.Now
	Now func() time.Time

	// Remote overrides the remote zip loader; its OnFile hook still fires
	Remote *remote.Loader
}

// Run executes the generation. Per-channel and per-tier failures are logged and
// skipped; only the absence of every tier workbook fails the run.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = ui.NewPipeline(ui.GenerationPhases)
		pipeline.Disable()
	}

	b := model.NewBundle()
	b.GenerationID = uuid.NewString()
	b.GeneratedAt = now().UTC()
	b.Warehouses = catalog.Warehouses()
	b.Channels = catalog.ChannelMap()
	b.ChannelOrder = catalog.ChannelNames()

	res := &Result{Bundle: b}

	// 1. GOFO zip reference table
	bar := pipeline.NextPhase(1)
	b.GofoZips = loadZipDB(cfg)
	bar.Increment()
	logger.Info("  [OK] GOFO Zip DB loaded: %d entries", len(b.GofoZips))

	// 2. Remote-area zips
	bar = pipeline.NextPhase(len(cfg.Data.RemotePDFs) + len(cfg.Data.RemoteLists))
	loader := remote.NewLoader(cfg.Data.PDFToText, cfg.Data.PDFTimeout)
	if opts.Remote != nil {
		copied := *opts.Remote
		loader = &copied
	}
	callerHook := loader.OnFile
	loader.OnFile = func(path string) {
		bar.Describe(filepath.Base(path))
		bar.Increment()
		if callerHook != nil {
			callerHook(path)
		}
	}
	b.RemoteZips = loader.Load(ctx, cfg.RemotePDFPaths(), cfg.RemoteListPaths())
	logger.Info("  [OK] FedEx remote zips: %d", len(b.RemoteZips))

	// 3. Rate tables per tier
	channels := catalog.Channels()
	bar = pipeline.NextPhase(len(cfg.Data.Tiers) * len(channels))
	opened := 0
	for _, tier := range cfg.Data.Tiers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := cfg.DataPath(tier.File)
		wb, err := sheet.OpenWorkbook(path)
		if err != nil {
			logger.Warn("Tier %s skipped: %v", tier.ID, err)
			continue
		}
		opened++

		bar.Describe(tier.ID)
		rates := processTier(wb, tier.ID, channels, bar, res)
		closeWorkbook(wb)

		b.Tiers[tier.ID] = rates
		b.TierOrder = append(b.TierOrder, tier.ID)
		logger.Info("  [OK] %s: %d/%d channels", tier.ID, len(rates), len(channels))
	}

	// 4. Nothing to work with
	if opened == 0 {
		return nil, ErrNoInputData
	}

	return res, nil
}

// processTier extracts every catalog channel from one tier workbook
func processTier(wb sheet.Source, tier string, channels []model.ChannelConfig, bar *ui.ProgressBar, res *Result) model.TierRates {
	fuel := sheet.ScanFuelRate(wb)
	if fuel > 0 {
		logger.Info("  [OK] %s fuel rate detected: %.2f%%", tier, fuel*100)
	}

	rates := make(model.TierRates)
	for _, ch := range channels {
		cr, err := extractChannel(wb, ch)
		bar.Increment()
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{Tier: tier, Channel: ch.Name, Err: err})
			logger.Skip(tier, ch.Name, err)
			continue
		}

		if ch.FuelMode.Charged() {
			cr.FuelRate = fuel
		}
		rates[ch.Name] = cr
	}
	return rates
}

func extractChannel(wb sheet.Source, ch model.ChannelConfig) (*model.ChannelRates, error) {
	name, ok := sheet.FindSheet(wb.SheetNames(), ch.Keywords, ch.Exclude)
	if !ok {
		return nil, sheet.ErrSheetNotFound
	}
	g, err := wb.Grid(name)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(g, ch)
}

// loadZipDB reads the zip table from the configured tier; any failure yields an empty table
func loadZipDB(cfg *config.Config) map[string]model.ZipLocality {
	empty := make(map[string]model.ZipLocality)

	path, ok := cfg.TierPath(cfg.Data.ZipDBTier)
	if !ok {
		logger.Warn("GOFO zip DB tier %q is not configured", cfg.Data.ZipDBTier)
		return empty
	}

	wb, err := sheet.OpenWorkbook(path)
	if err != nil {
		logger.Warn("GOFO zip DB not loaded: %v", err)
		return empty
	}
	defer closeWorkbook(wb)

	db, err := extractor.LoadZipLocalities(wb)
	if err != nil {
		logger.Warn("GOFO zip DB not loaded: %v", fmt.Errorf("%s: %w", cfg.Data.ZipDBTier, err))
		return empty
	}
	return db
}

func closeWorkbook(wb *sheet.Workbook) {
	if err := wb.Close(); err != nil {
		logger.Warn("Failed to close %s: %v", wb.Path, err)
	}
}
