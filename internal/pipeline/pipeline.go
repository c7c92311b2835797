// Package pipeline wires the stages together: page text source, key
// index scanner, range locator, record extractor, transformer/exporter.
// One Process call handles one document end to end; concurrent documents
// each get independent caches and search state.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/cache"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/carrier"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/export"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/extract"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/locate"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/pdfsource"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/scan"
)

// Pipeline orchestrates the extraction of one or more documents under a
// single configuration.
type Pipeline struct {
	config      *model.Config
	pageCache   cache.Cache
	transformer *export.Transformer
	csvWriter   *export.CSVWriter
	carriers    *carrier.Client
}

// NewPipeline creates a pipeline from configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		pageCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	var carriers *carrier.Client
	if cfg.Carrier.Enabled {
		carriers = carrier.NewClient(cfg.Carrier, cfg.Output.Verbose)
	}

	return &Pipeline{
		config:      cfg,
		pageCache:   pageCache,
		transformer: export.NewTransformer(cfg.Filter.MaxMinutes, cfg.Filter.Whitelist),
		csvWriter:   export.NewCSVWriter(cfg.Carrier.Enabled),
		carriers:    carriers,
	}
}

// Result is the outcome of processing one document.
type Result struct {
	PDFPath string
	Space   model.SearchSpace
	Records []model.CallRecord // Filtered, export-ready records
	Report  *model.Report
}

// ProcessFile runs the full pipeline against a PDF on disk.
func (p *Pipeline) ProcessFile(ctx context.Context, pdfPath string) (*Result, error) {
	src := pdfsource.NewPDFSource(pdfPath, p.config.Search.MaxPages, p.pageCache, p.config.Output.Verbose)
	return p.Process(ctx, pdfPath, src)
}

// Process runs the full pipeline against an arbitrary page text source.
// The name is used for diagnostics and output naming only.
func (p *Pipeline) Process(ctx context.Context, name string, src pdfsource.Source) (*Result, error) {
	started := time.Now()
	cfg := p.config
	verbose := cfg.Output.Verbose

	pages, err := src.Pages()
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "loaded %d pages from %s\n", len(pages), name)
	}

	// Each document owns its scanner memo so probes never cross documents.
	scanner := scan.NewScanner(cfg.Search.Number, cfg.Search.Key,
		cache.NewMemoryCache(cfg.Cache.MemoryTTL, 10*time.Minute))
	classifier := locate.NewSectionClassifier(scanner, cfg.Search.SectionHeaderRows)
	locator := locate.NewLocator(scanner, classifier, cfg.Locator.MaxIterations, verbose)

	space, err := locator.Locate(pages)
	if err != nil {
		return nil, fmt.Errorf("locate records: %w", err)
	}

	extractor := extract.NewExtractor(cfg.Search.Number, cfg.Search.Key, classifier, verbose)
	extracted, err := extractor.Extract(pages, space)
	if err != nil {
		return nil, fmt.Errorf("extract records: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "extracted %d records (%d rows skipped)\n",
			len(extracted.Records), extracted.Skipped)
	}

	records := p.transformer.Transform(extracted.Records)

	if p.carriers != nil && len(records) > 0 {
		if err := p.carriers.Annotate(ctx, records); err != nil {
			return nil, fmt.Errorf("annotate carriers: %w", err)
		}
	}

	report := &model.Report{
		PDFPath:      name,
		TargetNumber: cfg.Search.Number,
		GeneratedAt:  time.Now().UTC(),
		PagesScanned: len(pages),
		Space:        space,
		Iterations:   locator.Iterations(),
		Extracted:    len(extracted.Records),
		Exported:     len(records),
		Skipped:      extracted.Skipped,
		Elapsed:      time.Since(started).String(),
	}

	return &Result{
		PDFPath: name,
		Space:   space,
		Records: records,
		Report:  report,
	}, nil
}

// RenderOutputs writes the CSV and, when configured, the diagnostics
// report for one result.
func (p *Pipeline) RenderOutputs(result *Result) error {
	cfg := p.config

	csvPath, err := p.csvWriter.WriteFile(cfg.Output.Dir, result.PDFPath, cfg.Search.Number, result.Records)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	result.Report.OutputCSV = csvPath
	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "wrote %d records to %s\n", len(result.Records), csvPath)
	}

	if cfg.Output.ReportJSON != "" {
		if err := export.RenderReportJSON(result.Report, cfg.Output.ReportJSON); err != nil {
			return err
		}
	}
	if cfg.Output.ReportYAML != "" {
		if err := export.RenderReportYAML(result.Report, cfg.Output.ReportYAML); err != nil {
			return err
		}
	}
	return nil
}
