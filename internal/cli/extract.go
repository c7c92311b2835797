package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/locate"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/pipeline"
)

var (
	searchNumber string
	searchKey    string
	maxPages     int
	headerRows   int
	maxMinutes   int
	whitelist    []string
	outputDir    string
	reportJSON   string
	reportYAML   string
	noCache      bool
	withCarriers bool
	timeout      time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [bill.pdf]",
	Short: "Extract likely spam calls for one number from a PDF bill",
	Long: `Extract localizes the call records of the target number inside the
bill, parses them, filters out whitelisted numbers and calls longer than
the spam threshold, and writes the survivors to CSV.

The PDF path may come from the argument or from PDF_PATH in the
environment/.env. The target number comes from --number or SEARCH_NUMBER.

Example:
  billsift extract march-bill.pdf --number 555.123.4567
  billsift extract --carriers --report-json diag.json
  billsift extract march-bill.pdf -v --whitelist 555.999.0000,555.888.1111`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&searchNumber, "number", "", "target phone number as printed on the bill")
	extractCmd.Flags().StringVar(&searchKey, "key", "", "section key token demarcating record blocks")
	extractCmd.Flags().IntVar(&maxPages, "max-pages", 0, "maximum pages to scan")
	extractCmd.Flags().IntVar(&headerRows, "header-rows", 0, "section header lines preceding the key token")
	extractCmd.Flags().IntVar(&maxMinutes, "max-minutes", 1, "keep calls of at most this many minutes (0 disables)")
	extractCmd.Flags().StringSliceVar(&whitelist, "whitelist", nil, "numbers never reported as spam")
	extractCmd.Flags().StringVar(&outputDir, "output-dir", "output", "directory for the CSV file")
	extractCmd.Flags().StringVar(&reportJSON, "report-json", "", "write a diagnostics report as JSON")
	extractCmd.Flags().StringVar(&reportYAML, "report-yaml", "", "write a diagnostics report as YAML")
	extractCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page text caching (force fresh extraction)")
	extractCmd.Flags().BoolVar(&withCarriers, "carriers", false, "annotate each number with its carrier (needs NUMVERIFY_API_KEY)")
	extractCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall processing timeout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfPath := viper.GetString("pdf_path")
	if len(args) == 1 {
		pdfPath = args[0]
	}
	if pdfPath == "" {
		return fmt.Errorf("no PDF given: pass a path or set PDF_PATH")
	}

	cfg, err := extractConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Bill:    %s\n", pdfPath)
		fmt.Fprintf(os.Stderr, "Number:  %s\n", cfg.Search.Number)
		fmt.Fprintf(os.Stderr, "Cache:   %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.ProcessFile(ctx, pdfPath)
	if err != nil {
		var notFound *locate.TargetNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("%s does not appear in this bill (%d pages scanned)",
				notFound.Number, notFound.PagesScanned)
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := p.RenderOutputs(result); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Printf("%d spam candidates -> %s\n", len(result.Records), result.Report.OutputCSV)
	return nil
}

// extractConfig layers the extract command's flags over the base
// configuration.
func extractConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := baseConfig()

	if searchNumber != "" {
		cfg.Search.Number = searchNumber
	}
	if searchKey != "" {
		cfg.Search.Key = searchKey
	}
	if maxPages > 0 {
		cfg.Search.MaxPages = maxPages
	}
	if headerRows > 0 {
		cfg.Search.SectionHeaderRows = headerRows
	}
	if cmd.Flags().Changed("max-minutes") {
		cfg.Filter.MaxMinutes = maxMinutes
	}
	if len(whitelist) > 0 {
		cfg.Filter.Whitelist = whitelist
	}
	cfg.Output.Dir = outputDir
	cfg.Output.ReportJSON = reportJSON
	cfg.Output.ReportYAML = reportYAML
	cfg.Cache.Enabled = !noCache

	if withCarriers {
		if cfg.Carrier.APIKey == "" {
			return nil, fmt.Errorf("NUMVERIFY_API_KEY environment variable not set")
		}
		cfg.Carrier.Enabled = true
	}

	if cfg.Search.Number == "" {
		return nil, fmt.Errorf("no target number: pass --number or set SEARCH_NUMBER")
	}
	return cfg, nil
}
