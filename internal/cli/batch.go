package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/pipeline"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract spam calls from multiple bills in parallel",
	Long: `Batch processes many bills for the same target number:
- Read PDF paths from the input file (one per line)
- Process bills in parallel with a configurable worker count
- Each bill gets an independent search state and cache
- Write one CSV per bill

Example:
  billsift batch bills.txt --number 555.123.4567
  billsift batch bills.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")

	// Shared with extract
	batchCmd.Flags().StringVar(&searchNumber, "number", "", "target phone number as printed on the bill")
	batchCmd.Flags().StringVar(&searchKey, "key", "", "section key token demarcating record blocks")
	batchCmd.Flags().IntVar(&maxPages, "max-pages", 0, "maximum pages to scan per bill")
	batchCmd.Flags().IntVar(&headerRows, "header-rows", 0, "section header lines preceding the key token")
	batchCmd.Flags().IntVar(&maxMinutes, "max-minutes", 1, "keep calls of at most this many minutes (0 disables)")
	batchCmd.Flags().StringSliceVar(&whitelist, "whitelist", nil, "numbers never reported as spam")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "output", "directory for the CSV files")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page text caching")
	batchCmd.Flags().BoolVar(&withCarriers, "carriers", false, "annotate each number with its carrier (needs NUMVERIFY_API_KEY)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listPath := args[0]

	cfg, err := extractConfig(cmd)
	if err != nil {
		return err
	}
	// Per-document diagnostics reports make no sense with a shared path.
	cfg.Output.ReportJSON = ""
	cfg.Output.ReportYAML = ""

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "Input file:  %s\n", listPath)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n", cfg.Output.Dir)
	fmt.Fprintln(os.Stderr)

	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, listPath)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, res.Error)
			continue
		}
		if err := p.RenderOutputs(res.Result); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Path, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s: %d spam candidates -> %s\n",
			res.Path, len(res.Result.Records), res.Result.Report.OutputCSV)
	}

	fmt.Printf("%d/%d bills processed\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d bills failed", failed, len(results))
	}
	return nil
}
