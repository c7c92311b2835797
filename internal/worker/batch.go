package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/pipeline"
)

// Processor processes a single PDF end to end
type Processor interface {
	ProcessFile(ctx context.Context, pdfPath string) (*pipeline.Result, error)
}

// DocumentJob extracts one bill
type DocumentJob struct {
	Path      string
	Processor Processor
}

// Execute implements Job
func (j *DocumentJob) Execute(ctx context.Context) Result {
	result, err := j.Processor.ProcessFile(ctx, j.Path)
	return &DocumentResult{
		Path:   j.Path,
		Result: result,
		Error:  err,
	}
}

// DocumentResult is the outcome of one bill extraction
type DocumentResult struct {
	Path   string
	Result *pipeline.Result
	Error  error
}

// GetError implements Result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many bills through the pipeline concurrently. Each
// document owns its own search state, page cache entries and key index
// memo, so there is no cross-talk between workers.
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		processor:   processor,
		concurrency: concurrency,
	}
}

// ProcessPaths processes the given PDF paths concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&DocumentJob{Path: path, Processor: b.processor})
	}

	results := pool.Wait()

	docResults := make([]*DocumentResult, len(results))
	for i, result := range results {
		docResults[i] = result.(*DocumentResult)
	}
	return docResults
}

// ProcessFile reads PDF paths from a list file and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads one PDF path per line, skipping blanks,
// comments and duplicates.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return paths, nil
}
