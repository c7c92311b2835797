package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/pipeline"
)

type fakeProcessor struct {
	mu        sync.Mutex
	processed []string
	failOn    string
}

func (f *fakeProcessor) ProcessFile(ctx context.Context, pdfPath string) (*pipeline.Result, error) {
	f.mu.Lock()
	f.processed = append(f.processed, pdfPath)
	f.mu.Unlock()

	if pdfPath == f.failOn {
		return nil, errors.New("extraction failed")
	}
	return &pipeline.Result{PDFPath: pdfPath}, nil
}

func TestBatchProcessor_ProcessPaths(t *testing.T) {
	proc := &fakeProcessor{}
	b := NewBatchProcessor(proc, 2)

	results := b.ProcessPaths(context.Background(), []string{"a.pdf", "b.pdf", "c.pdf"})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if len(proc.processed) != 3 {
		t.Errorf("expected 3 documents processed, got %d", len(proc.processed))
	}
	for _, r := range results {
		if r.GetError() != nil {
			t.Errorf("unexpected error for %s: %v", r.Path, r.GetError())
		}
		if r.Result == nil || r.Result.PDFPath != r.Path {
			t.Errorf("result not linked to its path: %+v", r)
		}
	}
}

func TestBatchProcessor_FailureDoesNotStopOthers(t *testing.T) {
	proc := &fakeProcessor{failOn: "b.pdf"}
	b := NewBatchProcessor(proc, 2)

	results := b.ProcessPaths(context.Background(), []string{"a.pdf", "b.pdf", "c.pdf"})

	var failed, succeeded int
	for _, r := range results {
		if r.GetError() != nil {
			failed++
			if r.Path != "b.pdf" {
				t.Errorf("unexpected failure for %s", r.Path)
			}
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 2 {
		t.Errorf("expected 1 failure and 2 successes, got %d and %d", failed, succeeded)
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&fakeProcessor{}, 2)

	results := b.ProcessPaths(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestReadPathsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.txt")
	content := `# march statements
bills/jan.pdf

bills/feb.pdf
bills/jan.pdf
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing list file: %v", err)
	}

	paths, err := ReadPathsFromFile(path)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != "bills/jan.pdf" || paths[1] != "bills/feb.pdf" {
		t.Errorf("unexpected paths %v", paths)
	}
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	_, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing list file")
	}
}
