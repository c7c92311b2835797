package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/pdfsource"
)

const (
	target   = "555.123.4567"
	neighbor = "555.200.0000"
)

func testBillConfig(outputDir string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Search.Number = target
	cfg.Search.SectionHeaderRows = 2
	cfg.Filter.MaxMinutes = 1
	cfg.Cache.Enabled = false
	cfg.Carrier.Enabled = false
	cfg.Output.Dir = outputDir
	return cfg
}

func billSection(subscriber string, records ...string) string {
	lines := append([]string{
		"Wireless statement",
		subscriber + " usage detail",
		"Date Time Number",
	}, records...)
	return strings.Join(lines, "\n")
}

func TestProcess_EndToEnd(t *testing.T) {
	src := pdfsource.NewStaticSource(
		billSection(neighbor,
			"11/01 7:00AM 555.987.0009 SD 2",
			"11/02 7:30AM 555.987.0008 SD 1",
		),
		billSection(target,
			"11/04 8:14PM 555.987.0001 SD 1",
			"11/05 9:02AM 555.987.0002 SD 12",
			"11/06 10:30AM 555.987.0003 SD 1",
		),
		billSection("555.300.0000",
			"11/07 11:00AM 555.987.0007 SD 1",
		),
	)
	p := NewPipeline(testBillConfig(t.TempDir()))

	result, err := p.Process(context.Background(), "march.pdf", src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if result.Space.StartPage != 2 || result.Space.EndPage != 2 {
		t.Errorf("expected pages 2..2, got %d..%d", result.Space.StartPage, result.Space.EndPage)
	}

	// Three records extracted, the 12 minute call filtered out.
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 exported records, got %d", len(result.Records))
	}
	for _, r := range result.Records {
		if r.TargetNumber != target {
			t.Errorf("record attributed to %q", r.TargetNumber)
		}
		if r.Number == "555.987.0009" || r.Number == "555.987.0008" {
			t.Errorf("neighbor record leaked: %+v", r)
		}
	}

	rep := result.Report
	if rep.PagesScanned != 3 || rep.Extracted != 3 || rep.Exported != 2 || rep.Skipped != 0 {
		t.Errorf("unexpected report counts %+v", rep)
	}
	if rep.Iterations <= 0 {
		t.Error("expected a positive iteration count")
	}
}

func TestProcess_BlankLineInsideBlock(t *testing.T) {
	// A blank page-break artifact inside the target's block must not cost
	// any of the records after it.
	src := pdfsource.NewStaticSource(strings.Join([]string{
		billSection(target,
			"11/01 1:00PM 555.988.0001 SD 1",
			"11/02 1:01PM 555.988.0002 SD 1",
			"11/03 1:02PM 555.988.0003 SD 1",
			"11/04 1:03PM 555.988.0004 SD 1",
			"11/05 1:04PM 555.988.0005 SD 1",
		),
		"",
		"11/06 1:05PM 555.988.0006 SD 1",
		"11/07 1:06PM 555.988.0007 SD 1",
		billSection(neighbor,
			"11/08 2:00PM 555.977.0001 SD 1",
			"11/09 2:01PM 555.977.0002 SD 1",
		),
	}, "\n"))
	p := NewPipeline(testBillConfig(t.TempDir()))

	result, err := p.Process(context.Background(), "march.pdf", src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if len(result.Records) != 7 {
		t.Fatalf("expected all 7 records across the blank line, got %d", len(result.Records))
	}
	if result.Records[6].Number != "555.988.0007" {
		t.Errorf("records after the blank line missing: %+v", result.Records)
	}
	for _, r := range result.Records {
		if strings.HasPrefix(r.Number, "555.977.") {
			t.Errorf("neighbor record leaked: %+v", r)
		}
	}
}

func TestProcess_WhitelistedNumberExcluded(t *testing.T) {
	src := pdfsource.NewStaticSource(
		billSection(target,
			"11/04 8:14PM 555.987.0001 SD 1",
			"11/05 9:02AM 555.987.0002 SD 1",
		),
	)
	cfg := testBillConfig(t.TempDir())
	cfg.Filter.Whitelist = []string{"5559870001"}
	p := NewPipeline(cfg)

	result, err := p.Process(context.Background(), "march.pdf", src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if len(result.Records) != 1 || result.Records[0].Number != "555.987.0002" {
		t.Errorf("expected the whitelisted number dropped, got %+v", result.Records)
	}
}

func TestProcess_TargetAbsent(t *testing.T) {
	src := pdfsource.NewStaticSource(
		billSection(neighbor, "11/01 7:00AM 555.987.0009 SD 1"),
	)
	p := NewPipeline(testBillConfig(t.TempDir()))

	_, err := p.Process(context.Background(), "march.pdf", src)
	if err == nil {
		t.Fatal("expected an error when the target never appears")
	}
	if !strings.Contains(err.Error(), "locate records") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRenderOutputs_WritesCSVAndReports(t *testing.T) {
	dir := t.TempDir()
	src := pdfsource.NewStaticSource(
		billSection(target, "11/04 8:14PM 555.987.0001 SD 1"),
	)
	cfg := testBillConfig(dir)
	cfg.Output.ReportJSON = filepath.Join(dir, "report.json")
	cfg.Output.ReportYAML = filepath.Join(dir, "report.yaml")
	p := NewPipeline(cfg)

	result, err := p.Process(context.Background(), "march.pdf", src)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if err := p.RenderOutputs(result); err != nil {
		t.Fatalf("RenderOutputs failed: %v", err)
	}

	wantCSV := filepath.Join(dir, "march_555_123_4567.csv")
	if result.Report.OutputCSV != wantCSV {
		t.Errorf("expected csv path %q, got %q", wantCSV, result.Report.OutputCSV)
	}
	data, err := os.ReadFile(wantCSV)
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if !strings.Contains(string(data), "555.987.0001") {
		t.Errorf("csv missing record: %q", data)
	}

	for _, path := range []string{cfg.Output.ReportJSON, cfg.Output.ReportYAML} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading report %s: %v", path, err)
		}
		if !strings.Contains(string(data), target) {
			t.Errorf("report %s missing target number", path)
		}
	}
}
