package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

// CSVWriter serializes the filtered records. Column order matches the
// original report format: Date, Time, Number, plus Carrier when the
// lookup ran.
type CSVWriter struct {
	withCarrier bool
}

// NewCSVWriter creates a CSV writer. withCarrier adds the Carrier column.
func NewCSVWriter(withCarrier bool) *CSVWriter {
	return &CSVWriter{withCarrier: withCarrier}
}

// Write serializes records to w with a header row.
func (c *CSVWriter) Write(w io.Writer, records []model.CallRecord) error {
	writer := csv.NewWriter(w)

	header := []string{"Date", "Time", "Number"}
	if c.withCarrier {
		header = append(header, "Carrier")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := []string{rec.Date, rec.Time, rec.Number}
		if c.withCarrier {
			row = append(row, rec.Carrier)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile serializes records to the conventional output path and
// returns it.
func (c *CSVWriter) WriteFile(outputDir, pdfPath, target string, records []model.CallRecord) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := OutputPath(outputDir, pdfPath, target)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := c.Write(f, records); err != nil {
		return "", err
	}
	return path, nil
}

// OutputPath builds `<dir>/<pdf-base>_<target>.csv` with the target's
// separators flattened to underscores, e.g.
// output/march-bill_555_123_4567.csv.
func OutputPath(outputDir, pdfPath, target string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	num := strings.NewReplacer(".", "_", "-", "_").Replace(target)
	return filepath.Join(outputDir, base+"_"+num+".csv")
}
