package model

import "time"

// Report is the per-document diagnostics artifact. It records how the
// search space was localized so a diverging bill layout can be diagnosed
// without re-running the tool.
type Report struct {
	PDFPath      string      `json:"pdf_path" yaml:"pdf_path"`
	TargetNumber string      `json:"target_number" yaml:"target_number"`
	GeneratedAt  time.Time   `json:"generated_at" yaml:"generated_at"`
	PagesScanned int         `json:"pages_scanned" yaml:"pages_scanned"`
	Space        SearchSpace `json:"search_space" yaml:"search_space"`
	Iterations   int         `json:"iterations" yaml:"iterations"` // Refinement iterations spent by the locator
	Extracted    int         `json:"extracted" yaml:"extracted"`   // Records parsed inside the search space
	Exported     int         `json:"exported" yaml:"exported"`     // Records surviving the filters
	Skipped      int         `json:"skipped" yaml:"skipped"`       // Malformed rows skipped inside the search space
	Elapsed      string      `json:"elapsed" yaml:"elapsed"`
	OutputCSV    string      `json:"output_csv,omitempty" yaml:"output_csv,omitempty"`
}
