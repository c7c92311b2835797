// Package export shapes extracted call records into the final spam
// report: duration and whitelist filtering, optional carrier annotation,
// CSV serialization and the diagnostics report.
package export

import (
	"strings"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

// Transformer filters extracted records down to likely spam.
type Transformer struct {
	maxMinutes int
	whitelist  map[string]bool
}

// NewTransformer creates a transformer. maxMinutes <= 0 disables the
// duration filter. Whitelist entries are compared in normalized digit
// form, so "555.123.4567" and "5551234567" whitelist the same number.
func NewTransformer(maxMinutes int, whitelist []string) *Transformer {
	wl := make(map[string]bool, len(whitelist))
	for _, num := range whitelist {
		if n := NormalizeNumber(num); n != "" {
			wl[n] = true
		}
	}
	return &Transformer{
		maxMinutes: maxMinutes,
		whitelist:  wl,
	}
}

// Transform returns the records that survive both filters, preserving
// document order. Short calls are the spam signature: a robocall rarely
// bills more than a minute, so anything longer is treated as legitimate.
func (t *Transformer) Transform(records []model.CallRecord) []model.CallRecord {
	out := make([]model.CallRecord, 0, len(records))
	for _, rec := range records {
		if t.maxMinutes > 0 && rec.Minutes > t.maxMinutes {
			continue
		}
		if t.whitelist[NormalizeNumber(rec.Number)] {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// NormalizeNumber strips the separators the bill prints inside phone
// numbers, leaving the bare digit string.
func NormalizeNumber(num string) string {
	var b strings.Builder
	for _, r := range num {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
