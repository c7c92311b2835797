// Package extract parses structured call records out of the text inside
// a located search space.
package extract

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/locate"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

// recordPattern is the fixed row grammar: date, time, counterparty
// number, optional rate code, billed minutes, optional direction token.
// Tolerant of irregular whitespace; anything it does not match is skipped
// rather than treated as an error.
var recordPattern = regexp.MustCompile(
	`^\s*(\d{1,2}/\d{1,2})\s+(\d{1,2}:\d{2}\s?(?:AM|PM)?)\s+((?:\d{3}[.\-]){2}\d{4}|\d{10})(?:\s+([A-Z]{1,4}))?\s+(\d+)(?:\s+(\S+))?\s*$`)

// Extractor parses call record rows from the pages of a search space.
// Rows that leaked in from a neighboring number's block on a boundary
// page are dropped by asking the classifier which block owns them, never
// by page membership alone.
type Extractor struct {
	target     string
	key        string
	classifier locate.Classifier
	verbose    bool
}

// NewExtractor creates an extractor for the given target number. key is
// the section key token, used only to recognize structural lines.
func NewExtractor(target, key string, classifier locate.Classifier, verbose bool) *Extractor {
	return &Extractor{
		target:     target,
		key:        key,
		classifier: classifier,
		verbose:    verbose,
	}
}

// Result carries the parsed records plus soft-failure counts.
type Result struct {
	Records []model.CallRecord
	Skipped int // Non-structural lines inside the space that failed the grammar
}

// Extract parses every record row inside the search space, in document
// order, without deduplication. Malformed rows are skipped and counted,
// never fatal.
func (e *Extractor) Extract(pages []model.PageText, space model.SearchSpace) (*Result, error) {
	if !space.Valid() {
		return nil, fmt.Errorf("invalid search space: %s", space)
	}

	res := &Result{}
	for _, page := range pages {
		if page.PageIndex < space.StartPage || page.PageIndex > space.EndPage {
			continue
		}
		e.extractPage(page, pages, space, res)
	}
	return res, nil
}

func (e *Extractor) extractPage(page model.PageText, pages []model.PageText, space model.SearchSpace, res *Result) {
	offset := 0
	for _, line := range strings.Split(page.RawText, "\n") {
		lineStart := offset
		offset += len(line) + 1

		if !space.Contains(page.PageIndex, lineStart) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		m := recordPattern.FindStringSubmatch(line)
		if m == nil {
			// Section headers, key rows, page footers: expected structure,
			// not malformed records.
			if e.isStructural(trimmed) {
				continue
			}
			res.Skipped++
			if e.verbose {
				fmt.Fprintf(os.Stderr, "page %d offset %d: unparseable row: %q\n", page.PageIndex, lineStart, trimmed)
			}
			continue
		}

		// Boundary pages can carry fragments of a neighbor's block.
		if e.classifier.Classify(pages, page.PageIndex, lineStart) != locate.Target {
			continue
		}

		minutes, err := strconv.Atoi(m[5])
		if err != nil {
			res.Skipped++
			continue
		}

		res.Records = append(res.Records, model.CallRecord{
			Date:         m[1],
			Time:         strings.ReplaceAll(m[2], " ", ""),
			TargetNumber: e.target,
			Number:       m[3],
			Minutes:      minutes,
			Direction:    parseDirection(m[6]),
			Page:         page.PageIndex,
		})
	}
}

// isStructural reports whether a non-record line is expected bill
// structure rather than a malformed row.
func (e *Extractor) isStructural(line string) bool {
	if e.key != "" && strings.Contains(line, e.key) {
		return true
	}
	return strings.Contains(line, e.target)
}

func parseDirection(token string) model.CallDirection {
	switch strings.ToUpper(token) {
	case "IN", "INCOMING":
		return model.DirectionIncoming
	case "OUT", "OUTGOING":
		return model.DirectionOutgoing
	default:
		return model.DirectionUnknown
	}
}
