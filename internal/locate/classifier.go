package locate

import (
	"strings"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/scan"
)

// Classification is the oracle's verdict on the text at a probe position.
type Classification int

const (
	// Ambiguous means the text is structural noise (blank lines, footers)
	// that belongs to no number's block.
	Ambiguous Classification = iota
	// Target means the text belongs to the target number's record block.
	Target
	// Neighbor means the text belongs to some other number's block.
	Neighbor
)

func (c Classification) String() string {
	switch c {
	case Target:
		return "target"
	case Neighbor:
		return "neighbor"
	default:
		return "ambiguous"
	}
}

// Classifier decides which number's block owns the text at a position.
// The exact rule is layout-specific, so it is pluggable: bills from other
// carriers or other years can swap in their own oracle without touching
// the refinement loop.
type Classifier interface {
	// Classify inspects the text around the given page-local character
	// offset. pageIndex is 1-based.
	Classify(pages []model.PageText, pageIndex, offset int) Classification
}

// SectionClassifier is the default oracle for the section-structured bill
// layout: every record block opens with a header of headerRows lines
// naming the subscriber, followed by the section key token, followed by
// record rows. A line is owned by the section whose key is nearest at or
// before it, unless the line sits inside the header window of the next
// section. A page whose lines precede its first key continues the last
// section of an earlier page.
type SectionClassifier struct {
	scanner    *scan.Scanner
	headerRows int

	lineStarts map[int][]int // per 1-based page index
}

// NewSectionClassifier creates the default classifier. headerRows is the
// number of header lines preceding each section's key token.
func NewSectionClassifier(scanner *scan.Scanner, headerRows int) *SectionClassifier {
	if headerRows <= 0 {
		headerRows = 5
	}
	return &SectionClassifier{
		scanner:    scanner,
		headerRows: headerRows,
		lineStarts: make(map[int][]int),
	}
}

// Classify implements Classifier.
func (c *SectionClassifier) Classify(pages []model.PageText, pageIndex, offset int) Classification {
	pi := c.sliceIndex(pages, pageIndex)
	if pi < 0 {
		return Ambiguous
	}
	page := pages[pi]

	line, ln := c.lineContaining(page, offset)
	if strings.TrimSpace(line) == "" {
		return Ambiguous
	}

	idx := c.scanner.Index(page)
	keyLines := c.linesOf(page, idx.Keys)

	if len(keyLines) > 0 && ln >= keyLines[0]-c.headerRows {
		// Owned by the last section starting at or before this line. The
		// header window of a section begins headerRows lines above its key.
		owner := keyLines[0]
		for _, kl := range keyLines {
			if kl-c.headerRows <= ln {
				owner = kl
			}
		}
		return c.matchOwner(page, idx, owner)
	}

	// The line precedes every key on its page: the owning section started
	// on an earlier page.
	for q := pi - 1; q >= 0; q-- {
		qIdx := c.scanner.Index(pages[q])
		if len(qIdx.Keys) == 0 {
			continue
		}
		qKeyLines := c.linesOf(pages[q], qIdx.Keys)
		return c.matchOwner(pages[q], qIdx, qKeyLines[len(qKeyLines)-1])
	}

	return Ambiguous
}

// matchOwner reports whether the section keyed at keyLine belongs to the
// target: the target number must occur within the section's header
// window, which spans the headerRows lines above the key through the key
// line itself.
func (c *SectionClassifier) matchOwner(page model.PageText, idx model.KeyIndex, keyLine int) Classification {
	lo := keyLine - c.headerRows
	for _, hl := range c.linesOf(page, idx.Hits) {
		if hl >= lo && hl <= keyLine {
			return Target
		}
	}
	return Neighbor
}

// lineContaining returns the text and index of the line holding offset.
func (c *SectionClassifier) lineContaining(page model.PageText, offset int) (string, int) {
	starts := c.starts(page)
	ln := len(starts) - 1
	for j := 1; j < len(starts); j++ {
		if starts[j] > offset {
			ln = j - 1
			break
		}
	}
	end := len(page.RawText)
	if ln+1 < len(starts) {
		end = starts[ln+1] - 1
	}
	if starts[ln] > end {
		return "", ln
	}
	return page.RawText[starts[ln]:end], ln
}

// linesOf converts character offsets to line indices, ascending.
func (c *SectionClassifier) linesOf(page model.PageText, offsets []int) []int {
	if len(offsets) == 0 {
		return nil
	}
	starts := c.starts(page)
	lines := make([]int, 0, len(offsets))
	for _, off := range offsets {
		ln := len(starts) - 1
		for j := 1; j < len(starts); j++ {
			if starts[j] > off {
				ln = j - 1
				break
			}
		}
		lines = append(lines, ln)
	}
	return lines
}

// starts memoizes the line start offsets of a page.
func (c *SectionClassifier) starts(page model.PageText) []int {
	if s, ok := c.lineStarts[page.PageIndex]; ok {
		return s
	}
	lines := strings.Split(page.RawText, "\n")
	s := make([]int, len(lines))
	off := 0
	for j, line := range lines {
		s[j] = off
		off += len(line) + 1
	}
	c.lineStarts[page.PageIndex] = s
	return s
}

func (c *SectionClassifier) sliceIndex(pages []model.PageText, pageIndex int) int {
	if i := pageIndex - 1; i >= 0 && i < len(pages) && pages[i].PageIndex == pageIndex {
		return i
	}
	for i, p := range pages {
		if p.PageIndex == pageIndex {
			return i
		}
	}
	return -1
}
