package locate

import (
	"strings"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

// document gives the locator line-granular coordinates over the page
// sequence. Boundary refinement works on a single linear line axis so
// page-sized and line-sized steps share one notion of position.
type document struct {
	pages      []model.PageText
	lineStarts [][]int // per page, char offset of each line start
	lineTexts  [][]string
	pageFirst  []int // linear index of each page's first line
	lineCount  int
}

func newDocument(pages []model.PageText) *document {
	d := &document{
		pages:      pages,
		lineStarts: make([][]int, len(pages)),
		lineTexts:  make([][]string, len(pages)),
		pageFirst:  make([]int, len(pages)),
	}
	for i, page := range pages {
		lines := strings.Split(page.RawText, "\n")
		starts := make([]int, len(lines))
		off := 0
		for j, line := range lines {
			starts[j] = off
			off += len(line) + 1
		}
		d.lineStarts[i] = starts
		d.lineTexts[i] = lines
		d.pageFirst[i] = d.lineCount
		d.lineCount += len(lines)
	}
	return d
}

// split resolves a linear line index to (page slice index, line index).
func (d *document) split(linear int) (int, int) {
	pi := len(d.pages) - 1
	for i := 1; i < len(d.pages); i++ {
		if d.pageFirst[i] > linear {
			pi = i - 1
			break
		}
	}
	return pi, linear - d.pageFirst[pi]
}

// pageNumber returns the 1-based page index of a linear position.
func (d *document) pageNumber(linear int) int {
	pi, _ := d.split(linear)
	return d.pages[pi].PageIndex
}

// pageStart returns the linear index of the first line of page slice
// index pi.
func (d *document) pageStart(pi int) int {
	return d.pageFirst[pi]
}

// pageLast returns the linear index of the last line of page slice
// index pi.
func (d *document) pageLast(pi int) int {
	return d.pageFirst[pi] + len(d.lineTexts[pi]) - 1
}

// lineStartOffset returns the page-local char offset where the line at
// the linear position begins.
func (d *document) lineStartOffset(linear int) int {
	pi, li := d.split(linear)
	return d.lineStarts[pi][li]
}

// lineEndOffset returns the page-local char offset just past the content
// of the line at the linear position.
func (d *document) lineEndOffset(linear int) int {
	pi, li := d.split(linear)
	return d.lineStarts[pi][li] + len(d.lineTexts[pi][li])
}

// lineAt resolves a page-local char offset to the linear index of the
// line containing it. pi is the page slice index.
func (d *document) lineAt(pi, offset int) int {
	starts := d.lineStarts[pi]
	li := len(starts) - 1
	for j := 1; j < len(starts); j++ {
		if starts[j] > offset {
			li = j - 1
			break
		}
	}
	return d.pageFirst[pi] + li
}

// end returns the linear index of the document's last line.
func (d *document) end() int {
	return d.lineCount - 1
}
