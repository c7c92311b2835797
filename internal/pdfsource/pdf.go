package pdfsource

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/cache"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

// PDFSource extracts per-page plain text from a PDF file on disk.
// Extraction is the expensive step of the whole pipeline, so page text is
// cached keyed by path, mtime and page index when a cache is provided.
type PDFSource struct {
	path     string
	maxPages int
	cache    cache.Cache
	verbose  bool
}

// NewPDFSource creates a source for the given file. maxPages caps how far
// into the document extraction goes; a nil cache disables caching.
func NewPDFSource(path string, maxPages int, c cache.Cache, verbose bool) *PDFSource {
	if maxPages <= 0 {
		maxPages = 100
	}
	return &PDFSource{
		path:     path,
		maxPages: maxPages,
		cache:    c,
		verbose:  verbose,
	}
}

// Pages extracts text for every page up to the configured maximum.
func (s *PDFSource) Pages() ([]model.PageText, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	mtime := info.ModTime().Unix()

	f, reader, err := pdf.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	numPages := reader.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", s.path)
	}
	if numPages > s.maxPages {
		numPages = s.maxPages
	}

	pages := make([]model.PageText, 0, numPages)
	for i := 1; i <= numPages; i++ {
		key := cache.PageKey(s.path, mtime, i)
		if s.cache != nil {
			if data, found := s.cache.Get(key); found {
				pages = append(pages, model.PageText{PageIndex: i, RawText: string(data)})
				continue
			}
		}

		text := s.extractPage(reader, i)
		if s.cache != nil {
			_ = s.cache.Set(key, []byte(text), 0)
		}
		pages = append(pages, model.PageText{PageIndex: i, RawText: text})
	}

	return pages, nil
}

// extractPage pulls the text of a single page. Row-wise extraction keeps
// the table structure; plain text is the fallback. A page that resists
// both comes back empty, which the scanner treats as "target absent".
func (s *PDFSource) extractPage(reader *pdf.Reader, pageNum int) string {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		text, plainErr := page.GetPlainText(nil)
		if plainErr != nil {
			if s.verbose {
				fmt.Fprintf(os.Stderr, "page %d: text extraction failed: %v\n", pageNum, plainErr)
			}
			return ""
		}
		return strings.TrimSpace(text)
	}

	var builder strings.Builder
	for _, row := range rows {
		var rowText strings.Builder
		for _, word := range row.Content {
			rowText.WriteString(word.S)
		}
		line := strings.TrimSpace(rowText.String())
		if line != "" {
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}
	return strings.TrimRight(builder.String(), "\n")
}
