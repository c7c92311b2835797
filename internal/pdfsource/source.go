// Package pdfsource turns a PDF phone bill into the per-page plain text
// the rest of the pipeline consumes. Nothing outside this package touches
// the PDF binary structure.
package pdfsource

import (
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

// Source produces the finite, restartable sequence of per-page text for
// one document. Pages are 1-indexed; an unreadable page yields an empty
// string rather than an error.
type Source interface {
	Pages() ([]model.PageText, error)
}

// StaticSource serves a fixed set of pages. Used in tests and anywhere a
// document is already in memory.
type StaticSource struct {
	pages []model.PageText
}

// NewStaticSource creates a source over pre-extracted page text. Page
// indices are assigned sequentially from 1 when missing.
func NewStaticSource(text ...string) *StaticSource {
	pages := make([]model.PageText, len(text))
	for i, t := range text {
		pages[i] = model.PageText{PageIndex: i + 1, RawText: t}
	}
	return &StaticSource{pages: pages}
}

// Pages returns the fixed page sequence
func (s *StaticSource) Pages() ([]model.PageText, error) {
	out := make([]model.PageText, len(s.pages))
	copy(out, s.pages)
	return out, nil
}
