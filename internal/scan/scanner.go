// Package scan builds per-page key indices: where the section key token
// and the target number occur in a page's text. The locator probes the
// same handful of pages over and over while refining boundaries, so every
// index is computed once and memoized.
package scan

import (
	"encoding/json"
	"strings"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/cache"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
)

// Scanner locates occurrences of the target number and the section key
// token on each page.
type Scanner struct {
	number string
	key    string
	cache  cache.Cache
}

// NewScanner creates a scanner for the given target number and section
// key token. A nil cache disables memoization.
func NewScanner(number, key string, c cache.Cache) *Scanner {
	return &Scanner{
		number: number,
		key:    key,
		cache:  c,
	}
}

// Number returns the target number this scanner searches for.
func (s *Scanner) Number() string {
	return s.number
}

// Key returns the section key token this scanner searches for.
func (s *Scanner) Key() string {
	return s.key
}

// Scan indexes every page and returns the mapping by page index.
func (s *Scanner) Scan(pages []model.PageText) map[int]model.KeyIndex {
	indices := make(map[int]model.KeyIndex, len(pages))
	for _, page := range pages {
		indices[page.PageIndex] = s.Index(page)
	}
	return indices
}

// Index returns the key index for one page, computing it at most once.
// An empty page yields an index with zero occurrences, not an error.
func (s *Scanner) Index(page model.PageText) model.KeyIndex {
	cacheKey := cache.IndexKey(s.number, s.key, page.PageIndex)
	if s.cache != nil {
		if data, found := s.cache.Get(cacheKey); found {
			var idx model.KeyIndex
			if err := json.Unmarshal(data, &idx); err == nil {
				return idx
			}
		}
	}

	idx := model.KeyIndex{
		PageIndex: page.PageIndex,
		Keys:      findAll(page.RawText, s.key),
		Hits:      findAll(page.RawText, s.number),
	}

	if s.cache != nil {
		if data, err := json.Marshal(idx); err == nil {
			_ = s.cache.Set(cacheKey, data, 0)
		}
	}
	return idx
}

// findAll returns the offsets of every occurrence of substr in text, in
// ascending order.
func findAll(text, substr string) []int {
	if substr == "" || text == "" {
		return nil
	}
	var offsets []int
	start := 0
	for {
		i := strings.Index(text[start:], substr)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, start+i)
		start += i + len(substr)
	}
}
