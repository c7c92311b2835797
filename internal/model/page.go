package model

// PageText is the plain text of a single PDF page as produced by a page
// text source. Pages are 1-indexed and immutable once produced.
type PageText struct {
	PageIndex int    `json:"page_index"` // 1-based page number
	RawText   string `json:"raw_text"`   // Extracted plain text, lines separated by \n
}

// KeyIndex records where the structural signals occur on one page: the
// character offsets of the section key token and of the target number.
// A page with no text has both slices empty, which downstream code treats
// as "target absent", not as an error.
type KeyIndex struct {
	PageIndex int   `json:"page_index"`
	Keys      []int `json:"keys,omitempty"` // Offsets of the section key token
	Hits      []int `json:"hits,omitempty"` // Offsets of the target number
}

// HasHits reports whether the target number occurs anywhere on the page.
func (k KeyIndex) HasHits() bool {
	return len(k.Hits) > 0
}
