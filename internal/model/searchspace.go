package model

import "fmt"

// SearchSpace is the resolved page/offset range believed to contain the
// target number's call records. Offsets are character offsets within the
// boundary pages, so a range can begin or end mid-page when a page is
// shared with a neighboring number's block.
//
// The range is built and mutated only by the locator; once returned it is
// read-only input for the extractor.
type SearchSpace struct {
	StartPage   int `json:"start_page"`
	StartOffset int `json:"start_offset"`
	EndPage     int `json:"end_page"`
	EndOffset   int `json:"end_offset"`
}

// Contains reports whether the given page/offset falls inside the range.
func (s SearchSpace) Contains(page, offset int) bool {
	if page < s.StartPage || page > s.EndPage {
		return false
	}
	if page == s.StartPage && offset < s.StartOffset {
		return false
	}
	if page == s.EndPage && offset >= s.EndOffset {
		return false
	}
	return true
}

// Valid reports whether the range satisfies its ordering invariant:
// start_page <= end_page, and start_offset < end_offset when both
// boundaries land on the same page.
func (s SearchSpace) Valid() bool {
	if s.StartPage > s.EndPage {
		return false
	}
	if s.StartPage == s.EndPage && s.StartOffset >= s.EndOffset {
		return false
	}
	return true
}

func (s SearchSpace) String() string {
	return fmt.Sprintf("pages %d:%d through %d:%d", s.StartPage, s.StartOffset, s.EndPage, s.EndOffset)
}
