package locate

import (
	"strings"
	"testing"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/scan"
)

func newTestClassifier() *SectionClassifier {
	scanner := scan.NewScanner(testTarget, testKey, nil)
	return NewSectionClassifier(scanner, 2)
}

func offsetOf(p model.PageText, substr string) int {
	i := strings.Index(p.RawText, substr)
	if i < 0 {
		panic("substring not on page: " + substr)
	}
	return i
}

func TestSectionClassifier_OwnershipByNearestKey(t *testing.T) {
	p := page(1,
		section(testNeighbor, rows(3)...),
		section(testTarget, rows(2)...),
	)
	pages := []model.PageText{p}
	c := newTestClassifier()

	tests := []struct {
		name   string
		offset int
		want   Classification
	}{
		{"neighbor header", offsetOf(p, testNeighbor), Neighbor},
		{"neighbor record", offsetOf(p, "11/02"), Neighbor},
		{"target header", offsetOf(p, testTarget), Target},
		{"target key row", strings.LastIndex(p.RawText, testKey), Target},
		{"target record", strings.LastIndex(p.RawText, "11/01"), Target},
	}
	for _, tt := range tests {
		if got := c.Classify(pages, 1, tt.offset); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestSectionClassifier_HeaderWindowBelongsToNextSection(t *testing.T) {
	// The "Wireless statement" line opening the target's section sits
	// between the neighbor's records and the target's key. It belongs to
	// the target.
	p := page(1,
		section(testNeighbor, rows(3)...),
		section(testTarget, rows(2)...),
	)
	c := newTestClassifier()

	off := strings.LastIndex(p.RawText, "Wireless statement")
	if got := c.Classify([]model.PageText{p}, 1, off); got != Target {
		t.Errorf("header window line: got %s, want target", got)
	}
}

func TestSectionClassifier_BlankLineIsAmbiguous(t *testing.T) {
	raw := strings.Join(section(testTarget, rows(2)...), "\n") + "\n\n" + "Page 1 of 9"
	p := model.PageText{PageIndex: 1, RawText: raw}
	c := newTestClassifier()

	blank := strings.Index(raw, "\n\n") + 1
	if got := c.Classify([]model.PageText{p}, 1, blank); got != Ambiguous {
		t.Errorf("blank line: got %s, want ambiguous", got)
	}
}

func TestSectionClassifier_ContinuationPage(t *testing.T) {
	// Page 2 holds only record rows; its owner is the last section opened
	// on page 1.
	pages := []model.PageText{
		page(1, section(testNeighbor, rows(2)...), section(testTarget, rows(4)...)),
		page(2, rows(6)),
	}
	c := newTestClassifier()

	if got := c.Classify(pages, 2, 0); got != Target {
		t.Errorf("continuation of target section: got %s, want target", got)
	}

	pages[0] = page(1, section(testTarget, rows(2)...), section(testNeighbor, rows(4)...))
	c = newTestClassifier()
	if got := c.Classify(pages, 2, 0); got != Neighbor {
		t.Errorf("continuation of neighbor section: got %s, want neighbor", got)
	}
}

func TestSectionClassifier_NoKeysAnywhere(t *testing.T) {
	pages := []model.PageText{
		{PageIndex: 1, RawText: "Account summary\nTotal charges 42.17"},
	}
	c := newTestClassifier()

	if got := c.Classify(pages, 1, 0); got != Ambiguous {
		t.Errorf("keyless document: got %s, want ambiguous", got)
	}
}

func TestSectionClassifier_UnknownPage(t *testing.T) {
	pages := []model.PageText{page(1, section(testTarget, rows(2)...))}
	c := newTestClassifier()

	if got := c.Classify(pages, 9, 0); got != Ambiguous {
		t.Errorf("missing page: got %s, want ambiguous", got)
	}
}
