// Package locate finds the page/offset range holding the target number's
// call records. The search is a directional guess refinement over
// discrete text offsets: classify the text at the current guess, move the
// guess against the sign of the error, coarse page-sized strides first,
// then line-granular bisection once the boundary is bracketed. There is
// no exact layout model, only the classification oracle, so the loop
// carries a hard iteration ceiling and fails loudly when it trips.
package locate

import (
	"fmt"
	"os"

	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/model"
	"github.com/technicallyharwell/parse-spammers-from-pdf-phone-bill/internal/scan"
)

// DefaultMaxIterations bounds the refinement loop across both boundaries.
const DefaultMaxIterations = 500

const unknown = 1 << 30

// Locator owns the search space while it is being refined. It is not safe
// for concurrent use; concurrent documents each get their own Locator.
type Locator struct {
	scanner       *scan.Scanner
	classifier    Classifier
	maxIterations int
	verbose       bool

	iterations int
}

// NewLocator creates a locator. maxIterations <= 0 selects the default
// ceiling of 500.
func NewLocator(scanner *scan.Scanner, classifier Classifier, maxIterations int, verbose bool) *Locator {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Locator{
		scanner:       scanner,
		classifier:    classifier,
		maxIterations: maxIterations,
		verbose:       verbose,
	}
}

// Iterations reports how many refinement iterations the last Locate call
// consumed. Exposed for diagnostics.
func (l *Locator) Iterations() int {
	return l.iterations
}

// Locate resolves the search space for the target number. It returns
// *TargetNotFoundError when the number occurs nowhere in the document and
// *LocalizationFailureError when refinement exceeds the iteration
// ceiling. On success, every record of the target present in the text
// lies within the returned range; boundary pages may still contain
// fragments of neighboring blocks, which the extractor filters record by
// record.
func (l *Locator) Locate(pages []model.PageText) (model.SearchSpace, error) {
	l.iterations = 0
	if len(pages) == 0 {
		return model.SearchSpace{}, &TargetNotFoundError{Number: l.scanner.Number(), PagesScanned: 0}
	}

	indices := l.scanner.Scan(pages)

	firstPi, lastPi := -1, -1
	for pi, page := range pages {
		if indices[page.PageIndex].HasHits() {
			if firstPi < 0 {
				firstPi = pi
			}
			lastPi = pi
		}
	}
	if firstPi < 0 {
		return model.SearchSpace{}, &TargetNotFoundError{Number: l.scanner.Number(), PagesScanned: len(pages)}
	}

	doc := newDocument(pages)

	// The first and last occurrences sit in the target's section headers,
	// so their lines are in-block anchors for the two refinements.
	firstHits := indices[pages[firstPi].PageIndex].Hits
	lastHits := indices[pages[lastPi].PageIndex].Hits
	startAnchor := doc.lineAt(firstPi, firstHits[0])
	endAnchor := doc.lineAt(lastPi, lastHits[len(lastHits)-1])

	if l.verbose {
		fmt.Fprintf(os.Stderr, "bracketed target to pages %d..%d\n",
			pages[firstPi].PageIndex, pages[lastPi].PageIndex)
	}

	startLine, err := l.refineStart(doc, startAnchor)
	if err != nil {
		return model.SearchSpace{}, err
	}
	endLine, err := l.refineEnd(doc, endAnchor)
	if err != nil {
		return model.SearchSpace{}, err
	}

	space := model.SearchSpace{
		StartPage:   doc.pageNumber(startLine),
		StartOffset: doc.lineStartOffset(startLine),
		EndPage:     doc.pageNumber(endLine),
		EndOffset:   doc.lineEndOffset(endLine),
	}
	if !space.Valid() {
		return model.SearchSpace{}, &LocalizationFailureError{
			Boundary:   "end",
			Page:       space.EndPage,
			Offset:     space.EndOffset,
			Iterations: l.iterations,
		}
	}

	if l.verbose {
		fmt.Fprintf(os.Stderr, "converged on %s after %d iterations\n", space, l.iterations)
	}
	return space, nil
}

// refineStart converges on the first line of the target's block.
//
// floor is the highest position known to precede the block, ceil the
// lowest position known to be inside it. A target verdict pulls ceil
// down, a neighbor verdict pushes floor up, and the boundary is found
// when the two meet. While floor is unknown the guess strides a whole
// page at a time; once both bounds exist the gap is bisected. Structural
// noise never anchors a bound: during the coarse phase it is stepped
// over in the direction of travel, during bisection the nearest line
// with ownership evidence is classified in its place.
func (l *Locator) refineStart(doc *document, anchor int) (int, error) {
	floor := -1
	ceil := unknown
	guess := anchor

	for {
		if err := l.tick("start", doc, guess); err != nil {
			return 0, err
		}
		c := l.classify(doc, guess)

		switch c {
		case Target:
			if guess < ceil {
				ceil = guess
			}
		case Neighbor:
			if guess > floor && guess < ceil {
				floor = guess
			}
		case Ambiguous:
			// Blank lines carry no ownership evidence: a page-break
			// artifact can sit inside the block. Probe toward the floor
			// for the first line that does; only its verdict moves a
			// bound. A run of noise reaching the floor holds no records,
			// so the floor closes over it.
			if floor >= 0 && ceil != unknown && guess > floor && guess < ceil {
				j := guess - 1
				for j > floor {
					if err := l.tick("start", doc, j); err != nil {
						return 0, err
					}
					if c = l.classify(doc, j); c != Ambiguous {
						break
					}
					j--
				}
				switch {
				case j == floor:
					floor = guess
				case c == Target:
					ceil = j
				default:
					floor = j
				}
			}
		}

		if ceil != unknown && ceil-floor == 1 {
			return ceil, nil
		}

		switch {
		case ceil == unknown:
			// No in-block evidence yet: probe later positions. A guess
			// pinned at the last line burns iterations until the ceiling
			// trips, which is the intended loud failure.
			guess = min(guess+1, doc.end())
		case floor < 0:
			// Coarse phase.
			if c == Ambiguous {
				if guess == 0 {
					floor = 0
				} else {
					guess--
				}
				continue
			}
			pi, _ := doc.split(ceil)
			next := doc.pageStart(pi)
			if next >= ceil {
				next = doc.pageStart(pi - 1)
			}
			guess = next
		default:
			guess = (floor + ceil) / 2
		}
	}
}

// refineEnd converges on the last line of the target's block, mirroring
// refineStart: best is the highest position known to be inside the block,
// roof the lowest position known to follow it.
func (l *Locator) refineEnd(doc *document, anchor int) (int, error) {
	best := -1
	roof := doc.end() + 1
	guess := anchor

	for {
		if err := l.tick("end", doc, guess); err != nil {
			return 0, err
		}
		c := l.classify(doc, guess)

		switch c {
		case Target:
			if guess > best {
				best = guess
			}
		case Neighbor:
			if guess < roof && guess > best {
				roof = guess
			}
		case Ambiguous:
			// Mirror of the start refinement: probe toward the roof for
			// the first line with ownership evidence before moving any
			// bound, so a blank inside the block never truncates it.
			if best >= 0 && roof <= doc.end() && guess < roof && guess > best {
				j := guess + 1
				for j < roof {
					if err := l.tick("end", doc, j); err != nil {
						return 0, err
					}
					if c = l.classify(doc, j); c != Ambiguous {
						break
					}
					j++
				}
				switch {
				case j == roof:
					roof = guess
				case c == Target:
					best = j
				default:
					roof = j
				}
			}
		}

		if best >= 0 && roof-best == 1 {
			return best, nil
		}

		switch {
		case best < 0:
			guess = max(guess-1, 0)
		case roof == doc.end()+1:
			// Coarse phase: stride to the last line of the next page. The
			// block can outrun the last page the number is printed on when
			// a full page of records carries no repeated header.
			if c == Ambiguous {
				if guess == doc.end() {
					roof = doc.end()
				} else {
					guess++
				}
				continue
			}
			pi, _ := doc.split(best)
			next := doc.pageLast(pi)
			if next <= best {
				next = doc.pageLast(pi + 1)
			}
			guess = next
		default:
			guess = (best + roof) / 2
		}
	}
}

// tick consumes one refinement iteration, failing once the ceiling is
// exceeded.
func (l *Locator) tick(boundary string, doc *document, guess int) error {
	l.iterations++
	if l.iterations > l.maxIterations {
		return &LocalizationFailureError{
			Boundary:   boundary,
			Page:       doc.pageNumber(guess),
			Offset:     doc.lineStartOffset(guess),
			Iterations: l.maxIterations,
		}
	}
	return nil
}

func (l *Locator) classify(doc *document, guess int) Classification {
	return l.classifier.Classify(doc.pages, doc.pageNumber(guess), doc.lineStartOffset(guess))
}
