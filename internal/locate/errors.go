package locate

import "fmt"

// TargetNotFoundError reports that the target number does not occur
// anywhere in the document. This is a property of the bill, not a failure
// of the boundary search, and is surfaced separately so callers can tell
// the two apart.
type TargetNotFoundError struct {
	Number       string
	PagesScanned int
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target number %q not found in any of %d pages", e.Number, e.PagesScanned)
}

// LocalizationFailureError reports that boundary refinement exceeded its
// iteration ceiling without converging. No partial range accompanies it:
// a silently wrong boundary corrupts everything downstream, so the
// locator fails loudly instead. The fields carry enough context to
// diagnose a bill layout the classifier does not understand.
type LocalizationFailureError struct {
	Boundary   string // "start" or "end"
	Page       int    // Page of the last guess
	Offset     int    // Character offset of the last guess within its page
	Iterations int    // Refinement iterations consumed
}

func (e *LocalizationFailureError) Error() string {
	return fmt.Sprintf("failed to localize %s boundary after %d iterations (last guess page %d offset %d)",
		e.Boundary, e.Iterations, e.Page, e.Offset)
}
