package lexer

import "svfront/internal/diag"

// ReporterAdapter is a convenience wrapper letting a caller collect lexical
// diagnostics into a diag.Bag without constructing a diag.BagReporter by
// hand at every call site.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns the diag.Reporter to pass as Options.Reporter.
func (r *ReporterAdapter) Reporter() diag.Reporter {
	return &diag.BagReporter{Bag: r.Bag}
}
