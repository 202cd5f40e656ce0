package diag

import (
	"svfront/internal/sourcemap"
)

// Note attaches secondary context (e.g. "argument declared here") to a
// Diagnostic.
type Note struct {
	Span sourcemap.Span
	Msg  string
}

// FixEdit is one concrete text replacement.
type FixEdit struct {
	Span    sourcemap.Span
	NewText string
}

// Fix is a possible automated correction made of one or more edits.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is the unit of the diagnostics sink (component B): every
// rejection produced anywhere in the pipeline carries a source location and
// a code.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  sourcemap.Span
	Notes    []Note
	Fixes    []Fix
}
