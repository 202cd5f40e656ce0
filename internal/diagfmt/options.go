// Package diagfmt renders a diag.Bag for human and machine consumption:
// a colorized caret-annotated listing for a terminal, and JSON/SARIF for
// editors and CI. None of it touches sourcemap or diag internals beyond
// their public accessors, so a caller can render the same Bag three ways
// without re-running any phase.
package diagfmt

// PathMode selects how a diagnostic's file path is displayed.
type PathMode uint8

const (
	// PathModeAuto shows a short path as-is and shortens a long absolute
	// one to its basename.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) string() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	// Color enables lipgloss/fatih-color styling; the caller decides this
	// from a TTY check (see internal/diagfmt's x/term wiring note in
	// DESIGN.md), never from diagfmt itself.
	Color bool
	// Context is carried for callers but not read by the renderers: Pretty
	// always shows only the primary span's own line, whatever its value.
	Context   int8
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	IncludeNotes     bool
}

// SarifRunMeta names the tool that produced a SARIF run.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
