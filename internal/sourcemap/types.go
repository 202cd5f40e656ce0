// Package sourcemap implements the source map (component A): it assigns
// stable buffer IDs to ingested text and translates (buffer, offset) pairs
// into file/line/column, honoring `line directive overrides installed by
// the preprocessor.
package sourcemap

type (
	// BufferID identifies an immutable source buffer within a SourceMap.
	BufferID uint32
	// BufferFlags records how a buffer was ingested.
	BufferFlags uint8
)

// NoBufferID is the sentinel used by synthesized tokens (see token.Missing).
const NoBufferID BufferID = 0

const (
	// BufferVirtual marks a buffer that did not come from disk (predefine
	// text, ScriptSession snippets, in-memory test fixtures).
	BufferVirtual BufferFlags = 1 << iota
	// BufferHadBOM marks a buffer whose leading UTF-8 BOM was stripped on
	// ingestion; the lexer raises the diagnostic for it (§4.D: "reject
	// BOMs with a diagnostic then continue").
	BufferHadBOM
	// BufferNormalizedCRLF marks a buffer whose CRLF sequences were
	// folded to LF before lexing.
	BufferNormalizedCRLF
)

// Buffer holds the content and derived indices for one immutable source
// buffer.
type Buffer struct {
	ID      BufferID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   BufferFlags

	// lineDirectives holds the installed `line overrides in installation
	// order and is consulted by ReportedLocation (not Resolve) to compute
	// the reported (possibly overridden) file name and line number.
	lineDirectives []lineDirective
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// ReportedLocation is the location a diagnostic or __LINE__/__FILE__
// expansion should display: it may differ from the buffer's physical
// coordinates when a `line directive is in effect (§4.E).
type ReportedLocation struct {
	File string
	Line uint32
	Col  uint32
}

type lineDirective struct {
	At   uint32 // buffer offset the override becomes active at
	Line uint32 // line number to report for the line containing At
	File string // reported file name from At onward; "" keeps the physical path
}
