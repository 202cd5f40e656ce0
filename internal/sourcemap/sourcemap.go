package sourcemap

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// SourceMap owns every ingested buffer and is the sole authority translating
// (buffer, offset) coordinates to file/line/column, including the effect of
// any `line directives installed via AddLineDirective.
type SourceMap struct {
	buffers []Buffer
	index   map[string]BufferID // normalized path -> most recent BufferID
	baseDir string
}

// New creates an empty SourceMap.
func New() *SourceMap {
	return &SourceMap{
		buffers: make([]Buffer, 1, 8), // index 0 reserved: NoBufferID
		index:   make(map[string]BufferID),
	}
}

// NewWithBase creates an empty SourceMap rooted at baseDir for relative-path
// formatting.
func NewWithBase(baseDir string) *SourceMap {
	sm := New()
	sm.baseDir = baseDir
	return sm
}

func (sm *SourceMap) SetBaseDir(dir string) { sm.baseDir = dir }

func (sm *SourceMap) BaseDir() string {
	if sm.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return sm.baseDir
}

// Add stores content under path and returns a fresh BufferID. A path already
// present gets a new BufferID; the index is updated to point at the latest
// one (re-including the same file, e.g. via a second `include, produces a
// distinct buffer).
func (sm *SourceMap) Add(path string, content []byte, flags BufferFlags) BufferID {
	hash := sha256.Sum256(content)
	normalizedPath := normalizePath(path)

	n, err := safecast.Conv[uint32](len(sm.buffers))
	if err != nil {
		panic(fmt.Errorf("sourcemap: buffer count overflow: %w", err))
	}
	id := BufferID(n)
	sm.buffers = append(sm.buffers, Buffer{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    hash,
		Flags:   flags,
	})
	sm.index[normalizedPath] = id
	return id
}

// AddVirtual adds an in-memory buffer (predefine text, ScriptSession
// snippets, test fixtures) not backed by a file. A leading BOM is stripped
// and flagged with BufferHadBOM, as Load does.
func (sm *SourceMap) AddVirtual(name string, content []byte) BufferID {
	content, hadBOM := removeBOM(content)
	flags := BufferVirtual
	if hadBOM {
		flags |= BufferHadBOM
	}
	return sm.Add(name, content, flags)
}

// Load reads a file from disk, normalizes CRLF, and detects (but does not
// silently discard the significance of) a leading BOM: the BOM bytes are
// stripped from the buffer content so the lexer never sees them as source
// text, but BufferHadBOM is set so the lexer can raise the required
// diagnostic (§4.D) before continuing.
func (sm *SourceMap) Load(path string) (BufferID, error) {
	// #nosec G304 -- path is supplied by the caller (CLI argument or resolved include)
	content, err := os.ReadFile(path)
	if err != nil {
		return NoBufferID, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	var flags BufferFlags
	if hadBOM {
		flags |= BufferHadBOM
	}
	if hadCRLF {
		flags |= BufferNormalizedCRLF
	}
	return sm.Add(path, content, flags), nil
}

// Get returns the buffer for id. Panics on an out-of-range id, mirroring the
// arena convention used throughout this repository: ids are only ever
// produced by this package's own Add/Load/AddVirtual.
func (sm *SourceMap) Get(id BufferID) *Buffer {
	return &sm.buffers[id]
}

// GetLatest returns the most recently added buffer for path.
func (sm *SourceMap) GetLatest(path string) (BufferID, bool) {
	id, ok := sm.index[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into physical (unshifted by any `line directive)
// line/column positions.
func (sm *SourceMap) Resolve(span Span) (start, end LineCol) {
	b := sm.Get(span.Buffer)
	return toLineCol(b.LineIdx, span.Start), toLineCol(b.LineIdx, span.End)
}

// ReportedLocation returns the location that diagnostics and __LINE__ /
// __FILE__ expansions should display for off, applying whatever `line
// directive is active at that offset (§4.A, §4.E).
func (sm *SourceMap) ReportedLocation(buf BufferID, off uint32) ReportedLocation {
	b := sm.Get(buf)
	lc := toLineCol(b.LineIdx, off)
	file := b.Path
	line := lc.Line
	if d, ok := activeLineDirective(b.lineDirectives, off); ok {
		if d.File != "" {
			file = d.File
		}
		// The directive's declared line number applies to the *first*
		// physical line following it; subsequent physical lines are
		// counted up from there.
		physicalLineAtDirective := toLineCol(b.LineIdx, d.At).Line
		line = d.Line + (lc.Line - physicalLineAtDirective)
	}
	return ReportedLocation{File: file, Line: line, Col: lc.Col}
}

// AddLineDirective installs an override, effective from offset at (inclusive)
// through the next override or end-of-buffer, that changes the reported file
// name and/or line number for locations in that range. Passing file == ""
// keeps whatever file name was previously in effect (a `line directive that
// only changes the line number).
func (sm *SourceMap) AddLineDirective(buf BufferID, at uint32, line uint32, file string) {
	b := sm.Get(buf)
	b.lineDirectives = append(b.lineDirectives, lineDirective{At: at, Line: line, File: file})
}

func activeLineDirective(ds []lineDirective, off uint32) (lineDirective, bool) {
	var best lineDirective
	found := false
	for _, d := range ds {
		if d.At <= off && (!found || d.At > best.At) {
			best = d
			found = true
		}
	}
	return best, found
}

// GetLine returns the 1-based line's text, or "" if it does not exist.
func (b *Buffer) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	lenLineIdx, err := safecast.Conv[uint32](len(b.LineIdx))
	if err != nil {
		panic(fmt.Errorf("sourcemap: line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(b.Content))
	if err != nil {
		panic(fmt.Errorf("sourcemap: content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = b.LineIdx[lineNum-2] + 1
	default:
		return ""
	}
	if (lineNum - 1) < lenLineIdx {
		end = b.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(b.Content[start:end])
}

// FormatPath renders the buffer's path per mode: "absolute", "relative",
// "basename", or "auto" (short/relative paths as-is, long absolute ones as
// basename).
func (b *Buffer) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(b.Path); err == nil {
			return abs
		}
		return b.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := filepath.Rel(baseDir, b.Path); err == nil {
			return rel
		}
		return b.Path
	case "basename":
		return filepath.Base(b.Path)
	case "auto":
		if len(b.Path) < 40 || !filepath.IsAbs(b.Path) {
			return b.Path
		}
		return filepath.Base(b.Path)
	default:
		return b.Path
	}
}
