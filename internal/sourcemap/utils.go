package sourcemap

import (
	"path/filepath"
	"slices"
	"sort"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r untouched.
// Returns the (possibly identical) content and whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

// removeBOM detects a leading UTF-8 byte order mark via
// golang.org/x/text/encoding/unicode's BOM-expecting decoder rather than a
// hand-rolled three-byte comparison, and strips it when present. §4.D
// requires a diagnostic for any BOM, never silent acceptance, so the
// callers (Load and AddVirtual) are responsible for surfacing the returned
// bool; this function only detects and strips.
func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), content)
	if err != nil {
		return content, false
	}
	return out, len(out) != len(content)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

// toLineCol converts a byte offset to a 1-based line/column. idx is the
// count of newlines strictly before off, which is exactly the 0-based line
// number: a newline character itself is the last column of the line it
// terminates, not the first column of the next one.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	idx := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })

	var lineStart uint32
	if idx > 0 {
		lineStart = lineIdx[idx-1] + 1
	}
	return LineCol{Line: uint32(idx) + 1, Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
