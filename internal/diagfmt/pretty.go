package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
)

var (
	styleError = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleWarn  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	styleInfo  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleCode  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleCaret = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	stylePath  = lipgloss.NewStyle().Bold(true)
)

func severityStyle(sev diag.Severity) lipgloss.Style {
	switch sev {
	case diag.SevError:
		return styleError
	case diag.SevWarning:
		return styleWarn
	default:
		return styleInfo
	}
}

// Pretty writes bag's diagnostics (expected already Sort()-ed) to w as
// `<path>:<line>:<col>: SEVERITY CODE: message`, each followed by its
// source line with a caret (`^~~~`) under the primary span, and — when
// opts.ShowNotes — its Notes rendered the same way underneath.
func Pretty(w io.Writer, bag *diag.Bag, sm *sourcemap.SourceMap, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeEntry(w, d.Severity, d.Code, d.Message, d.Primary, sm, opts)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintln(w)
				writeEntry(w, diag.SevInfo, 0, n.Msg, n.Span, sm, opts)
			}
		}
	}
}

func writeEntry(w io.Writer, sev diag.Severity, code diag.Code, message string, span sourcemap.Span, sm *sourcemap.SourceMap, opts PrettyOpts) {
	loc := sm.ReportedLocation(span.Buffer, span.Start)
	path := loc.File
	if opts.PathMode != PathModeAuto || path == "" {
		path = sm.Get(span.Buffer).FormatPath(opts.PathMode.string(), sm.BaseDir())
	}

	sevText := sev.String()
	codeText := ""
	if code != 0 {
		codeText = " " + code.ID()
	}
	header := fmt.Sprintf("%s:%d:%d: %s%s: %s", path, loc.Line, loc.Col, sevText, codeText, message)
	if opts.Color {
		header = fmt.Sprintf("%s:%d:%d: %s%s: %s", stylePath.Render(path), loc.Line, loc.Col,
			severityStyle(sev).Render(sevText), styleCode.Render(codeText), message)
	}
	fmt.Fprintln(w, header)

	line := sm.Get(span.Buffer).GetLine(loc.Line)
	if line == "" {
		return
	}
	fmt.Fprintln(w, expandTabs(line))

	col := int(loc.Col)
	if col < 1 {
		col = 1
	}
	width := int(span.Len())
	if width < 1 {
		width = 1
	}
	prefix := line
	if col-1 <= len(prefix) {
		prefix = prefix[:col-1]
	}
	pad := runewidth.StringWidth(expandTabs(prefix))
	caret := strings.Repeat(" ", pad) + "^" + strings.Repeat("~", max(0, width-1))
	if opts.Color {
		caret = strings.Repeat(" ", pad) + styleCaret.Render("^"+strings.Repeat("~", max(0, width-1)))
	}
	fmt.Fprintln(w, caret)
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", "    ")
}
