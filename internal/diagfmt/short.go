package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
)

var (
	shortError = color.New(color.FgRed, color.Bold)
	shortWarn  = color.New(color.FgYellow, color.Bold)
	shortInfo  = color.New(color.FgCyan, color.Bold)
)

func shortColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return shortError
	case diag.SevWarning:
		return shortWarn
	default:
		return shortInfo
	}
}

// Short writes one line per diagnostic, `<path>:<line>:<col>: SEVERITY
// CODE: message` with no source context — the non-interactive counterpart
// to Pretty's caret-annotated listing, for piping into another tool's log.
func Short(w io.Writer, bag *diag.Bag, sm *sourcemap.SourceMap, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		loc := sm.ReportedLocation(d.Primary.Buffer, d.Primary.Start)
		path := sm.Get(d.Primary.Buffer).FormatPath(opts.PathMode.string(), sm.BaseDir())
		sevText := d.Severity.String()
		if opts.Color {
			sevText = shortColor(d.Severity).Sprint(sevText)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, loc.Line, loc.Col, sevText, d.Code.ID(), d.Message)
	}
}
