package diagfmt

import (
	"encoding/json"
	"io"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
)

type jsonNote struct {
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	File     string     `json:"file"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// DiagnosticsOutput is one file's worth of rendered diagnostics, the top
// level of JSON's per-file map.
type DiagnosticsOutput struct {
	Path        string           `json:"path"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// Render builds the JSON-ready form of bag's diagnostics for one file,
// resolving each span through sm.
func Render(bag *diag.Bag, sm *sourcemap.SourceMap, opts JSONOpts) []jsonDiagnostic {
	if bag == nil {
		return nil
	}
	out := make([]jsonDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		jd := jsonDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			File:     sm.Get(d.Primary.Buffer).FormatPath(opts.PathMode.string(), sm.BaseDir()),
		}
		if opts.IncludePositions {
			loc := sm.ReportedLocation(d.Primary.Buffer, d.Primary.Start)
			jd.Line, jd.Col = loc.Line, loc.Col
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				note := jsonNote{Message: n.Msg}
				if opts.IncludePositions {
					loc := sm.ReportedLocation(n.Span.Buffer, n.Span.Start)
					note.File = sm.Get(n.Span.Buffer).FormatPath(opts.PathMode.string(), sm.BaseDir())
					note.Line, note.Col = loc.Line, loc.Col
				}
				jd.Notes = append(jd.Notes, note)
			}
		}
		out = append(out, jd)
	}
	return out
}

// JSON writes output as an indented JSON object to w.
func JSON(w io.Writer, output map[string]DiagnosticsOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
