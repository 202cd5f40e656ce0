package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"svfront/internal/diag"
	"svfront/internal/diagfmt"
	"svfront/internal/sourcemap"
)

func fixtureBag(t *testing.T) (*diag.Bag, *sourcemap.SourceMap, sourcemap.BufferID) {
	t.Helper()
	sm := sourcemap.New()
	id := sm.AddVirtual("m.sv", []byte("module m;\n  wire x;\nendmodule\n"))
	bag := diag.NewBag(8)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.IOLoadFileError,
		Message:  "something went wrong",
		Primary:  sourcemap.Span{Buffer: id, Start: 13, End: 14},
		Notes: []diag.Note{
			{Msg: "declared here", Span: sourcemap.Span{Buffer: id, Start: 13, End: 14}},
		},
	})
	return bag, sm, id
}

func TestPrettyWritesHeaderSourceLineAndCaret(t *testing.T) {
	bag, sm, _ := fixtureBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, sm, diagfmt.PrettyOpts{})

	out := buf.String()
	if !strings.Contains(out, "ERROR") {
		t.Errorf("expected severity in output, got %q", out)
	}
	if !strings.Contains(out, "wire x;") {
		t.Errorf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret in output, got %q", out)
	}
}

func TestPrettyShowsNotesWhenRequested(t *testing.T) {
	bag, sm, _ := fixtureBag(t)
	var without, with bytes.Buffer
	diagfmt.Pretty(&without, bag, sm, diagfmt.PrettyOpts{ShowNotes: false})
	diagfmt.Pretty(&with, bag, sm, diagfmt.PrettyOpts{ShowNotes: true})

	if strings.Contains(without.String(), "declared here") {
		t.Error("did not expect note text without ShowNotes")
	}
	if !strings.Contains(with.String(), "declared here") {
		t.Error("expected note text with ShowNotes")
	}
}

func TestPrettyOnNilBagWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, nil, sourcemap.New(), diagfmt.PrettyOpts{})
	if buf.Len() != 0 {
		t.Errorf("expected no output for a nil bag, got %q", buf.String())
	}
}

func TestShortOmitsSourceContext(t *testing.T) {
	bag, sm, _ := fixtureBag(t)
	var buf bytes.Buffer
	diagfmt.Short(&buf, bag, sm, diagfmt.PrettyOpts{})

	out := buf.String()
	if strings.Contains(out, "wire x;") {
		t.Errorf("Short should not print source context, got %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one line per diagnostic, got %q", out)
	}
}

func TestRenderAndJSONRoundTrip(t *testing.T) {
	bag, sm, _ := fixtureBag(t)
	rendered := diagfmt.Render(bag, sm, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	if len(rendered) != 1 {
		t.Fatalf("got %d rendered diagnostics, want 1", len(rendered))
	}

	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, map[string]diagfmt.DiagnosticsOutput{"m.sv": {Path: "m.sv", Diagnostics: rendered}}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"severity"`) || !strings.Contains(out, "something went wrong") {
		t.Errorf("unexpected JSON output: %q", out)
	}
}

func TestSARIFProducesAValidDocumentShape(t *testing.T) {
	bag, sm, _ := fixtureBag(t)
	var buf bytes.Buffer
	err := diagfmt.SARIF(&buf, map[string]*diag.Bag{"m.sv": bag}, sm, diagfmt.SarifRunMeta{ToolName: "svfront", ToolVersion: "0.1.0"})
	if err != nil {
		t.Fatalf("SARIF: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"$schema"`, `"runs"`, `"ruleId"`, "something went wrong"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected SARIF output to contain %q, got %q", want, out)
		}
	}
}

func TestProgressUpdateWritesCountsAndPath(t *testing.T) {
	var buf bytes.Buffer
	p := diagfmt.NewProgress(&buf)
	p.Update(1, 2, "a.sv")
	p.Done()

	out := buf.String()
	if !strings.Contains(out, "1/") && !strings.Contains(out, "  1") {
		t.Errorf("expected the done count in output, got %q", out)
	}
	if !strings.Contains(out, "a.sv") {
		t.Errorf("expected the current path in output, got %q", out)
	}
}

func TestNilProgressIsANoOp(t *testing.T) {
	var p *diagfmt.Progress
	p.Update(1, 2, "a.sv")
	p.Done()
}
