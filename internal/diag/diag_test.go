package diag_test

import (
	"testing"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
)

func TestBagAddRejectsOverCap(t *testing.T) {
	b := diag.NewBag(1)
	if !b.Add(diag.NewError(diag.SynUnexpectedToken, sourcemap.Span{}, "first")) {
		t.Fatal("expected the first Add within cap to succeed")
	}
	if b.Add(diag.NewError(diag.SynUnexpectedToken, sourcemap.Span{}, "second")) {
		t.Fatal("expected an Add past cap to be rejected")
	}
	if b.Len() != 1 {
		t.Fatalf("got len %d, want 1", b.Len())
	}
}

func TestBagHasErrorsAndHasWarnings(t *testing.T) {
	b := diag.NewBag(4)
	b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LexBadNumber})
	if b.HasErrors() {
		t.Error("did not expect HasErrors with only a warning")
	}
	if !b.HasWarnings() {
		t.Error("expected HasWarnings with a warning present")
	}
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynUnexpectedToken})
	if !b.HasErrors() {
		t.Error("expected HasErrors once an error is added")
	}
}

func TestBagMergeRaisesCapacityToFitBoth(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.Diagnostic{Code: diag.LexBadNumber})
	other := diag.NewBag(4)
	other.Add(diag.Diagnostic{Code: diag.SynUnexpectedToken})
	other.Add(diag.Diagnostic{Code: diag.SemaUnresolvedName})

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("got len %d, want 3", a.Len())
	}
	if a.Cap() < 3 {
		t.Fatalf("got cap %d, want at least 3", a.Cap())
	}
}

func TestBagSortOrdersByBufferThenOffsetThenSeverityDescending(t *testing.T) {
	b := diag.NewBag(4)
	b.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LexBadNumber, Primary: sourcemap.Span{Buffer: 1, Start: 20}})
	b.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SynUnexpectedToken, Primary: sourcemap.Span{Buffer: 1, Start: 10}})
	b.Add(diag.Diagnostic{Severity: diag.SevInfo, Code: diag.SemaUnresolvedName, Primary: sourcemap.Span{Buffer: 1, Start: 10}})

	b.Sort()
	items := b.Items()
	if items[0].Primary.Start != 10 || items[1].Primary.Start != 10 || items[2].Primary.Start != 20 {
		t.Fatalf("not sorted by offset: %+v", items)
	}
	if items[0].Severity < items[1].Severity {
		t.Fatalf("expected descending severity for ties at the same offset: %+v", items[:2])
	}
}

func TestBagDedupKeepsFirstOccurrence(t *testing.T) {
	b := diag.NewBag(4)
	sp := sourcemap.Span{Buffer: 1, Start: 5, End: 6}
	b.Add(diag.NewError(diag.SynUnexpectedToken, sp, "first"))
	b.Add(diag.NewError(diag.SynUnexpectedToken, sp, "duplicate"))
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("got len %d after Dedup, want 1", b.Len())
	}
	if b.Items()[0].Message != "first" {
		t.Fatalf("got message %q, want the first occurrence kept", b.Items()[0].Message)
	}
}

func TestCodeIDUsesThePhaseFamilyPrefix(t *testing.T) {
	cases := map[diag.Code]string{
		diag.LexBadNumber:       "LEX1004",
		diag.SynUnexpectedToken: "SYN2001",
		diag.SemaUnresolvedName: "SEM3002",
		diag.ConstEvalDivByZero: "CEV3502",
		diag.LimitMaxDiagnostics: "LIM9001",
		diag.ObsTimings:         "OBS9101",
		diag.IOLoadFileError:    "IO9201",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%v.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestCodeTitleFallsBackToUnknown(t *testing.T) {
	var unknownCode diag.Code = 65000
	if got := unknownCode.Title(); got != diag.UnknownCode.Title() {
		t.Errorf("got %q, want the unknown-code title", got)
	}
}

func TestReportBuilderEmitsExactlyOnce(t *testing.T) {
	bag := diag.NewBag(4)
	reporter := &diag.BagReporter{Bag: bag}
	b := diag.ReportError(reporter, diag.SynUnexpectedToken, sourcemap.Span{}, "bad token").
		WithNote(sourcemap.Span{}, "see here")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("got %d diagnostics, want Emit to be idempotent and produce exactly 1", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected the note to carry through to the emitted diagnostic")
	}
}

func TestDedupReporterSuppressesRepeatedReports(t *testing.T) {
	bag := diag.NewBag(4)
	inner := &diag.BagReporter{Bag: bag}
	r := diag.NewDedupReporter(inner)

	sp := sourcemap.Span{Buffer: 1, Start: 3, End: 4}
	r.Report(diag.SynUnexpectedToken, diag.SevError, sp, "oops", nil, nil)
	r.Report(diag.SynUnexpectedToken, diag.SevError, sp, "oops", nil, nil)
	r.Report(diag.SynUnexpectedToken, diag.SevError, sp, "different message", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("got %d reports through, want 2 (one suppressed duplicate)", bag.Len())
	}
}

func TestDiagnosticWithNoteAndWithFixCopyRatherThanMutate(t *testing.T) {
	base := diag.NewError(diag.SynUnexpectedToken, sourcemap.Span{}, "bad")
	withNote := base.WithNote(sourcemap.Span{}, "context")
	if len(base.Notes) != 0 {
		t.Fatal("expected WithNote to leave the receiver's Notes untouched")
	}
	if len(withNote.Notes) != 1 {
		t.Fatalf("got %d notes, want 1", len(withNote.Notes))
	}

	withFix := base.WithFix("rename", diag.FixEdit{NewText: "ok"})
	if len(base.Fixes) != 0 {
		t.Fatal("expected WithFix to leave the receiver's Fixes untouched")
	}
	if len(withFix.Fixes) != 1 || withFix.Fixes[0].Title != "rename" {
		t.Fatalf("got %+v", withFix.Fixes)
	}
}
