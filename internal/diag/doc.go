// Package diag defines the diagnostics sink shared by every phase of the
// front end (component B): lexer, preprocessor, parser, elaborator and
// constant evaluator all report through the same Diagnostic model.
//
// # Purpose
//
//   - Provide a deterministic, serialisable record of every rejection the
//     pipeline produces, tagged with a source location and a stable code.
//   - Offer light-weight producer-side helpers (Reporter, ReportBuilder) so
//     phases can emit diagnostics without depending on how they are stored
//     or rendered.
//   - Model fix suggestions as structured text edits a caller may choose to
//     apply, without this package performing any I/O itself.
//
// # Scope
//
// Package diag holds data and accumulation only. Rendering to a terminal or
// to JSON lives in internal/diagfmt; resolving `line directives and mapping
// spans to file/line/column lives in internal/sourcemap.
//
// # Data model
//
//   - Severity — Info, Warning, or Error (severity.go).
//   - Code — a compact numeric identifier with a stable string form grouped
//     by phase family (codes.go).
//   - Message — short, actionable text.
//   - Primary span — the sourcemap.Span the diagnostic is anchored to.
//   - Notes — optional secondary spans that add context, such as "macro
//     defined here" or "previous declaration here".
//   - Fixes — optional structured edits a caller may materialise.
//
// # Emitting diagnostics
//
// Phases hold a Reporter and either call Report directly or build up notes
// and fixes with NewReportBuilder / ReportError / ReportWarning / ReportInfo
// before calling Emit. BagReporter is the usual terminal Reporter: it
// collects everything into a Bag, which supports Sort and Dedup for
// deterministic output ordering (§4.B).
package diag
