// Package diag defines the diagnostic model shared by the reader phases.
//
//   - Provide deterministic, serialisable data structures that capture findings
//     produced by the datum reader and the directive scanner.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// Package diag does not perform any formatting, IO, or CLI integration.
// Rendering responsibilities live in internal/diagfmt.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (see codes.go), a short human oriented Message, the
// primary source.Span, and optional Notes for additional context.
//
// Producers emit through a diag.Reporter to decouple emission from storage.
// When no extra metadata is needed they call Reporter.Report directly; the
// ReportBuilder helpers (ReportError/ReportWarning/ReportInfo) allow chaining
// WithNote before Emit. diag.BagReporter aggregates diagnostics into a Bag,
// which enforces a cap and provides deterministic ordering via Sort.
package diag
