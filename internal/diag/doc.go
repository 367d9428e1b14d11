// Package diag defines the diagnostic model shared by all front-end phases.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced by
//     the lexer, parser, declaration, and semantic passes.
//   - Offer light-weight utilities (Reporter, Bag) so producers can emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Data model
//
// Diagnostic is the central record: a Severity, a stable numeric Code (see
// codes.go), a short human-oriented Message, the Primary source.Span, and
// optional Notes adding secondary context. Notes should add new information
// ("declared here"), never repeat the message.
//
// # Emitting diagnostics
//
// Phases emit through a diag.Reporter. Semantic analysis builds records with
// ReportError(...).WithNote(...).Emit(); simpler call sites use
// Reporter.Report directly. BagReporter aggregates into a Bag, which supports
// sorting, deduplication, and merging across files.
//
// Analysis never stops at the first finding: producers report, substitute a
// recovery value, and continue, so one input surfaces every diagnostic it
// contains in a single pass.
//
// Rendering lives in internal/diagfmt; orchestration in internal/driver.
package diag
