// Package trace provides a lightweight tracing subsystem for the cedar
// front end.
//
// Tracing tracks check phases and per-unit analysis to help diagnose
// slow or hanging runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	cedar check --trace=- --trace-level=phase main.c
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: Per-unit events
//   - LevelDebug: Everything including per-expression events
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopePass: Check phases (load, lex, parse, analyze)
//   - ScopeUnit: Per-unit lowering
//   - ScopeExpr: Expression level (future)
//
// # Context Propagation
//
// Tracers are propagated through the check pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
