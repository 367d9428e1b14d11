// Package ast is the untyped syntax tree the parser builds. Nodes live
// in per-kind arenas and reference each other by ID; the analyzer walks
// them read-only and never mutates or extends the arenas.
package ast

import "cedar/internal/source"

// ExprKind enumerates expression node kinds. The reserved kinds exist so
// the parser can classify source it recognizes but does not support;
// it reports those and produces ExprBad instead of building them.
type ExprKind uint8

const (
	// ExprBad is the placeholder for source the parser gave up on. It
	// always follows a reported diagnostic; the analyzer lowers it to a
	// poisoned literal without reporting again.
	ExprBad ExprKind = iota
	// ExprLit is a constant.
	ExprLit
	// ExprIdent is a name use.
	ExprIdent
	// ExprUnary is prefix minus or dereference.
	ExprUnary
	// ExprBinary is any non-assignment binary operator.
	ExprBinary
	// ExprAssign is simple or compound assignment.
	ExprAssign
	// ExprCast is an explicit (type-name) cast.
	ExprCast

	// Reserved, never built.

	// ExprCall is a function call.
	ExprCall
	// ExprIndex is array subscripting.
	ExprIndex
	// ExprMember is . or -> member access.
	ExprMember
	// ExprCond is the ?: conditional.
	ExprCond
	// ExprComma is the comma operator.
	ExprComma
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprBad:
		return "Bad"
	case ExprLit:
		return "Lit"
	case ExprIdent:
		return "Ident"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprAssign:
		return "Assign"
	case ExprCast:
		return "Cast"
	case ExprCall:
		return "Call"
	case ExprIndex:
		return "Index"
	case ExprMember:
		return "Member"
	case ExprCond:
		return "Cond"
	case ExprComma:
		return "Comma"
	default:
		return "Unknown"
	}
}

// Expr is an expression node header; the payload lives in the arena of
// its kind. ExprBad carries no payload.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}
