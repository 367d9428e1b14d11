package ast

import "cedar/internal/source"

// UnitKind discriminates the two top-level unit flavors.
type UnitKind uint8

const (
	// UnitExpr is a `;`-terminated expression to analyze.
	UnitExpr UnitKind = iota
	// UnitDecl is a declaration. Its effect lives in the symbol table
	// and tag registry; Expr stays NoExprID.
	UnitDecl
)

// String returns a human-readable name for the unit kind.
func (k UnitKind) String() string {
	switch k {
	case UnitExpr:
		return "expr"
	case UnitDecl:
		return "decl"
	default:
		return "unknown"
	}
}

// Unit is one `;`-terminated top-level item of a source file.
type Unit struct {
	Kind UnitKind
	Expr ExprID
	Span source.Span
}
