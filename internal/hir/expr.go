// Package hir is the typed expression IR the analyzer produces. Every
// node carries its C type and its value category; implicit conversions
// and loads that are invisible in the source appear here as explicit
// Cast and Deref nodes, so later stages never reconstruct them.
package hir

import (
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/types"
)

// ExprKind enumerates typed IR expression kinds.
type ExprKind uint8

const (
	// ExprLit is a constant: integer, floating, character or string.
	ExprLit ExprKind = iota
	// ExprVarRef names a declared object. As built it is an lvalue; the
	// load it implies shows up as a wrapping Deref after decay.
	ExprVarRef
	// ExprBinary is a binary operation, assignment included.
	ExprBinary
	// ExprCast is a value conversion, implicit or written in the source.
	ExprCast
	// ExprDeref is an explicit load from addressable storage.
	ExprDeref
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "Lit"
	case ExprVarRef:
		return "VarRef"
	case ExprBinary:
		return "Binary"
	case ExprCast:
		return "Cast"
	case ExprDeref:
		return "Deref"
	default:
		return "Unknown"
	}
}

// Expr is one typed IR node. LValue marks nodes that denote addressable
// storage; every operation that produces a value resets it.
type Expr struct {
	Kind   ExprKind
	Type   types.Type
	LValue bool
	Span   source.Span
	Data   ExprData
}

// ExprData is the interface for kind-specific payloads.
type ExprData interface {
	exprData()
}

// LitData holds the decoded constant of an ExprLit.
type LitData struct {
	Value Value
}

// VarRefData points an ExprVarRef at its symbol. Name duplicates the
// symbol's name so dumps stay readable without a symbol table at hand.
type VarRefData struct {
	Name   source.StringID
	Symbol symbols.SymbolID
}

// BinaryData holds the operator and operands of an ExprBinary.
type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

// CastData holds the converted operand of an ExprCast. The target type
// is the node's own Type.
type CastData struct {
	Inner *Expr
}

// DerefData holds the loaded operand of an ExprDeref.
type DerefData struct {
	Inner *Expr
}

func (LitData) exprData()    {}
func (VarRefData) exprData() {}
func (BinaryData) exprData() {}
func (CastData) exprData()   {}
func (DerefData) exprData()  {}

// Lit builds a constant node.
func Lit(v Value, typ types.Type, span source.Span) *Expr {
	return &Expr{Kind: ExprLit, Type: typ, Span: span, Data: LitData{Value: v}}
}

// Var builds an lvalue reference to a declared symbol.
func Var(name source.StringID, sym symbols.SymbolID, typ types.Type, span source.Span) *Expr {
	return &Expr{Kind: ExprVarRef, Type: typ, LValue: true, Span: span, Data: VarRefData{Name: name, Symbol: sym}}
}

// Binary builds an operator node over lowered operands.
func Binary(op BinaryOp, left, right *Expr, typ types.Type, span source.Span) *Expr {
	return &Expr{Kind: ExprBinary, Type: typ, Span: span, Data: BinaryData{Op: op, Left: left, Right: right}}
}

// Cast wraps inner in a conversion to typ.
func Cast(inner *Expr, typ types.Type, span source.Span) *Expr {
	return &Expr{Kind: ExprCast, Type: typ, Span: span, Data: CastData{Inner: inner}}
}

// Deref wraps an lvalue in an explicit load of the same type.
func Deref(inner *Expr, span source.Span) *Expr {
	return &Expr{Kind: ExprDeref, Type: inner.Type, Span: span, Data: DerefData{Inner: inner}}
}
