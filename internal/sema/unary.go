package sema

import (
	"fmt"

	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/source"
	"cedar/internal/token"
	"cedar/internal/types"
)

// lowerUnary dispatches the prefix operators over a lowered operand.
func (a *Analyzer) lowerUnary(op token.Kind, operand *hir.Expr, span source.Span) *hir.Expr {
	switch op {
	case token.Star:
		return a.lowerDeref(operand, span)
	case token.Minus:
		return a.lowerNegate(operand, span)
	default:
		panic(fmt.Sprintf("sema: unsupported unary operator %q", op))
	}
}

// lowerDeref types `*e`. The decayed operand holds the pointer value,
// which is exactly the address the lvalue denotes, so the node is
// retyped to the pointee in place and marked addressable; the explicit
// load appears later, when and if the result is converted to a value.
func (a *Analyzer) lowerDeref(operand *hir.Expr, span source.Span) *hir.Expr {
	operand = a.rvalue(operand)
	if !operand.Type.IsPointer() {
		if !operand.Type.IsError() {
			diag.ReportError(a.reporter, diag.SemInvalidDeref, span,
				"cannot dereference expression of non-pointer type '"+a.render(operand.Type)+"'").Emit()
		}
		return hir.Lit(hir.IntVal(0), types.MakeError(), span)
	}
	operand.Type = *operand.Type.Elem
	operand.LValue = true
	operand.Span = span
	return operand
}

// lowerNegate types `-e` as the subtraction `0 - e` over the promoted
// operand type, with a floating zero when the operand is floating.
func (a *Analyzer) lowerNegate(operand *hir.Expr, span source.Span) *hir.Expr {
	operand = a.rvalue(operand)
	if !operand.Type.IsArithmetic() && !operand.Type.IsError() {
		diag.ReportError(a.reporter, diag.SemTypeMismatch, span,
			"expected an arithmetic type as the operand of unary '-', got '"+a.render(operand.Type)+"'").Emit()
	}
	typ := a.model.IntegerPromote(operand.Type)
	var zero hir.Value = hir.IntVal(0)
	if operand.Type.IsFloating() {
		zero = hir.FloatVal(0)
	}
	operand, _ = a.implicitCast(operand, typ)
	return hir.Binary(hir.OpSub, hir.Lit(zero, typ, span), operand, typ, span)
}
