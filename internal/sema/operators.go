package sema

import (
	"fmt"

	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/types"
)

// integerOp handles the bitwise and shift operators, which require
// integral operands on both sides. The check runs on the types as
// written, before decay, and reports at most once with the left
// operand inspected first. The node takes the right operand's promoted
// type.
func (a *Analyzer) integerOp(left, right *hir.Expr, op hir.BinaryOp) *hir.Expr {
	span := left.Span.Cover(right.Span)
	if bad, found := nonIntegral(left, right); found && !poisoned(left, right) {
		diag.ReportError(a.reporter, diag.SemNonIntegralExpr, span,
			"expected an integral type, got '"+a.render(bad)+"'").Emit()
	}
	left, right = a.promote(left, right)
	return hir.Binary(op, left, right, right.Type, span)
}

// nonIntegral returns the first operand type that is not integral,
// left before right.
func nonIntegral(left, right *hir.Expr) (types.Type, bool) {
	if !left.Type.IsIntegral() {
		return left.Type, true
	}
	if !right.Type.IsIntegral() {
		return right.Type, true
	}
	return types.Type{}, false
}

// multiplicative handles *, / and %. Modulo wants integral operands,
// the other two any arithmetic mix; either way promotion proceeds and
// the node takes the left operand's promoted type.
func (a *Analyzer) multiplicative(left, right *hir.Expr, op hir.BinaryOp) *hir.Expr {
	span := left.Span.Cover(right.Span)
	if !poisoned(left, right) {
		switch {
		case op == hir.OpMod && !(left.Type.IsIntegral() && right.Type.IsIntegral()):
			diag.ReportError(a.reporter, diag.SemTypeMismatch, span,
				fmt.Sprintf("expected integers for both operators of %%, got '%s' and '%s'",
					a.render(left.Type), a.render(right.Type))).Emit()
		case !(left.Type.IsArithmetic() && right.Type.IsArithmetic()):
			diag.ReportError(a.reporter, diag.SemTypeMismatch, span,
				fmt.Sprintf("expected float or integer types for both operands of %s, got '%s' and '%s'",
					op, a.render(left.Type), a.render(right.Type))).Emit()
		}
	}
	left, right = a.promote(left, right)
	return hir.Binary(op, left, right, left.Type, span)
}

// additive handles + and -. Pointer forms take priority and are judged
// on the types as written: pointer-or-array plus-or-minus integral, and
// integral plus pointer-or-array, route to pointer arithmetic when the
// pointee is complete. Two pointers of the same complete-object type
// may be subtracted. Arithmetic pairs promote as usual; anything else
// is invalid.
func (a *Analyzer) additive(left, right *hir.Expr, op hir.BinaryOp) *hir.Expr {
	span := left.Span.Cover(right.Span)
	isAdd := op == hir.OpAdd

	if pointee, ok := arithPointee(left.Type); ok && right.Type.IsIntegral() {
		return a.pointerArithmetic(a.rvalue(left), a.rvalue(right), pointee, span)
	}
	if pointee, ok := arithPointee(right.Type); ok && left.Type.IsIntegral() && isAdd {
		return a.pointerArithmetic(a.rvalue(right), a.rvalue(left), pointee, span)
	}

	switch {
	case left.Type.IsArithmetic() && right.Type.IsArithmetic():
		left, right = a.promote(left, right)
		return hir.Binary(op, left, right, left.Type, span)
	case !isAdd && left.Type.IsPointerToCompleteObject() && left.Type.Equal(right.Type):
		// разность указателей: операнды не трогаем, адресуемость
		// результата оставляем как есть до выяснения со стандартом
		diff := hir.Binary(hir.OpSub, left, right, left.Type, span)
		diff.LValue = true
		return diff
	default:
		if !poisoned(left, right) {
			diag.ReportError(a.reporter, diag.SemInvalidAdd, span,
				fmt.Sprintf("invalid operands to '%s': '%s' and '%s'",
					op, a.render(left.Type), a.render(right.Type))).Emit()
		}
		return hir.Binary(op, left, right, left.Type, span)
	}
}

// arithPointee returns the element type behind a pointer or array when
// pointer arithmetic over it is well defined.
func arithPointee(t types.Type) (types.Type, bool) {
	if t.Kind != types.KindPointer && t.Kind != types.KindArray {
		return types.Type{}, false
	}
	if !t.Elem.IsComplete() {
		return types.Type{}, false
	}
	return *t.Elem, true
}

// relational handles the comparison and equality operators. Arithmetic
// pairs promote to a common type; everything else decays and must be a
// permitted pointer comparison. The result is always _Bool and never
// an lvalue.
func (a *Analyzer) relational(left, right *hir.Expr, op hir.BinaryOp) *hir.Expr {
	span := left.Span.Cover(right.Span)
	if left.Type.IsArithmetic() && right.Type.IsArithmetic() {
		left, right = a.promote(left, right)
	} else {
		left = a.rvalue(left)
		right = a.rvalue(right)
		if !comparablePointers(left, right, op) && !poisoned(left, right) {
			diag.ReportError(a.reporter, diag.SemInvalidRelational, span,
				fmt.Sprintf("invalid operands to '%s': '%s' and '%s'",
					op, a.render(left.Type), a.render(right.Type))).Emit()
		}
	}
	return hir.Binary(op, left, right, types.MakeBool(), span)
}

// comparablePointers reports whether the decayed operands may be
// compared. Equality is laxer than ordering: it also accepts a void
// pointer or a null constant against any pointer.
func comparablePointers(left, right *hir.Expr, op hir.BinaryOp) bool {
	if left.Type.IsPointer() && left.Type.Equal(right.Type) {
		return true
	}
	if !op.IsEquality() {
		return false
	}
	switch {
	case left.Type.IsPointer() && right.Type.IsVoidPointer(),
		left.Type.IsVoidPointer() && right.Type.IsPointer(),
		isNull(left) && right.Type.IsPointer(),
		left.Type.IsPointer() && isNull(right):
		return true
	default:
		return false
	}
}

// poisoned reports whether any operand already carries the error
// sentinel, in which case follow-up mismatch reports are noise.
func poisoned(exprs ...*hir.Expr) bool {
	for _, e := range exprs {
		if e.Type.IsError() {
			return true
		}
	}
	return false
}
