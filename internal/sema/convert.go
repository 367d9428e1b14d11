package sema

import (
	"cedar/internal/hir"
	"cedar/internal/types"
)

// rvalue converts e into a value usable as an operand. Arrays decay to
// pointers to their element and functions to const pointers, both by
// retyping the node in place. Struct and union lvalues are reclassified
// without a load. Any other lvalue is wrapped in an explicit Deref.
// The function is idempotent: a second application changes nothing.
func (a *Analyzer) rvalue(e *hir.Expr) *hir.Expr {
	switch {
	case e.Type.IsArray():
		e.Type = types.MakePointer(*e.Type.Elem)
		e.LValue = false
		return e
	case e.Type.IsFunc():
		ptr := types.MakePointer(e.Type)
		ptr.Quals.Const = true
		e.Type = ptr
		e.LValue = false
		return e
	case !e.LValue:
		return e
	case e.Type.IsStructOrUnion():
		// агрегаты не грузим в регистр, только снимаем адресуемость
		e.LValue = false
		return e
	default:
		return hir.Deref(e, e.Span)
	}
}

// implicitCast converts e to target, inserting a Cast node where the
// representation changes and retyping in place where pointer types are
// compatible enough to relabel. Incompatible pairs return a CastError
// and e unmodified. A poisoned side passes silently so one reported
// error does not cascade.
func (a *Analyzer) implicitCast(e *hir.Expr, target types.Type) (*hir.Expr, error) {
	switch {
	case e.Type.IsError() || target.IsError():
		return e, nil
	case e.Type.Equal(target):
		return e, nil
	case e.Type.IsArithmetic() && target.IsArithmetic(),
		isNull(e) && target.IsPointer(),
		e.Type.IsPointer() && target.Kind == types.KindBool,
		e.Type.IsPointer() && target.IsVoidPointer(),
		e.Type.IsPointer() && target.IsCharPointer():
		return hir.Cast(e, target, e.Span), nil
	case target.IsPointer() && (e.Type.IsVoidPointer() || e.Type.IsCharPointer()):
		e.Type = target
		return e, nil
	default:
		return e, &CastError{From: e.Type, To: target, Span: e.Span}
	}
}

// promote decays both operands and applies the usual arithmetic
// conversions, casting each side to the common type. When either side
// is not arithmetic the operands are only decayed: the caller has
// already reported the mismatch and picks the result type itself.
func (a *Analyzer) promote(left, right *hir.Expr) (*hir.Expr, *hir.Expr) {
	left = a.rvalue(left)
	right = a.rvalue(right)
	if !left.Type.IsArithmetic() || !right.Type.IsArithmetic() {
		return left, right
	}
	common := a.model.BinaryPromote(left.Type, right.Type)
	// оба операнда арифметические, каст не может не удаться
	left, _ = a.implicitCast(left, common)
	right, _ = a.implicitCast(right, common)
	return left, right
}

// explicitCast validates a written (type-name) cast and wraps inner in
// a Cast node regardless of the verdict, so downstream passes always
// see the written target type. The node keeps the operand's span.
func (a *Analyzer) explicitCast(inner *hir.Expr, target types.Type) (*hir.Expr, error) {
	span := inner.Span
	if target.IsVoid() {
		// каст в void легален всегда, значение просто выбрасывается
		return hir.Cast(inner, target, span), nil
	}
	var err error
	switch {
	case !target.IsScalar():
		err = &NonScalarCastError{Target: target, Span: span}
	case inner.Type.IsFloating() && target.IsPointer(),
		inner.Type.IsPointer() && target.IsFloating():
		err = &FloatPointerCastError{Span: span}
	case inner.Type.IsStructOrUnion():
		err = &StructCastError{Span: span}
	case inner.Type.IsVoid():
		err = &VoidCastError{Span: span}
	}
	return hir.Cast(inner, target, span), err
}

// isNull reports whether e is a null pointer constant: an integer or
// character literal with value zero. The check is syntactic and does
// not look at the literal's type.
func isNull(e *hir.Expr) bool {
	if e.Kind != hir.ExprLit {
		return false
	}
	return hir.IsNull(e.Data.(hir.LitData).Value)
}
