package sema

import (
	"fmt"

	"cedar/internal/ast"
	"cedar/internal/hir"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/token"
)

// lowerAssign splits simple from compound assignment by the operator
// token.
func (a *Analyzer) lowerAssign(data *ast.AssignData, span source.Span) *hir.Expr {
	if data.Op == token.Assign {
		return a.lowerSimpleAssign(data, span)
	}
	return a.lowerCompoundAssign(data, span)
}

// lowerSimpleAssign types `lhs = rhs`. The right side is converted to
// the left's type when the types differ but is not decayed first; the
// result takes the left's type and is never an lvalue, so chaining an
// assignment onto it is rejected upstream as an rvalue.
func (a *Analyzer) lowerSimpleAssign(data *ast.AssignData, span source.Span) *hir.Expr {
	target := a.LowerExpr(data.Target)
	if reason, ok := a.modifiableLValue(target); !ok {
		a.reportIf(&NotAssignableError{Reason: reason, Span: target.Span})
	}
	value := a.LowerExpr(data.Value)
	if !value.Type.Equal(target.Type) {
		converted, err := a.implicitCast(value, target.Type)
		a.reportIf(err)
		value = converted
	}
	return hir.Binary(hir.OpAssign, target, value, target.Type, span)
}

// lowerCompoundAssign desugars `lhs op= rhs` so that the left side is
// evaluated exactly once: a hidden register temporary captures it, the
// underlying operator rule runs over the captured value, and the
// result is stored back:
//
//	tmp = (tmp = lhs) op rhs
//
// The inner store is marked as an lvalue so the operator rule reads it
// back through an explicit load. The temporary lives in a one-shot
// scope around its declaration and never leaks into surrounding
// lookup; its symbol stays valid in the arena for as long as the IR
// references it.
func (a *Analyzer) lowerCompoundAssign(data *ast.AssignData, span source.Span) *hir.Expr {
	target := a.LowerExpr(data.Target)
	if reason, ok := a.modifiableLValue(target); !ok {
		a.reportIf(&NotAssignableError{Reason: reason, Span: target.Span})
	}
	value := a.LowerExpr(data.Value)

	a.syms.Enter()
	defer a.syms.Leave()
	tmpName := a.interner.Intern("tmp")
	tmpID := a.syms.Declare(symbols.Symbol{
		Name:    tmpName,
		Type:    target.Type,
		Storage: symbols.StorageRegister,
		Span:    target.Span,
	})

	capture := hir.Binary(hir.OpAssign,
		hir.Var(tmpName, tmpID, target.Type, target.Span), target, target.Type, span)
	capture.LValue = true
	stored := a.applyCompound(data.Op, capture, value)
	return hir.Binary(hir.OpAssign,
		hir.Var(tmpName, tmpID, target.Type, target.Span), stored, target.Type, span)
}

// applyCompound runs the operator rule behind a compound assignment
// token over the captured left side and the lowered right side.
func (a *Analyzer) applyCompound(op token.Kind, target, value *hir.Expr) *hir.Expr {
	switch op {
	case token.PlusAssign:
		return a.additive(target, value, hir.OpAdd)
	case token.MinusAssign:
		return a.additive(target, value, hir.OpSub)
	case token.StarAssign:
		return a.multiplicative(target, value, hir.OpMul)
	case token.SlashAssign:
		return a.multiplicative(target, value, hir.OpDiv)
	case token.PercentAssign:
		return a.multiplicative(target, value, hir.OpMod)
	case token.AmpAssign:
		return a.integerOp(target, value, hir.OpBitAnd)
	case token.PipeAssign:
		return a.integerOp(target, value, hir.OpBitOr)
	case token.CaretAssign:
		return a.integerOp(target, value, hir.OpBitXor)
	case token.ShlAssign:
		return a.integerOp(target, value, hir.OpShl)
	case token.ShrAssign:
		return a.integerOp(target, value, hir.OpShr)
	default:
		panic(fmt.Sprintf("sema: not a compound assignment operator %q", op))
	}
}

// modifiableLValue checks C's modifiable-lvalue rules. The first
// failing rule wins and its reason reads as the tail of "cannot assign
// to ...".
func (a *Analyzer) modifiableLValue(e *hir.Expr) (string, bool) {
	if !e.LValue {
		return "rvalue", false
	}
	if !e.Type.IsComplete() {
		return "expression with incomplete type '" + a.render(e.Type) + "'", false
	}
	if e.Kind == hir.ExprVarRef {
		data := e.Data.(hir.VarRefData)
		if a.syms.Arena().Get(data.Symbol).Quals.Const {
			return "variable '" + a.name(data.Name) + "' with `const` qualifier", false
		}
	}
	if e.Type.IsArray() {
		return "array", false
	}
	if e.Type.IsStructOrUnion() && a.tags.HasConstMember(e.Type.Tag) {
		return "struct or union with `const` qualified member", false
	}
	return "", true
}
