// Package sema lowers untyped AST expressions into typed IR. Every
// node of the result carries a C type and a value category; implicit
// conversions, array decay and loads become explicit Cast and Deref
// nodes. The pass is a pure function of the untyped tree and the
// declaration state: the only scope mutation is the transient frame a
// compound assignment pushes for its temporary, restored before return.
package sema

import (
	"fmt"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/layout"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/token"
	"cedar/internal/types"
)

// Config wires an Analyzer to the state the parser produced. All fields
// are required except Reporter, which may be nil to drop diagnostics.
type Config struct {
	Exprs    *ast.Exprs
	Syms     *symbols.Stack
	Tags     *symbols.Tags
	Target   layout.Target
	Interner *source.Interner
	Reporter diag.Reporter
}

// Analyzer holds the per-file analysis state.
type Analyzer struct {
	exprs    *ast.Exprs
	syms     *symbols.Stack
	tags     *symbols.Tags
	engine   *layout.Engine
	model    types.DataModel
	interner *source.Interner
	reporter diag.Reporter
}

// New creates an analyzer over cfg's declaration state.
func New(cfg Config) *Analyzer {
	return &Analyzer{
		exprs:    cfg.Exprs,
		syms:     cfg.Syms,
		tags:     cfg.Tags,
		engine:   layout.NewEngine(cfg.Target, cfg.Tags),
		model:    cfg.Target.Model,
		interner: cfg.Interner,
		reporter: cfg.Reporter,
	}
}

// LowerExpr lowers one expression tree. It is total over the node kinds
// the parser produces; a reserved kind here is a caller contract
// violation and panics. Rule violations are reported, substituted with
// a best-effort node, and lowering continues, so one call surfaces
// every diagnostic of its tree.
func (a *Analyzer) LowerExpr(id ast.ExprID) *hir.Expr {
	node := a.exprs.Get(id)
	switch node.Kind {
	case ast.ExprBad:
		// парсер уже отрепортил, даём отравленную заглушку
		return hir.Lit(hir.IntVal(0), types.MakeError(), node.Span)

	case ast.ExprLit:
		data, _ := a.exprs.Lit(id)
		return lowerLit(data, node.Span)

	case ast.ExprIdent:
		data, _ := a.exprs.Ident(id)
		return a.lowerIdent(data.Name, node.Span)

	case ast.ExprUnary:
		data, _ := a.exprs.Unary(id)
		return a.lowerUnary(data.Op, a.LowerExpr(data.Operand), node.Span)

	case ast.ExprBinary:
		data, _ := a.exprs.Binary(id)
		return a.lowerBinary(data)

	case ast.ExprAssign:
		data, _ := a.exprs.Assign(id)
		return a.lowerAssign(data, node.Span)

	case ast.ExprCast:
		data, _ := a.exprs.Cast(id)
		inner := a.LowerExpr(data.Inner)
		out, err := a.explicitCast(inner, data.Target)
		a.reportIf(err)
		return out

	default:
		panic(fmt.Sprintf("sema: unsupported expression kind %s", node.Kind))
	}
}

// lowerBinary опускает операнды слева направо и выбирает операторное
// правило по токену.
func (a *Analyzer) lowerBinary(data *ast.BinaryData) *hir.Expr {
	left := a.LowerExpr(data.Left)
	right := a.LowerExpr(data.Right)
	op := binOpFor(data.Op)

	switch data.Op {
	case token.Amp, token.Pipe, token.Caret, token.Shl, token.Shr:
		return a.integerOp(left, right, op)
	case token.Star, token.Slash, token.Percent:
		return a.multiplicative(left, right, op)
	case token.Plus, token.Minus:
		return a.additive(left, right, op)
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.EqEq, token.BangEq:
		return a.relational(left, right, op)
	default:
		panic(fmt.Sprintf("sema: unsupported binary operator %q", data.Op))
	}
}

// binOpFor maps a source operator token to its IR operator.
func binOpFor(kind token.Kind) hir.BinaryOp {
	switch kind {
	case token.Plus:
		return hir.OpAdd
	case token.Minus:
		return hir.OpSub
	case token.Star:
		return hir.OpMul
	case token.Slash:
		return hir.OpDiv
	case token.Percent:
		return hir.OpMod
	case token.Shl:
		return hir.OpShl
	case token.Shr:
		return hir.OpShr
	case token.Amp:
		return hir.OpBitAnd
	case token.Pipe:
		return hir.OpBitOr
	case token.Caret:
		return hir.OpBitXor
	case token.Lt:
		return hir.OpLt
	case token.Gt:
		return hir.OpGt
	case token.LtEq:
		return hir.OpLe
	case token.GtEq:
		return hir.OpGe
	case token.EqEq:
		return hir.OpEq
	case token.BangEq:
		return hir.OpNe
	default:
		panic(fmt.Sprintf("sema: no IR operator for token %q", kind))
	}
}

// reportIf разворачивает типизированную семантическую ошибку в
// диагностику. nil проходит молча.
func (a *Analyzer) reportIf(err error) {
	if err == nil {
		return
	}
	switch e := err.(type) {
	case *CastError:
		diag.ReportError(a.reporter, diag.SemInvalidCast, e.Span,
			"cannot implicitly convert '"+a.render(e.From)+"' to '"+a.render(e.To)+"'").Emit()
	case *NonScalarCastError:
		diag.ReportError(a.reporter, diag.SemNonScalarCast, e.Span,
			"cannot cast to non-scalar type '"+a.render(e.Target)+"'").Emit()
	case *FloatPointerCastError:
		diag.ReportError(a.reporter, diag.SemFloatPointerCast, e.Span,
			"cannot cast between floating and pointer types").Emit()
	case *StructCastError:
		diag.ReportError(a.reporter, diag.SemStructCast, e.Span,
			"cannot cast a struct or union value").Emit()
	case *VoidCastError:
		diag.ReportError(a.reporter, diag.SemVoidCast, e.Span,
			"cannot cast an expression of type 'void'").Emit()
	case *NotAssignableError:
		diag.ReportError(a.reporter, diag.SemNotAssignable, e.Span,
			"cannot assign to "+e.Reason).Emit()
	default:
		panic(fmt.Sprintf("sema: unknown semantic error %T", err))
	}
}

func (a *Analyzer) render(t types.Type) string {
	return t.Render(a.interner.MustLookup)
}

func (a *Analyzer) name(id source.StringID) string {
	return a.interner.MustLookup(id)
}
