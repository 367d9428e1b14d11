package sema

import (
	"fmt"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/types"
)

// lowerLit types a constant. Integer constants get the widest integer
// type up front so later conversions only ever narrow; the string
// payload already carries its terminator, so its length is the array
// length as is.
func lowerLit(data *ast.LitData, span source.Span) *hir.Expr {
	switch data.Kind {
	case ast.LitInt:
		return hir.Lit(hir.IntVal(data.Int), types.MakeLong(true), span)
	case ast.LitUint:
		return hir.Lit(hir.UintVal(data.Uint), types.MakeLong(false), span)
	case ast.LitFloat:
		return hir.Lit(hir.FloatVal(data.Float), types.MakeDouble(), span)
	case ast.LitChar:
		return hir.Lit(hir.CharVal(data.Char), types.MakeChar(true), span)
	case ast.LitStr:
		elem := types.MakeChar(true)
		return hir.Lit(hir.StrVal(data.Str), types.MakeArray(elem, uint64(len(data.Str))), span)
	default:
		panic(fmt.Sprintf("sema: unknown literal kind %d", data.Kind))
	}
}

// lowerIdent resolves a name use. Enumerator constants fold to integer
// literals of their enum type and win over the variable binding itself;
// everything else becomes an lvalue reference to the declared symbol.
func (a *Analyzer) lowerIdent(name source.StringID, span source.Span) *hir.Expr {
	id, ok := a.syms.Lookup(name)
	if !ok {
		diag.ReportError(a.reporter, diag.SemUndeclaredVar, span,
			"use of undeclared identifier '"+a.name(name)+"'").Emit()
		return hir.Lit(hir.IntVal(0), types.MakeInt(true), span)
	}
	sym := a.syms.Arena().Get(id)

	if sym.Storage == symbols.StorageTypedef {
		diag.ReportError(a.reporter, diag.SemTypedefInExpr, span,
			"'"+a.name(name)+"' is a type name, not a value").Emit()
		return hir.Lit(hir.IntVal(0), types.MakeInt(true), span)
	}

	if sym.Type.Kind == types.KindEnum {
		for _, m := range sym.Type.Members {
			if m.Name == name {
				return hir.Lit(hir.IntVal(m.Value), sym.Type, span)
			}
		}
	}

	typ := sym.Type
	if typ.Kind != types.KindPointer {
		// верхние квалификаторы скаляров живут в символе, в типе
		// выражения они только мешают сравнению типов
		typ.Quals = types.Quals{}
	}
	return hir.Var(name, id, typ, span)
}
