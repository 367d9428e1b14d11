package sema

import (
	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/source"
	"cedar/internal/types"
)

// pointerArithmetic scales index by the pointee size and adds it to
// base, spelling every step out in the IR:
//
//	base + (cast<ptr>(elemSize) * cast<ptr>(index))
//
// The size constant and the index are both cast to the base pointer's
// own type, and the multiply and the add are typed as that pointer.
// The scaling type mirrors backend address arithmetic: changing it
// would change overflow behavior for large arrays.
func (a *Analyzer) pointerArithmetic(base, index *hir.Expr, pointee types.Type, span source.Span) *hir.Expr {
	offset := hir.Cast(index, base.Type, index.Span)

	size, err := a.engine.SizeOf(pointee)
	if err != nil {
		diag.ReportError(a.reporter, diag.SemPointerAddUnknownSize, span,
			"cannot do pointer arithmetic on '"+a.render(base.Type)+"': the pointee size is unknown").Emit()
		size = 1
	}

	sizeLit := hir.Lit(hir.UintVal(size), types.MakeLong(false), offset.Span)
	sizeCast := hir.Cast(sizeLit, base.Type, offset.Span)
	scaled := hir.Binary(hir.OpMul, sizeCast, offset, base.Type, offset.Span)
	return hir.Binary(hir.OpAdd, base, scaled, base.Type, span)
}
