package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cedar/internal/ast"
	"cedar/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on parsed units:
// 1) every unit span is non-empty and within file content bounds
// 2) every expression unit points at a live node whose span sits inside the unit span
// 3) every expression node's span covers the spans of its children
func CheckSpanInvariants(exprs *ast.Exprs, units []ast.Unit, sf *source.File) error {
	if exprs == nil || sf == nil {
		return fmt.Errorf("nil exprs or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	for i, unit := range units {
		sp := unit.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("unit %d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("unit %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("unit %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}

		if unit.Kind != ast.UnitExpr {
			continue
		}
		if !unit.Expr.IsValid() || exprs.Get(unit.Expr) == nil {
			return fmt.Errorf("unit %d: expression unit without a node", i)
		}
		root := exprs.Get(unit.Expr).Span
		if root.Start < sp.Start || root.End > sp.End {
			return fmt.Errorf("unit %d: root span %v is outside unit span %v", i, root, sp)
		}
		if err := checkSubtree(exprs, unit.Expr, sf.ID); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
	}
	return nil
}

func checkSubtree(exprs *ast.Exprs, id ast.ExprID, fileID source.FileID) error {
	var walkErr error
	exprs.Walk(id, func(node ast.ExprID) bool {
		expr := exprs.Get(node)
		if expr == nil {
			walkErr = fmt.Errorf("nil node for id=%d", node)
			return false
		}
		sp := expr.Span
		if sp.End <= sp.Start {
			walkErr = fmt.Errorf("empty node span: %v", sp)
			return false
		}
		if sp.File != fileID {
			walkErr = fmt.Errorf("node span file mismatch: got=%d want=%d", sp.File, fileID)
			return false
		}
		for _, child := range exprs.Children(node) {
			childExpr := exprs.Get(child)
			if childExpr == nil {
				walkErr = fmt.Errorf("missing child id=%d of node id=%d", child, node)
				return false
			}
			cs := childExpr.Span
			if cs.Start < sp.Start || cs.End > sp.End {
				walkErr = fmt.Errorf("child span %v is outside parent span %v", cs, sp)
				return false
			}
		}
		return true
	})
	return walkErr
}
