package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cedar/internal/ast"
	"cedar/internal/source"
)

// ASTNodeOutput представляет узел дерева для JSON
type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// UnitOutput представляет один top-level юнит для JSON
type UnitOutput struct {
	Kind string         `json:"kind"`
	Span source.Span    `json:"span"`
	Expr *ASTNodeOutput `json:"expr,omitempty"`
}

// FormatUnitsPretty выводит юниты файла; для expression-юнитов печатает
// дерево узлов.
func FormatUnitsPretty(w io.Writer, units []ast.Unit, exprs *ast.Exprs, interner *source.Interner, fs *source.FileSet) error {
	for i, unit := range units {
		startPos, endPos := fs.Resolve(unit.Span)
		fmt.Fprintf(w, "unit[%d]: %s at %d:%d-%d:%d\n", i, unit.Kind,
			startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if unit.Kind == ast.UnitExpr {
			ast.Dump(w, exprs, unit.Expr, interner)
		}
	}
	return nil
}

// FormatUnitsJSON выводит юниты файла в JSON формате
func FormatUnitsJSON(w io.Writer, units []ast.Unit, exprs *ast.Exprs, interner *source.Interner) error {
	output := make([]UnitOutput, 0, len(units))
	for _, unit := range units {
		unitOut := UnitOutput{Kind: unit.Kind.String(), Span: unit.Span}
		if unit.Kind == ast.UnitExpr {
			node := buildASTNode(exprs, unit.Expr, interner)
			unitOut.Expr = &node
		}
		output = append(output, unitOut)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildASTNode(exprs *ast.Exprs, id ast.ExprID, interner *source.Interner) ASTNodeOutput {
	expr := exprs.Get(id)
	if expr == nil {
		return ASTNodeOutput{Kind: "missing"}
	}

	node := ASTNodeOutput{Kind: expr.Kind.String(), Span: expr.Span}
	switch expr.Kind {
	case ast.ExprLit:
		node.Text = ast.DumpString(exprs, id, interner)
		node.Text = trimNodeLabel(node.Text)
	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		if interner != nil && interner.Has(data.Name) {
			node.Text = interner.MustLookup(data.Name)
		}
	case ast.ExprUnary:
		data, _ := exprs.Unary(id)
		node.Text = data.Op.String()
	case ast.ExprBinary:
		data, _ := exprs.Binary(id)
		node.Text = data.Op.String()
	case ast.ExprAssign:
		data, _ := exprs.Assign(id)
		node.Text = data.Op.String()
	case ast.ExprCast:
		data, _ := exprs.Cast(id)
		if interner != nil {
			node.Text = data.Target.Render(interner.MustLookup)
		} else {
			node.Text = data.Target.String()
		}
	}

	for _, child := range exprs.Children(id) {
		node.Children = append(node.Children, buildASTNode(exprs, child, interner))
	}
	return node
}

// trimNodeLabel срезает "Lit " и перевод строки с однострочного дампа
// узла-листа.
func trimNodeLabel(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			s = s[i+1:]
			break
		}
	}
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
