package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"cedar/internal/hir"
	"cedar/internal/source"
)

// IRNodeOutput представляет типизированный узел для JSON
type IRNodeOutput struct {
	Kind     string         `json:"kind"`
	Type     string         `json:"type"`
	LValue   bool           `json:"lvalue,omitempty"`
	Text     string         `json:"text,omitempty"`
	Span     source.Span    `json:"span"`
	Children []IRNodeOutput `json:"children,omitempty"`
}

// FormatIRPretty печатает типизированные деревья: компактная строка
// выражения, затем дерево с типами и категориями.
func FormatIRPretty(w io.Writer, typed []*hir.Expr, interner *source.Interner) error {
	for i, e := range typed {
		fmt.Fprintf(w, "expr[%d]: %s\n", i, hir.ExprString(e, interner))
		hir.Dump(w, e, interner)
	}
	return nil
}

// FormatIRJSON выводит типизированные деревья в JSON формате
func FormatIRJSON(w io.Writer, typed []*hir.Expr, interner *source.Interner) error {
	output := make([]IRNodeOutput, 0, len(typed))
	for _, e := range typed {
		output = append(output, buildIRNode(e, interner))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func buildIRNode(e *hir.Expr, interner *source.Interner) IRNodeOutput {
	if e == nil {
		return IRNodeOutput{Kind: "missing"}
	}

	node := IRNodeOutput{
		Kind:   e.Kind.String(),
		LValue: e.LValue,
		Span:   e.Span,
	}
	if interner != nil {
		node.Type = e.Type.Render(interner.MustLookup)
	} else {
		node.Type = e.Type.String()
	}

	switch data := e.Data.(type) {
	case hir.LitData:
		node.Text = data.Value.String()
	case hir.VarRefData:
		if interner != nil && interner.Has(data.Name) {
			node.Text = interner.MustLookup(data.Name)
		}
	case hir.BinaryData:
		node.Text = data.Op.String()
		node.Children = append(node.Children,
			buildIRNode(data.Left, interner), buildIRNode(data.Right, interner))
	case hir.CastData:
		node.Children = append(node.Children, buildIRNode(data.Inner, interner))
	case hir.DerefData:
		node.Children = append(node.Children, buildIRNode(data.Inner, interner))
	}
	return node
}
