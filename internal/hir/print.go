package hir

import (
	"fmt"
	"io"
	"strings"

	"cedar/internal/source"
	"cedar/internal/types"
)

// Printer dumps typed IR to text.
type Printer struct {
	w        io.Writer
	interner *source.Interner
	indent   int
}

// NewPrinter creates a printer. The interner resolves variable names and
// struct tags; pass nil to fall back to raw handles.
func NewPrinter(w io.Writer, interner *source.Interner) *Printer {
	return &Printer{w: w, interner: interner}
}

// Dump writes the tree rendering of e to w.
func Dump(w io.Writer, e *Expr, interner *source.Interner) {
	NewPrinter(w, interner).PrintExpr(e)
}

// PrintExpr prints e as an indented tree, one node per line with its
// type and value category.
func (p *Printer) PrintExpr(e *Expr) {
	p.printIndent()
	if e == nil {
		p.printf("<nil>\n")
		return
	}

	switch data := e.Data.(type) {
	case LitData:
		p.printf("Lit %s", data.Value)
	case VarRefData:
		p.printf("VarRef %s", p.name(data.Name))
	case BinaryData:
		p.printf("Binary %s", data.Op)
	case CastData:
		p.printf("Cast")
	case DerefData:
		p.printf("Deref")
	default:
		p.printf("<%s>", e.Kind)
	}

	p.printf(" : %s", p.typeStr(e.Type))
	if e.LValue {
		p.printf(" lvalue")
	}
	p.printf("\n")

	p.indent++
	switch data := e.Data.(type) {
	case BinaryData:
		p.PrintExpr(data.Left)
		p.PrintExpr(data.Right)
	case CastData:
		p.PrintExpr(data.Inner)
	case DerefData:
		p.PrintExpr(data.Inner)
	}
	p.indent--
}

func (p *Printer) printIndent() {
	for i := 0; i < p.indent; i++ {
		p.printf("  ")
	}
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) name(id source.StringID) string {
	if p.interner == nil || !p.interner.Has(id) {
		return fmt.Sprintf("var#%d", id)
	}
	return p.interner.MustLookup(id)
}

func (p *Printer) typeStr(t types.Type) string {
	if p.interner == nil {
		return t.String()
	}
	return t.Render(p.interner.MustLookup)
}

// ExprString returns a compact one-line rendering of e, used in test
// failures and trace output. Loads print as load(x) to stay apart from
// a source-level unary *.
func ExprString(e *Expr, interner *source.Interner) string {
	var sb strings.Builder
	writeCompact(&sb, e, interner)
	return sb.String()
}

func writeCompact(sb *strings.Builder, e *Expr, interner *source.Interner) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	switch data := e.Data.(type) {
	case LitData:
		sb.WriteString(data.Value.String())
	case VarRefData:
		if interner != nil && interner.Has(data.Name) {
			sb.WriteString(interner.MustLookup(data.Name))
		} else {
			fmt.Fprintf(sb, "var#%d", data.Name)
		}
	case BinaryData:
		sb.WriteByte('(')
		writeCompact(sb, data.Left, interner)
		sb.WriteByte(' ')
		sb.WriteString(data.Op.String())
		sb.WriteByte(' ')
		writeCompact(sb, data.Right, interner)
		sb.WriteByte(')')
	case CastData:
		sb.WriteByte('(')
		if interner != nil {
			sb.WriteString(e.Type.Render(interner.MustLookup))
		} else {
			sb.WriteString(e.Type.String())
		}
		sb.WriteByte(')')
		writeCompact(sb, data.Inner, interner)
	case DerefData:
		sb.WriteString("load(")
		writeCompact(sb, data.Inner, interner)
		sb.WriteByte(')')
	default:
		fmt.Fprintf(sb, "<%s>", e.Kind)
	}
}
