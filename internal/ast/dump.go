package ast

import (
	"fmt"
	"io"
	"strings"

	"cedar/internal/source"
)

// Dump writes an indented tree rendering of the subtree at id, one node
// per line. The interner resolves identifier names; nil falls back to
// raw handles.
func Dump(w io.Writer, exprs *Exprs, id ExprID, interner *source.Interner) {
	d := dumper{w: w, exprs: exprs, interner: interner}
	d.dump(id, 0)
}

// DumpString renders the subtree at id into a string.
func DumpString(exprs *Exprs, id ExprID, interner *source.Interner) string {
	var sb strings.Builder
	Dump(&sb, exprs, id, interner)
	return sb.String()
}

type dumper struct {
	w        io.Writer
	exprs    *Exprs
	interner *source.Interner
}

func (d *dumper) dump(id ExprID, indent int) {
	for i := 0; i < indent; i++ {
		fmt.Fprint(d.w, "  ")
	}
	expr := d.exprs.Get(id)
	if expr == nil {
		fmt.Fprintln(d.w, "<nil>")
		return
	}

	switch expr.Kind {
	case ExprBad:
		fmt.Fprintln(d.w, "Bad")
	case ExprLit:
		data, _ := d.exprs.Lit(id)
		fmt.Fprintf(d.w, "Lit %s\n", litString(data))
	case ExprIdent:
		data, _ := d.exprs.Ident(id)
		fmt.Fprintf(d.w, "Ident %s\n", d.name(data.Name))
	case ExprUnary:
		data, _ := d.exprs.Unary(id)
		fmt.Fprintf(d.w, "Unary %s\n", data.Op)
	case ExprBinary:
		data, _ := d.exprs.Binary(id)
		fmt.Fprintf(d.w, "Binary %s\n", data.Op)
	case ExprAssign:
		data, _ := d.exprs.Assign(id)
		fmt.Fprintf(d.w, "Assign %s\n", data.Op)
	case ExprCast:
		data, _ := d.exprs.Cast(id)
		if d.interner != nil {
			fmt.Fprintf(d.w, "Cast %s\n", data.Target.Render(d.interner.MustLookup))
		} else {
			fmt.Fprintf(d.w, "Cast %s\n", data.Target)
		}
	default:
		fmt.Fprintf(d.w, "<%s>\n", expr.Kind)
	}

	for _, child := range d.exprs.Children(id) {
		d.dump(child, indent+1)
	}
}

func (d *dumper) name(id source.StringID) string {
	if d.interner == nil || !d.interner.Has(id) {
		return fmt.Sprintf("ident#%d", id)
	}
	return d.interner.MustLookup(id)
}

func litString(data *LitData) string {
	switch data.Kind {
	case LitInt:
		return fmt.Sprintf("%d", data.Int)
	case LitUint:
		return fmt.Sprintf("%du", data.Uint)
	case LitFloat:
		return fmt.Sprintf("%g", data.Float)
	case LitChar:
		return fmt.Sprintf("%q", rune(data.Char))
	case LitStr:
		b := data.Str
		if n := len(b); n > 0 && b[n-1] == 0 {
			b = b[:n-1]
		}
		return fmt.Sprintf("%q", string(b))
	default:
		return "<lit>"
	}
}
