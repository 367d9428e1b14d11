package hir

import (
	"strings"
	"testing"

	"cedar/internal/source"
	"cedar/internal/types"
)

func assignTree(in *source.Interner) *Expr {
	x := in.Intern("x")
	sp := source.Span{File: 1, Start: 0, End: 9}
	ref := Var(x, 1, types.MakeInt(true), sp)
	lit := Lit(IntVal(3), types.MakeLong(true), sp)
	cast := Cast(lit, types.MakeInt(true), sp)
	return Binary(OpAssign, ref, cast, types.MakeInt(true), sp)
}

func TestDumpTree(t *testing.T) {
	in := source.NewInterner()
	tree := assignTree(in)

	var sb strings.Builder
	Dump(&sb, tree, in)

	want := strings.Join([]string{
		"Binary = : int",
		"  VarRef x : int lvalue",
		"  Cast : int",
		"    Lit 3 : long",
		"",
	}, "\n")
	if sb.String() != want {
		t.Fatalf("dump mismatch:\ngot:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestExprStringCompact(t *testing.T) {
	in := source.NewInterner()
	tree := assignTree(in)

	got := ExprString(tree, in)
	if got != "(x = (int)3)" {
		t.Fatalf("ExprString = %q", got)
	}
}

func TestDumpLoad(t *testing.T) {
	in := source.NewInterner()
	p := in.Intern("p")
	sp := source.Span{File: 1, Start: 0, End: 2}
	ref := Var(p, 1, types.MakePointer(types.MakeChar(true)), sp)
	load := Deref(ref, sp)

	got := ExprString(load, in)
	if got != "load(p)" {
		t.Fatalf("ExprString = %q", got)
	}

	var sb strings.Builder
	Dump(&sb, load, in)
	if !strings.Contains(sb.String(), "Deref : char *") {
		t.Fatalf("tree dump must show the load type, got:\n%s", sb.String())
	}
}

func TestDumpNilInterner(t *testing.T) {
	sp := source.Span{File: 1, Start: 0, End: 1}
	ref := Var(9, 4, types.MakeInt(false), sp)
	got := ExprString(ref, nil)
	if got != "var#9" {
		t.Fatalf("nil-interner fallback = %q", got)
	}
}
