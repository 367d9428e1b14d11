package sema

import (
	"fmt"
	"strings"
	"testing"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/layout"
	"cedar/internal/lexer"
	"cedar/internal/parser"
	"cedar/internal/source"
	"cedar/internal/symbols"
)

type lowerOutput struct {
	lowered []*hir.Expr
	env     parser.Env
	bag     *diag.Bag
	an      *Analyzer
}

// lowerTestInput прогоняет исходник через лексер, парсер и анализатор:
// декларации исполняет парсер, expression-юниты опускаются по порядку.
func lowerTestInput(t *testing.T, input string) lowerOutput {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(input)))

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	exprs := ast.NewExprs(0)
	env := parser.Env{
		Interner: source.NewInterner(),
		Syms:     symbols.NewStack(symbols.NewArena(0)),
		Tags:     symbols.NewTags(),
	}
	res := parser.ParseFile(lx, exprs, env, parser.Options{MaxErrors: 100, Reporter: reporter})

	an := New(Config{
		Exprs:    exprs,
		Syms:     env.Syms,
		Tags:     env.Tags,
		Target:   layout.X86_64LinuxGNU(),
		Interner: env.Interner,
		Reporter: reporter,
	})
	var lowered []*hir.Expr
	for _, unit := range res.Units {
		if unit.Kind == ast.UnitExpr {
			lowered = append(lowered, an.LowerExpr(unit.Expr))
		}
	}
	return lowerOutput{lowered: lowered, env: env, bag: bag, an: an}
}

// lowerOne ожидает ровно один expression-юнит; декларации в input до него
// допустимы.
func lowerOne(t *testing.T, input string) (*hir.Expr, lowerOutput) {
	t.Helper()
	out := lowerTestInput(t, input)
	if len(out.lowered) != 1 {
		t.Fatalf("expected 1 lowered expression, got %d; diagnostics: %s",
			len(out.lowered), diagnosticsSummary(out.bag))
	}
	return out.lowered[0], out
}

// lowerClean — lowerOne плюс проверка на отсутствие диагностик.
func lowerClean(t *testing.T, input string) (*hir.Expr, lowerOutput) {
	t.Helper()
	e, out := lowerOne(t, input)
	if out.bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(out.bag))
	}
	return e, out
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// countCode — сколько диагностик с данным кодом лежит в bag.
func countCode(bag *diag.Bag, code diag.Code) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Code == code {
			n++
		}
	}
	return n
}

// findMessage достаёт текст первой диагностики с данным кодом.
func findMessage(t *testing.T, bag *diag.Bag, code diag.Code) string {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return d.Message
		}
	}
	t.Fatalf("no diagnostic with code %s; got: %s", code.ID(), diagnosticsSummary(bag))
	return ""
}

// shape — компактная однострочная форма дерева для сравнения структуры.
func shape(out lowerOutput, e *hir.Expr) string {
	return hir.ExprString(e, out.env.Interner)
}

// walk обходит дерево сверху вниз.
func walk(e *hir.Expr, visit func(*hir.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch data := e.Data.(type) {
	case hir.BinaryData:
		walk(data.Left, visit)
		walk(data.Right, visit)
	case hir.CastData:
		walk(data.Inner, visit)
	case hir.DerefData:
		walk(data.Inner, visit)
	}
}

// countVarRefs — сколько раз имя встречается в дереве как VarRef.
func countVarRefs(out lowerOutput, e *hir.Expr, name string) int {
	id := out.env.Interner.Intern(name)
	n := 0
	walk(e, func(node *hir.Expr) {
		if data, ok := node.Data.(hir.VarRefData); ok && data.Name == id {
			n++
		}
	})
	return n
}

// typeOf рендерит тип узла через интернер теста.
func typeOf(out lowerOutput, e *hir.Expr) string {
	return e.Type.Render(out.env.Interner.MustLookup)
}
