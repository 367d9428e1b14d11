package parser

import (
	"fmt"
	"strings"
	"testing"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/lexer"
	"cedar/internal/source"
	"cedar/internal/symbols"
)

type parseOutput struct {
	units []ast.Unit
	exprs *ast.Exprs
	env   Env
	bag   *diag.Bag
}

// parseTestInput прогоняет исходник через лексер и парсер с чистым окружением.
func parseTestInput(t *testing.T, input string) parseOutput {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	exprs := ast.NewExprs(0)
	env := Env{
		Interner: source.NewInterner(),
		Syms:     symbols.NewStack(symbols.NewArena(0)),
		Tags:     symbols.NewTags(),
	}
	res := ParseFile(lx, exprs, env, Options{MaxErrors: 100, Reporter: reporter})
	return parseOutput{units: res.Units, exprs: exprs, env: env, bag: bag}
}

// parseCleanExpr ожидает ровно один expression-юнит без диагностик.
func parseCleanExpr(t *testing.T, input string) (ast.ExprID, parseOutput) {
	t.Helper()
	out := parseTestInput(t, input)
	if out.bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(out.bag))
	}
	if len(out.units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(out.units))
	}
	unit := out.units[0]
	if unit.Kind != ast.UnitExpr {
		t.Fatalf("expected expression unit, got %v", unit.Kind)
	}
	return unit.Expr, out
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

// lookupSymbol достаёт символ по имени из окружения теста.
func lookupSymbol(t *testing.T, out parseOutput, name string) *symbols.Symbol {
	t.Helper()
	id, ok := out.env.Syms.Lookup(out.env.Interner.Intern(name))
	if !ok {
		t.Fatalf("symbol %q is not declared; diagnostics: %s", name, diagnosticsSummary(out.bag))
	}
	return out.env.Syms.Arena().Get(id)
}
