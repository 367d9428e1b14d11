package parser

import (
	"testing"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/lexer"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/types"
)

func TestEmptyInput(t *testing.T) {
	out := parseTestInput(t, "")
	if len(out.units) != 0 {
		t.Errorf("expected no units, got %d", len(out.units))
	}
	if out.bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got: %s", diagnosticsSummary(out.bag))
	}
}

func TestStraySemicolons(t *testing.T) {
	out := parseTestInput(t, ";;;")
	if len(out.units) != 0 {
		t.Errorf("empty statements must not produce units, got %d", len(out.units))
	}
	if out.bag.Len() != 0 {
		t.Errorf("expected no diagnostics, got: %s", diagnosticsSummary(out.bag))
	}
}

func TestMissingFinalSemicolon(t *testing.T) {
	out := parseTestInput(t, "a + b")
	if countCode(out.bag, diag.SynExpectSemicolon) != 1 {
		t.Fatalf("expected SynExpectSemicolon, got: %s", diagnosticsSummary(out.bag))
	}
	// выражение при этом не теряется
	if len(out.units) != 1 || out.units[0].Kind != ast.UnitExpr {
		t.Fatalf("expression unit must survive a missing semicolon")
	}
}

// Мусорный символ репортит лексер; парсер молча пропускает Invalid и
// продолжает со следующего токена.
func TestInvalidTokenSkipped(t *testing.T) {
	out := parseTestInput(t, "@ int x;")
	if countCode(out.bag, diag.LexUnknownChar) != 1 {
		t.Fatalf("expected one LexUnknownChar, got: %s", diagnosticsSummary(out.bag))
	}
	if out.bag.Len() != 1 {
		t.Errorf("parser must not add its own diagnostic, got: %s", diagnosticsSummary(out.bag))
	}
	if lookupSymbol(t, out, "x").Type.Kind != types.KindInt {
		t.Error("declaration after the bad character must parse")
	}
}

func TestRecoveryAfterBadDeclarator(t *testing.T) {
	out := parseTestInput(t, "int = 5; long y;")
	if countCode(out.bag, diag.SynBadDeclarator) != 1 {
		t.Fatalf("expected one SynBadDeclarator, got: %s", diagnosticsSummary(out.bag))
	}
	if len(out.units) != 2 {
		t.Fatalf("expected 2 units after recovery, got %d", len(out.units))
	}
	if lookupSymbol(t, out, "y").Type.Kind != types.KindLong {
		t.Error("y must be declared after resync")
	}
}

// После MaxErrors репортер перестаёт принимать ошибки, но парсер дочитывает
// файл до конца.
func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte("sizeof x; sizeof y;")))

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	env := Env{
		Interner: source.NewInterner(),
		Syms:     symbols.NewStack(symbols.NewArena(0)),
		Tags:     symbols.NewTags(),
	}
	ParseFile(lx, ast.NewExprs(0), env, Options{MaxErrors: 1, Reporter: reporter})

	if bag.Len() != 1 {
		t.Fatalf("expected exactly 1 diagnostic under MaxErrors=1, got: %s", diagnosticsSummary(bag))
	}
	if countCode(bag, diag.SynUnsupportedExpr) != 1 {
		t.Errorf("the one diagnostic must be SynUnsupportedExpr, got: %s", diagnosticsSummary(bag))
	}
}

func TestUnitSpans(t *testing.T) {
	out := parseTestInput(t, "x + 1;")
	if out.bag.Len() > 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(out.bag))
	}
	sp := out.units[0].Span
	if sp.Start != 0 || sp.End != 6 {
		t.Errorf("unit span = [%d,%d), want [0,6) covering the semicolon", sp.Start, sp.End)
	}

	out = parseTestInput(t, "  x;")
	sp = out.units[0].Span
	if sp.Start != 2 || sp.End != 4 {
		t.Errorf("unit span = [%d,%d), want [2,4)", sp.Start, sp.End)
	}
}

// Result.Bag достаётся из репортера и в указательной, и в значенческой форме.
func TestResultBagExtraction(t *testing.T) {
	build := func(rep diag.Reporter) Result {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("test.c", []byte("int x;")))
		lx := lexer.New(file, lexer.Options{Reporter: rep})
		env := Env{
			Interner: source.NewInterner(),
			Syms:     symbols.NewStack(symbols.NewArena(0)),
			Tags:     symbols.NewTags(),
		}
		return ParseFile(lx, ast.NewExprs(0), env, Options{MaxErrors: 10, Reporter: rep})
	}

	bag := diag.NewBag(8)
	if res := build(&diag.BagReporter{Bag: bag}); res.Bag != bag {
		t.Error("pointer reporter: Result.Bag must be the reporter's bag")
	}
	bag = diag.NewBag(8)
	if res := build(diag.BagReporter{Bag: bag}); res.Bag != bag {
		t.Error("value reporter: Result.Bag must be the reporter's bag")
	}
}
