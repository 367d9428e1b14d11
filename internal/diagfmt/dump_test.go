package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/hir"
	"cedar/internal/lexer"
	"cedar/internal/parser"
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/token"
	"cedar/internal/types"
)

func scanAll(t *testing.T, input string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(input)))

	lx := lexer.New(file, lexer.Options{})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, fs
		}
	}
}

func parseUnits(t *testing.T, input string) ([]ast.Unit, *ast.Exprs, *source.Interner, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.c", []byte(input)))

	bag := diag.NewBag(10)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	exprs := ast.NewExprs(0)
	env := parser.Env{
		Interner: source.NewInterner(),
		Syms:     symbols.NewStack(symbols.NewArena(0)),
		Tags:     symbols.NewTags(),
	}
	res := parser.ParseFile(lx, exprs, env, parser.Options{MaxErrors: 10, Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("parse failed: %d diagnostics", bag.Len())
	}
	return res.Units, exprs, env.Interner, fs
}

func TestFormatTokensPretty(t *testing.T) {
	tokens, fs := scanAll(t, "int x;")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	output := buf.String()

	for _, want := range []string{"int", "Ident", "\"x\"", ";", "EOF", "leading: Space"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if !strings.Contains(output, "at 1:1-1:4") {
		t.Errorf("expected the keyword position, got:\n%s", output)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	tokens, _ := scanAll(t, "int x;")

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}

	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 4 {
		t.Fatalf("token count = %d, want 4 (int, x, ;, EOF)", len(decoded))
	}
	if decoded[0].Kind != "int" || decoded[0].Text != "int" {
		t.Errorf("first token = %+v", decoded[0])
	}
	if decoded[1].Kind != "Ident" || decoded[1].Text != "x" {
		t.Errorf("second token = %+v", decoded[1])
	}
	if decoded[1].Leading == nil {
		t.Errorf("expected leading trivia on the identifier")
	}
	if decoded[3].Kind != "EOF" {
		t.Errorf("last token = %+v", decoded[3])
	}
}

func TestFormatUnitsPretty(t *testing.T) {
	units, exprs, interner, fs := parseUnits(t, "int x; x + 1;")

	var buf bytes.Buffer
	if err := FormatUnitsPretty(&buf, units, exprs, interner, fs); err != nil {
		t.Fatalf("FormatUnitsPretty: %v", err)
	}
	output := buf.String()

	for _, want := range []string{"unit[0]: decl", "unit[1]: expr", "Binary +", "Ident x", "Lit 1"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatUnitsJSON(t *testing.T) {
	units, exprs, interner, _ := parseUnits(t, "int x; x + 1;")

	var buf bytes.Buffer
	if err := FormatUnitsJSON(&buf, units, exprs, interner); err != nil {
		t.Fatalf("FormatUnitsJSON: %v", err)
	}

	var decoded []UnitOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("unit count = %d, want 2", len(decoded))
	}
	if decoded[0].Kind != "decl" || decoded[0].Expr != nil {
		t.Errorf("first unit = %+v", decoded[0])
	}
	root := decoded[1].Expr
	if root == nil || root.Kind != "Binary" || root.Text != "+" {
		t.Fatalf("second unit root = %+v", root)
	}
	if len(root.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(root.Children))
	}
	if root.Children[0].Kind != "Ident" || root.Children[0].Text != "x" {
		t.Errorf("left child = %+v", root.Children[0])
	}
	if root.Children[1].Kind != "Lit" || root.Children[1].Text != "1" {
		t.Errorf("right child = %+v", root.Children[1])
	}
}

func irTestTree() (*hir.Expr, *source.Interner) {
	interner := source.NewInterner()
	long := types.MakeLong(true)
	left := hir.Lit(hir.IntVal(1), long, source.Span{})
	right := hir.Lit(hir.IntVal(2), long, source.Span{})
	return hir.Binary(hir.OpAdd, left, right, long, source.Span{}), interner
}

func TestFormatIRPretty(t *testing.T) {
	tree, interner := irTestTree()

	var buf bytes.Buffer
	if err := FormatIRPretty(&buf, []*hir.Expr{tree}, interner); err != nil {
		t.Fatalf("FormatIRPretty: %v", err)
	}
	output := buf.String()

	for _, want := range []string{"expr[0]: (1 + 2)", "Binary + : long", "Lit 1 : long"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatIRJSON(t *testing.T) {
	tree, interner := irTestTree()

	var buf bytes.Buffer
	if err := FormatIRJSON(&buf, []*hir.Expr{tree}, interner); err != nil {
		t.Fatalf("FormatIRJSON: %v", err)
	}

	var decoded []IRNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("tree count = %d, want 1", len(decoded))
	}
	root := decoded[0]
	if root.Kind != "Binary" || root.Text != "+" || root.Type != "long" {
		t.Errorf("root = %+v", root)
	}
	if len(root.Children) != 2 || root.Children[0].Text != "1" {
		t.Errorf("children = %+v", root.Children)
	}
}
