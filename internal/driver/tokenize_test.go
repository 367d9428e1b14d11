package driver

import (
	"testing"

	"cedar/internal/ast"
	"cedar/internal/diag"
	"cedar/internal/token"
)

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "int x;\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	// int, x, ';' и завершающий EOF
	if len(res.Tokens) != 4 {
		t.Fatalf("tokens = %d, want 4", len(res.Tokens))
	}
	if res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("last token = %v, want EOF", res.Tokens[len(res.Tokens)-1].Kind)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics = %d, want 0", res.Bag.Len())
	}
	if res.FileSet == nil || res.File == nil {
		t.Fatal("file metadata must be populated")
	}
}

func TestTokenizeReportsLexErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.c", "int @;\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("want a lexical error")
	}
	if got := res.Bag.Items()[0].Code; got != diag.LexUnknownChar {
		t.Fatalf("code = %v, want LexUnknownChar", got)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := Tokenize(t.TempDir()+"/nope.c", 0); err == nil {
		t.Fatal("want load error")
	}
}

func TestParseHelper(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "int x; x + 1;\n")

	res, err := Parse(path, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("diagnostics = %d, want 0", res.Bag.Len())
	}
	if len(res.Units) != 2 {
		t.Fatalf("units = %d, want 2", len(res.Units))
	}
	if res.Units[0].Kind != ast.UnitDecl || res.Units[1].Kind != ast.UnitExpr {
		t.Fatalf("unit kinds = %v, %v", res.Units[0].Kind, res.Units[1].Kind)
	}
	if res.Interner == nil || res.Syms == nil || res.Tags == nil {
		t.Fatal("declaration state must be populated")
	}
}

func TestParseReportsLexDiagnosticsOnce(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.c", "1 $ 2;\n")

	res, err := Parse(path, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	count := 0
	for _, d := range res.Bag.Items() {
		if d.Code == diag.LexUnknownChar {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("lexical diagnostic reported %d times, want 1", count)
	}
}
