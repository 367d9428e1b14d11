package lexer

import (
	"strings"
	"testing"

	"cedar/internal/diag"
	"cedar/internal/source"
	"cedar/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte(src))
	bag := diag.NewBag(16)
	lx := New(fs.Get(fileID), Options{Reporter: &diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexSimpleExpression(t *testing.T) {
	toks, bag := lexAll(t, "a = b + 42;")
	want := []token.Kind{token.Ident, token.Assign, token.Ident, token.Plus, token.IntLit, token.Semicolon}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexKeywordsAndIdents(t *testing.T) {
	toks, _ := lexAll(t, "unsigned long x _Bool INT")
	want := []token.Kind{token.KwUnsigned, token.KwLong, token.Ident, token.KwBool, token.Ident}
	got := kinds(toks)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (%q)", i, got[i], want[i], toks[i].Text)
		}
	}
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"017", token.IntLit},
		{"0x1F", token.IntLit},
		{"42u", token.UintLit},
		{"42U", token.UintLit},
		{"42ul", token.UintLit},
		{"42lu", token.UintLit},
		{"42l", token.IntLit},
		{"1.0", token.FloatLit},
		{".5", token.FloatLit},
		{"1.", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"1.0e+10", token.FloatLit},
		{"1.5f", token.FloatLit},
	}
	for _, tc := range cases {
		toks, bag := lexAll(t, tc.src)
		if len(toks) != 1 {
			t.Fatalf("%q: got %d tokens", tc.src, len(toks))
		}
		if toks[0].Kind != tc.kind {
			t.Errorf("%q: got %v, want %v", tc.src, toks[0].Kind, tc.kind)
		}
		if toks[0].Text != tc.src {
			t.Errorf("%q: text %q", tc.src, toks[0].Text)
		}
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics: %v", tc.src, bag.Items())
		}
	}
}

func TestLexBadNumbers(t *testing.T) {
	cases := []string{"0x", "1e", "1e+", "123abc", "09"}
	for _, src := range cases {
		_, bag := lexAll(t, src)
		if !bag.HasErrors() {
			t.Errorf("%q: expected a diagnostic", src)
		}
		if bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: got %v, want LexBadNumber", src, bag.Items()[0].Code)
		}
	}
}

func TestLexOctalFloatIsNotOctalError(t *testing.T) {
	toks, bag := lexAll(t, "09.5")
	if bag.HasErrors() {
		t.Fatalf("09.5 is a valid float: %v", bag.Items())
	}
	if len(toks) != 1 || toks[0].Kind != token.FloatLit {
		t.Fatalf("got %v", kinds(toks))
	}
}

func TestLexCompoundOperators(t *testing.T) {
	toks, bag := lexAll(t, "a <<= 1; b >>= 2; c += 3; d != e; f->g")
	want := []token.Kind{
		token.Ident, token.ShlAssign, token.IntLit, token.Semicolon,
		token.Ident, token.ShrAssign, token.IntLit, token.Semicolon,
		token.Ident, token.PlusAssign, token.IntLit, token.Semicolon,
		token.Ident, token.BangEq, token.Ident, token.Semicolon,
		token.Ident, token.Arrow, token.Ident,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexCharLiterals(t *testing.T) {
	toks, bag := lexAll(t, `'a' '\n' '\x41' '\0'`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 4 {
		t.Fatalf("got %d tokens", len(toks))
	}
	for i, tok := range toks {
		if tok.Kind != token.CharLit {
			t.Fatalf("token %d: got %v", i, tok.Kind)
		}
	}
	vals := []byte{'a', '\n', 0x41, 0}
	for i, tok := range toks {
		v, ok := DecodeCharLit(tok.Text)
		if !ok || v != vals[i] {
			t.Fatalf("decode %q: got %d/%v, want %d", tok.Text, v, ok, vals[i])
		}
	}
}

func TestLexEmptyAndMultiChar(t *testing.T) {
	_, bag := lexAll(t, "''")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexEmptyChar {
		t.Fatalf("'' should report LexEmptyChar, got %v", bag.Items())
	}

	_, bag = lexAll(t, "'ab'")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexMultiChar {
		t.Fatalf("'ab' should report LexMultiChar, got %v", bag.Items())
	}
}

func TestLexStringLiteral(t *testing.T) {
	toks, bag := lexAll(t, `"hi\n\t\\" "x"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if len(toks) != 2 || toks[0].Kind != token.StringLit || toks[1].Kind != token.StringLit {
		t.Fatalf("got %v", kinds(toks))
	}
	if got := string(DecodeStringLit(toks[0].Text)); got != "hi\n\t\\" {
		t.Fatalf("decoded %q", got)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, bag := lexAll(t, "\"abc\nx;")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("got %v", bag.Items())
	}
}

func TestLexBadEscape(t *testing.T) {
	_, bag := lexAll(t, `"\q"`)
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexBadEscape {
		t.Fatalf("got %v", bag.Items())
	}
}

func TestLexComments(t *testing.T) {
	toks, bag := lexAll(t, "a /* mid */ b // tail\nc")
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Ident, token.Ident}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	// leading trivia: у 'b' — пробел, блочный комментарий, пробел
	var sawBlock bool
	for _, tr := range toks[1].Leading {
		if tr.Kind == token.TriviaBlockComment {
			sawBlock = true
		}
	}
	if !sawBlock {
		t.Fatalf("block comment trivia lost: %+v", toks[1].Leading)
	}
}

func TestLexCommentsDoNotNest(t *testing.T) {
	toks, bag := lexAll(t, "/* a /* b */ c")
	if bag.HasErrors() {
		t.Fatalf("C comments do not nest, '*/' closes: %v", bag.Items())
	}
	if len(toks) != 1 || toks[0].Kind != token.Ident || toks[0].Text != "c" {
		t.Fatalf("got %v", toks)
	}
}

func TestLexUnterminatedComment(t *testing.T) {
	_, bag := lexAll(t, "/* never closed")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("got %v", bag.Items())
	}
}

func TestLexPreprocessorLine(t *testing.T) {
	_, bag := lexAll(t, "#include <stdio.h>")
	if !bag.HasErrors() {
		t.Fatal("expected a diagnostic for '#'")
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("got %v", bag.Items()[0].Code)
	}
}

func TestTokenTooLongTriggersDiagnosticAndStops(t *testing.T) {
	content := strings.Repeat("a", maxTokenLength+1)
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("long.c", []byte(content))
	file := fs.Get(fileID)

	bag := diag.NewBag(4)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", tok.Kind)
	}
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics for long token")
	}
	items := bag.Items()
	if items[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %v", items[0].Code)
	}

	// Lexer should fast-forward to EOF after the error.
	if next := lx.Next(); next.Kind != token.EOF {
		t.Fatalf("expected EOF after long token, got %v", next.Kind)
	}
}

func TestTokenAtLimitAllowed(t *testing.T) {
	content := strings.Repeat("b", maxTokenLength)
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("limit.c", []byte(content))
	file := fs.Get(fileID)

	bag := diag.NewBag(1)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Fatalf("expected ident token, got %v", tok.Kind)
	}
	if bag.HasErrors() {
		t.Fatalf("did not expect diagnostics, got %v", bag.Items())
	}
}

func TestLexPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("peek.c", []byte("x y"))
	lx := New(fs.Get(fileID), Options{})

	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Text != n.Text {
		t.Fatalf("Peek %v != Next %v", p, n)
	}
	if next := lx.Next(); next.Text != "y" {
		t.Fatalf("expected y, got %q", next.Text)
	}
}

func TestLexSpans(t *testing.T) {
	toks, _ := lexAll(t, "ab + cd")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Fatalf("ab span %v", toks[0].Span)
	}
	if toks[1].Span.Start != 3 || toks[1].Span.End != 4 {
		t.Fatalf("+ span %v", toks[1].Span)
	}
	if toks[2].Span.Start != 5 || toks[2].Span.End != 7 {
		t.Fatalf("cd span %v", toks[2].Span)
	}
}
