package token_test

import (
	"testing"

	"cedar/internal/source"
	"cedar/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.IntLit, token.UintLit, token.FloatLit,
		token.CharLit, token.StringLit,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwInt, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign,
		token.CaretAssign, token.ShlAssign, token.ShrAssign,
		token.EqEq, token.Bang, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Shl, token.Shr, token.Amp, token.Pipe, token.Caret, token.Tilde,
		token.AndAnd, token.OrOr, token.PlusPlus, token.MinusMinus,
		token.Question, token.Colon, token.Semicolon, token.Comma,
		token.Dot, token.Arrow, token.Ellipsis,
		token.LParen, token.RParen, token.LBrace, token.RBrace, token.LBracket, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.IntLit}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsIdent(t *testing.T) {
	if !tok(token.Ident).IsIdent() {
		t.Fatalf("Ident should be ident")
	}
	if tok(token.KwInt).IsIdent() {
		t.Fatalf("KwInt must not be ident")
	}
}

func TestIsKeyword(t *testing.T) {
	keywords := []token.Kind{
		token.KwAuto, token.KwBreak, token.KwCase, token.KwChar, token.KwConst,
		token.KwContinue, token.KwDefault, token.KwDo, token.KwDouble, token.KwElse,
		token.KwEnum, token.KwExtern, token.KwFloat, token.KwFor, token.KwGoto,
		token.KwIf, token.KwInt, token.KwLong, token.KwRegister, token.KwReturn,
		token.KwShort, token.KwSigned, token.KwSizeof, token.KwStatic, token.KwStruct,
		token.KwSwitch, token.KwTypedef, token.KwUnion, token.KwUnsigned, token.KwVoid,
		token.KwVolatile, token.KwWhile, token.KwBool,
	}
	for _, k := range keywords {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
}

func TestIsDeclSpec(t *testing.T) {
	yes := []token.Kind{
		token.KwVoid, token.KwChar, token.KwInt, token.KwUnsigned, token.KwBool,
		token.KwConst, token.KwStruct, token.KwEnum, token.KwTypedef, token.KwStatic,
	}
	for _, k := range yes {
		if !tok(k).IsDeclSpec() {
			t.Fatalf("%v should start a declaration", k)
		}
	}
	no := []token.Kind{token.Ident, token.KwSizeof, token.KwReturn, token.Star}
	for _, k := range no {
		if tok(k).IsDeclSpec() {
			t.Fatalf("%v must NOT start a declaration", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("unsigned"); !ok || k != token.KwUnsigned {
		t.Fatalf("unsigned -> %v, %v", k, ok)
	}
	if k, ok := token.LookupKeyword("_Bool"); !ok || k != token.KwBool {
		t.Fatalf("_Bool -> %v, %v", k, ok)
	}
	if _, ok := token.LookupKeyword("INT"); ok {
		t.Fatalf("keywords must be case-sensitive")
	}
	if _, ok := token.LookupKeyword("bool"); ok {
		t.Fatalf("bool is not reserved, only _Bool")
	}
}
