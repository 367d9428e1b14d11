package token

import (
	"cedar/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, character, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, UintLit, FloatLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Assign, PlusAssign, MinusAssign, StarAssign,
		SlashAssign, PercentAssign, AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign,
		EqEq, Bang, BangEq, Lt, LtEq, Gt, GtEq, Shl, Shr, Amp, Pipe, Caret, Tilde, AndAnd, OrOr,
		PlusPlus, MinusMinus, Question, Colon, Semicolon, Comma, Dot, Arrow, Ellipsis,
		LParen, RParen, LBrace, RBrace, LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved C keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwAuto, KwBreak, KwCase, KwChar, KwConst, KwContinue, KwDefault, KwDo, KwDouble,
		KwElse, KwEnum, KwExtern, KwFloat, KwFor, KwGoto, KwIf, KwInt, KwLong, KwRegister,
		KwReturn, KwShort, KwSigned, KwSizeof, KwStatic, KwStruct, KwSwitch, KwTypedef,
		KwUnion, KwUnsigned, KwVoid, KwVolatile, KwWhile, KwBool:
		return true
	default:
		return false
	}
}

// IsDeclSpec reports whether the token can start a declaration: a type
// specifier, a qualifier, a storage class, or a tag keyword. Typedef names
// also start declarations but need the symbol table to recognize, so the
// parser handles them separately.
func (t Token) IsDeclSpec() bool {
	switch t.Kind {
	case KwVoid, KwChar, KwShort, KwInt, KwLong, KwFloat, KwDouble, KwSigned, KwUnsigned,
		KwBool, KwConst, KwVolatile, KwStruct, KwUnion, KwEnum, KwTypedef, KwExtern,
		KwStatic, KwRegister, KwAuto:
		return true
	default:
		return false
	}
}

// IsAssignOp reports whether the token is '=' or one of the compound
// assignment operators.
func (t Token) IsAssignOp() bool {
	switch t.Kind {
	case Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign, PercentAssign,
		AmpAssign, PipeAssign, CaretAssign, ShlAssign, ShrAssign:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
