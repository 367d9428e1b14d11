package ast

import (
	"cedar/internal/source"
	"cedar/internal/token"
	"cedar/internal/types"
)

// LitKind discriminates constant flavors after the parser has decoded
// the token text.
type LitKind uint8

const (
	// LitInt is an unsuffixed integer constant.
	LitInt LitKind = iota
	// LitUint is a U-suffixed integer constant.
	LitUint
	// LitFloat is a floating constant.
	LitFloat
	// LitChar is a character constant, escape-decoded.
	LitChar
	// LitStr is a string literal, escape-decoded, NUL-terminated.
	LitStr
)

// LitData is the payload of ExprLit. One field per flavor; Kind says
// which one is set.
type LitData struct {
	Kind  LitKind
	Int   int64
	Uint  uint64
	Float float64
	Char  byte
	Str   []byte
}

// IdentData is the payload of ExprIdent.
type IdentData struct {
	Name source.StringID
}

// UnaryData is the payload of ExprUnary. Op is the source token kind:
// token.Minus or token.Star.
type UnaryData struct {
	Op      token.Kind
	Operand ExprID
}

// BinaryData is the payload of ExprBinary. Op is the operator token.
type BinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

// AssignData is the payload of ExprAssign. Op is token.Assign or one of
// the compound-assignment tokens.
type AssignData struct {
	Op     token.Kind
	Target ExprID
	Value  ExprID
}

// CastData is the payload of ExprCast. The parser resolves the written
// type-name, typedefs included, so the target arrives as a ready type.
type CastData struct {
	Target types.Type
	Inner  ExprID
}
