package diag

import (
	"fmt"
)

// Code is a stable numeric diagnostic identifier. Codes are grouped into
// families by thousands: 1000 lexical, 2000 syntactic, 3000 semantic,
// 4000 I/O, 6000 observability.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedChar    Code = 1003
	LexBadNumber           Code = 1004
	LexTokenTooLong        Code = 1005
	LexBadEscape           Code = 1006
	LexEmptyChar           Code = 1007
	LexMultiChar           Code = 1008
	LexUnterminatedComment Code = 1009

	// Syntactic
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectExpression Code = 2003
	SynExpectType       Code = 2004
	SynExpectIdentifier Code = 2005
	SynUnclosedParen    Code = 2006
	SynExpectRBrace     Code = 2007
	SynUnsupportedExpr  Code = 2008
	SynExprTooDeep      Code = 2009
	SynEnumExpectBody   Code = 2010
	SynBadDeclarator    Code = 2011

	// Semantic
	SemInfo                  Code = 3000
	SemUndeclaredVar         Code = 3001
	SemTypedefInExpr         Code = 3002
	SemNonIntegralExpr       Code = 3003
	SemInvalidRelational     Code = 3004
	SemInvalidAdd            Code = 3005
	SemInvalidCast           Code = 3006
	SemNonScalarCast         Code = 3007
	SemFloatPointerCast      Code = 3008
	SemStructCast            Code = 3009
	SemVoidCast              Code = 3010
	SemPointerAddUnknownSize Code = 3011
	SemNotAssignable         Code = 3012
	SemTypeMismatch          Code = 3013
	SemInvalidDeref          Code = 3014
	SemRedeclaration         Code = 3015
	SemIncompleteType        Code = 3016

	// I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string literal",
	LexUnterminatedChar:    "Unterminated character constant",
	LexBadNumber:           "Malformed numeric literal",
	LexTokenTooLong:        "Token too long",
	LexBadEscape:           "Invalid escape sequence",
	LexEmptyChar:           "Empty character constant",
	LexMultiChar:           "Multi-character constant",
	LexUnterminatedComment: "Unterminated block comment",

	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectSemicolon:  "Expected ';'",
	SynExpectExpression: "Expected expression",
	SynExpectType:       "Expected type name",
	SynExpectIdentifier: "Expected identifier",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynExpectRBrace:     "Expected '}'",
	SynUnsupportedExpr:  "Unsupported expression form",
	SynExprTooDeep:      "Expression nesting too deep",
	SynEnumExpectBody:   "Expected enum body",
	SynBadDeclarator:    "Malformed declarator",

	SemInfo:                  "Semantic information",
	SemUndeclaredVar:         "Use of undeclared identifier",
	SemTypedefInExpr:         "Type name used as a value",
	SemNonIntegralExpr:       "Operand is not an integral type",
	SemInvalidRelational:     "Invalid operands to comparison",
	SemInvalidAdd:            "Invalid operands to additive operator",
	SemInvalidCast:           "No implicit conversion between types",
	SemNonScalarCast:         "Cast target is not a scalar type",
	SemFloatPointerCast:      "Cast between floating and pointer type",
	SemStructCast:            "Cast from a struct or union type",
	SemVoidCast:              "Cast from void",
	SemPointerAddUnknownSize: "Pointer arithmetic on type of unknown size",
	SemNotAssignable:         "Expression is not assignable",
	SemTypeMismatch:          "Operand type mismatch",
	SemInvalidDeref:          "Dereference of a non-pointer",
	SemRedeclaration:         "Redeclaration in the same scope",
	SemIncompleteType:        "Variable has incomplete type",

	IOLoadFileError: "I/O load file error",

	ObsInfo:    "Observability information",
	ObsTimings: "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
