package hir

import (
	"fmt"
	"strconv"
)

// Value is the decoded payload of a constant. The analyzer evaluates
// nothing; values pass through from the parser untouched except for the
// retyping casts wrap around them.
type Value interface {
	value()
	String() string
}

// IntVal is a signed integer constant.
type IntVal int64

// UintVal is an unsigned integer constant (U-suffixed in the source).
type UintVal uint64

// FloatVal is a floating constant.
type FloatVal float64

// CharVal is a character constant, already escape-decoded.
type CharVal byte

// StrVal is a string constant, escape-decoded, with the trailing NUL
// included so its length matches the array type's bound.
type StrVal []byte

func (IntVal) value()   {}
func (UintVal) value()  {}
func (FloatVal) value() {}
func (CharVal) value()  {}
func (StrVal) value()   {}

func (v IntVal) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v UintVal) String() string  { return strconv.FormatUint(uint64(v), 10) + "u" }
func (v FloatVal) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v CharVal) String() string  { return fmt.Sprintf("%q", rune(v)) }

func (v StrVal) String() string {
	// Без завершающего NUL: в исходнике его не было.
	b := []byte(v)
	if n := len(b); n > 0 && b[n-1] == 0 {
		b = b[:n-1]
	}
	return strconv.Quote(string(b))
}

// IsNull reports whether v is a null pointer constant: a literal zero
// of integer or character flavor.
func IsNull(v Value) bool {
	switch c := v.(type) {
	case IntVal:
		return c == 0
	case UintVal:
		return c == 0
	case CharVal:
		return c == 0
	default:
		return false
	}
}
