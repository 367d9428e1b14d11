package types

import "fmt"

// IsError reports whether t is the poisoned sentinel.
func (t Type) IsError() bool {
	return t.Kind == KindError
}

// IsVoid reports whether t is `void`.
func (t Type) IsVoid() bool {
	return t.Kind == KindVoid
}

// IsIntegral reports whether t is an integer type. Enums count: in C an
// enum is an integer type compatible with int.
func (t Type) IsIntegral() bool {
	switch t.Kind {
	case KindBool, KindChar, KindShort, KindInt, KindLong, KindEnum:
		return true
	default:
		return false
	}
}

// IsFloating reports whether t is `float` or `double`.
func (t Type) IsFloating() bool {
	return t.Kind == KindFloat || t.Kind == KindDouble
}

// IsArithmetic reports whether t is an integer or floating type.
func (t Type) IsArithmetic() bool {
	return t.IsIntegral() || t.IsFloating()
}

// IsPointer reports whether t is a pointer.
func (t Type) IsPointer() bool {
	return t.Kind == KindPointer
}

// IsScalar reports whether t is arithmetic or a pointer.
func (t Type) IsScalar() bool {
	return t.IsArithmetic() || t.IsPointer()
}

// IsVoidPointer reports whether t is `void *`.
func (t Type) IsVoidPointer() bool {
	return t.Kind == KindPointer && t.Elem.Kind == KindVoid
}

// IsCharPointer reports whether t points to char of either signedness.
func (t Type) IsCharPointer() bool {
	return t.Kind == KindPointer && t.Elem.Kind == KindChar
}

// IsStructOrUnion reports whether t is a struct or union type.
func (t Type) IsStructOrUnion() bool {
	return t.Kind == KindStruct || t.Kind == KindUnion
}

// IsFunc reports whether t is a function type.
func (t Type) IsFunc() bool {
	return t.Kind == KindFunc
}

// IsArray reports whether t is an array type.
func (t Type) IsArray() bool {
	return t.Kind == KindArray
}

// IsComplete reports whether objects of t have a known size. Void,
// function types and arrays of unknown bound are incomplete; everything
// else counts as complete, including struct references whose tag has no
// definition yet (those fail later, in layout).
func (t Type) IsComplete() bool {
	switch t.Kind {
	case KindVoid, KindFunc:
		return false
	case KindArray:
		return t.Len != Unbounded
	default:
		return true
	}
}

// IsPointerToCompleteObject reports whether pointer arithmetic on t is
// well defined. Arrays qualify as a whole because they decay to such a
// pointer.
func (t Type) IsPointerToCompleteObject() bool {
	switch t.Kind {
	case KindPointer:
		return t.Elem.IsComplete() && !t.Elem.IsFunc()
	case KindArray:
		return true
	default:
		return false
	}
}

const rankMax = int(^uint(0) >> 1)

// Rank orders the integer types for promotion. Bool ranks below char,
// char below short and so on up to long. Enums and non-integral kinds
// rank maximal, which keeps them out of integer promotion.
func (t Type) Rank() int {
	switch t.Kind {
	case KindBool:
		return 0
	case KindChar:
		return 1
	case KindShort:
		return 2
	case KindInt:
		return 3
	case KindLong:
		return 4
	default:
		return rankMax
	}
}

// Sign reports whether t is a signed integer type. Bool is unsigned and
// enums are signed. Sign panics on non-integral types; callers must
// classify operands before promotion.
func (t Type) Sign() bool {
	switch t.Kind {
	case KindChar, KindShort, KindInt, KindLong:
		return t.Signed
	case KindBool:
		return false
	case KindEnum:
		return true
	default:
		panic(fmt.Sprintf("types: Sign on non-integral type %s", t.Kind))
	}
}

// Equal reports structural equality. The Error sentinel is unequal to
// everything, itself included, so poisoned expressions never satisfy a
// same-type fast path.
func (t Type) Equal(other Type) bool {
	if t.Kind == KindError || other.Kind == KindError {
		return false
	}
	if t.Kind != other.Kind || t.Signed != other.Signed || t.Quals != other.Quals {
		return false
	}
	switch t.Kind {
	case KindPointer:
		return t.Elem.Equal(*other.Elem)
	case KindArray:
		return t.Len == other.Len && t.Elem.Equal(*other.Elem)
	case KindFunc:
		return t.Sig.equal(other.Sig)
	case KindStruct, KindUnion:
		return t.Tag == other.Tag
	case KindEnum:
		if t.Tag != other.Tag || len(t.Members) != len(other.Members) {
			return false
		}
		for i, m := range t.Members {
			if m != other.Members[i] {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (s *Signature) equal(other *Signature) bool {
	if !s.Return.Equal(other.Return) {
		return false
	}
	if s.Variadic != other.Variadic || len(s.Params) != len(other.Params) {
		return false
	}
	for i, p := range s.Params {
		if !p.Equal(other.Params[i]) {
			return false
		}
	}
	return true
}
