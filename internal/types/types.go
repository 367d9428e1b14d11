// Package types describes C types as plain Go values.
//
// A Type is a small struct owned by whoever holds it; pointee and element
// types are owned recursively through the Elem field. Copying a Type is
// cheap and never aliases mutable state, so the analyzer can retype nodes
// freely. The zero value is the Error sentinel, which compares unequal to
// every type including itself.
package types

import "cedar/internal/source"

// Kind discriminates the shape of a type.
type Kind uint8

const (
	// KindError is the poisoned type produced after a diagnostic. It is
	// also the zero value of Type.
	KindError Kind = iota
	// KindVoid is the incomplete `void` type.
	KindVoid
	// KindBool is `_Bool`.
	KindBool
	// KindChar is `char`, signed or unsigned per the Signed flag.
	KindChar
	// KindShort is `short`.
	KindShort
	// KindInt is `int`.
	KindInt
	// KindLong is `long`.
	KindLong
	// KindFloat is `float`.
	KindFloat
	// KindDouble is `double`.
	KindDouble
	// KindPointer is a pointer; Elem holds the pointee.
	KindPointer
	// KindArray is an array; Elem holds the element, Len the bound.
	KindArray
	// KindFunc is a function type; Sig holds the signature.
	KindFunc
	// KindStruct is a struct type named by Tag.
	KindStruct
	// KindUnion is a union type named by Tag.
	KindUnion
	// KindEnum is an enumerated type named by Tag, with Members.
	KindEnum
)

// String returns the kind name for diagnostics and dumps.
func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindVoid:
		return "void"
	case KindBool:
		return "_Bool"
	case KindChar:
		return "char"
	case KindShort:
		return "short"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindPointer:
		return "pointer"
	case KindArray:
		return "array"
	case KindFunc:
		return "function"
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Unbounded marks arrays whose length is not known, as in `int a[];`.
const Unbounded = ^uint64(0)

// Quals are type qualifiers. On a Pointer they qualify the pointer value
// itself; qualifiers on declared objects live in the symbol table instead.
type Quals struct {
	Const    bool
	Volatile bool
}

// EnumMember is a single enumerator. Enumerator names also live in the
// ordinary symbol namespace; the copy here keeps the type self-contained.
type EnumMember struct {
	Name  source.StringID
	Value int64
}

// Signature is the callable part of a function type.
type Signature struct {
	Return   Type
	Params   []Type
	Variadic bool
}

// Type is one C type. Which fields are meaningful depends on Kind:
//
//	Signed:  Char, Short, Int, Long
//	Quals:   Pointer
//	Elem:    Pointer (pointee), Array (element)
//	Len:     Array (element count or Unbounded)
//	Sig:     Func
//	Tag:     Struct, Union, Enum
//	Members: Enum
//
// Struct and union field lists are not stored here; they live in the tag
// registry so that two references to `struct s` stay structurally equal.
type Type struct {
	Kind    Kind
	Signed  bool
	Quals   Quals
	Elem    *Type
	Len     uint64
	Sig     *Signature
	Tag     source.StringID
	Members []EnumMember
}

// MakeError returns the poisoned sentinel type.
func MakeError() Type {
	return Type{Kind: KindError}
}

// MakeVoid returns `void`.
func MakeVoid() Type {
	return Type{Kind: KindVoid}
}

// MakeBool returns `_Bool`.
func MakeBool() Type {
	return Type{Kind: KindBool}
}

// MakeChar returns `char` with the given signedness.
func MakeChar(signed bool) Type {
	return Type{Kind: KindChar, Signed: signed}
}

// MakeShort returns `short` with the given signedness.
func MakeShort(signed bool) Type {
	return Type{Kind: KindShort, Signed: signed}
}

// MakeInt returns `int` with the given signedness.
func MakeInt(signed bool) Type {
	return Type{Kind: KindInt, Signed: signed}
}

// MakeLong returns `long` with the given signedness.
func MakeLong(signed bool) Type {
	return Type{Kind: KindLong, Signed: signed}
}

// MakeFloat returns `float`.
func MakeFloat() Type {
	return Type{Kind: KindFloat}
}

// MakeDouble returns `double`.
func MakeDouble() Type {
	return Type{Kind: KindDouble}
}

// MakePointer returns an unqualified pointer to elem. The pointee is
// copied, so the caller keeps ownership of its value.
func MakePointer(elem Type) Type {
	return Type{Kind: KindPointer, Elem: &elem}
}

// MakeArray returns an array of n elements. Pass Unbounded for `[]`.
func MakeArray(elem Type, n uint64) Type {
	return Type{Kind: KindArray, Elem: &elem, Len: n}
}

// MakeFunc returns a function type with the given signature.
func MakeFunc(sig Signature) Type {
	return Type{Kind: KindFunc, Sig: &sig}
}

// MakeStruct returns a struct type named by tag.
func MakeStruct(tag source.StringID) Type {
	return Type{Kind: KindStruct, Tag: tag}
}

// MakeUnion returns a union type named by tag.
func MakeUnion(tag source.StringID) Type {
	return Type{Kind: KindUnion, Tag: tag}
}

// MakeEnum returns an enum type named by tag with the given enumerators.
func MakeEnum(tag source.StringID, members []EnumMember) Type {
	return Type{Kind: KindEnum, Tag: tag, Members: members}
}
