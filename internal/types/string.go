package types

import (
	"fmt"

	"cedar/internal/source"
)

// String renders t in C declaration syntax: "unsigned int", "char *",
// "int [4]", "void (*)()". Struct, union and enum tags print as raw
// handles; use Render when an interner is at hand.
func (t Type) String() string {
	return t.text(nil)
}

// Render is String with tag names resolved through lookup.
func (t Type) Render(lookup func(source.StringID) string) string {
	return t.text(lookup)
}

func (t Type) text(lookup func(source.StringID) string) string {
	spec, decl := t.declarator("", false, lookup)
	if decl == "" {
		return spec
	}
	return spec + " " + decl
}

// declarator walks from the outer type inward, growing the declarator
// string the way C reads it inside out. ptr tells an array or function
// level that the declarator built so far starts with a `*` and needs
// parentheses.
func (t Type) declarator(decl string, ptr bool, lookup func(source.StringID) string) (string, string) {
	switch t.Kind {
	case KindPointer:
		star := "*"
		if t.Quals.Const {
			star += "const"
		}
		if t.Quals.Volatile {
			star += "volatile"
		}
		return t.Elem.declarator(star+decl, true, lookup)
	case KindArray:
		if ptr {
			decl = "(" + decl + ")"
		}
		bound := "[]"
		if t.Len != Unbounded {
			bound = fmt.Sprintf("[%d]", t.Len)
		}
		return t.Elem.declarator(decl+bound, false, lookup)
	case KindFunc:
		if ptr {
			decl = "(" + decl + ")"
		}
		return t.Sig.Return.declarator(decl+"()", false, lookup)
	default:
		return t.specifier(lookup), decl
	}
}

func (t Type) specifier(lookup func(source.StringID) string) string {
	switch t.Kind {
	case KindError:
		return "<error>"
	case KindVoid:
		return "void"
	case KindBool:
		return "_Bool"
	case KindFloat:
		return "float"
	case KindDouble:
		return "double"
	case KindChar, KindShort, KindInt, KindLong:
		name := t.Kind.String()
		if !t.Signed {
			return "unsigned " + name
		}
		return name
	case KindStruct, KindUnion, KindEnum:
		return t.Kind.String() + " " + tagName(t.Tag, lookup)
	default:
		return "<unknown>"
	}
}

func tagName(tag source.StringID, lookup func(source.StringID) string) string {
	if tag == source.NoStringID {
		return "<anonymous>"
	}
	if lookup == nil {
		return fmt.Sprintf("#%d", tag)
	}
	return lookup(tag)
}
