package symbols

import (
	"cedar/internal/source"
	"cedar/internal/types"
)

// TagKind discriminates the three C tag flavors. They share one
// namespace: `struct s` and `union s` in one file collide.
type TagKind uint8

const (
	TagStruct TagKind = iota
	TagUnion
	TagEnum
)

// String returns the C keyword of the tag kind.
func (k TagKind) String() string {
	switch k {
	case TagStruct:
		return "struct"
	case TagUnion:
		return "union"
	case TagEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Field is one struct or union member.
type Field struct {
	Name  source.StringID
	Type  types.Type
	Quals types.Quals
}

// TagDef is a completed tag definition. Fields is set for struct and
// union tags, Members for enum tags.
type TagDef struct {
	Kind    TagKind
	Fields  []Field
	Members []types.EnumMember
	Span    source.Span
}

// Tags registers tag definitions for one file. The declaration layer is
// file-scoped, so the registry is flat rather than stacked.
type Tags struct {
	defs map[source.StringID]TagDef
}

// NewTags creates an empty registry.
func NewTags() *Tags {
	return &Tags{defs: make(map[source.StringID]TagDef)}
}

// Define records def under tag. It reports false when the tag already
// has a definition, leaving the first one in place.
func (t *Tags) Define(tag source.StringID, def TagDef) bool {
	if _, ok := t.defs[tag]; ok {
		return false
	}
	t.defs[tag] = def
	return true
}

// Lookup returns the definition of tag.
func (t *Tags) Lookup(tag source.StringID) (TagDef, bool) {
	def, ok := t.defs[tag]
	return def, ok
}

// Fields returns the member list of a struct or union tag.
func (t *Tags) Fields(tag source.StringID) ([]Field, bool) {
	def, ok := t.defs[tag]
	if !ok || def.Kind == TagEnum {
		return nil, false
	}
	return def.Fields, true
}

// HasConstMember reports whether the struct or union named by tag has a
// const-qualified member, looking through directly embedded aggregates.
// Undefined tags report false.
func (t *Tags) HasConstMember(tag source.StringID) bool {
	return t.hasConstMember(tag, make(map[source.StringID]bool))
}

func (t *Tags) hasConstMember(tag source.StringID, seen map[source.StringID]bool) bool {
	if seen[tag] {
		return false
	}
	seen[tag] = true
	fields, ok := t.Fields(tag)
	if !ok {
		return false
	}
	for _, f := range fields {
		if f.Quals.Const {
			return true
		}
		if f.Type.IsStructOrUnion() && t.hasConstMember(f.Type.Tag, seen) {
			return true
		}
	}
	return false
}
