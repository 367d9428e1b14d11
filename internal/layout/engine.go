package layout

import (
	"cedar/internal/source"
	"cedar/internal/symbols"
	"cedar/internal/types"
)

// TypeLayout is the computed layout of one type.
type TypeLayout struct {
	Size  uint64
	Align uint64

	// Struct-only: byte offset of each field in registry order.
	FieldOffsets []uint64
}

// Engine resolves sizes against a target and the tag registry.
type Engine struct {
	Target Target
	Tags   *symbols.Tags
}

// NewEngine creates an engine. tags may be nil when no aggregates can
// occur, as in expression-only tests.
func NewEngine(target Target, tags *symbols.Tags) *Engine {
	return &Engine{Target: target, Tags: tags}
}

// SizeOf returns the byte size of t.
func (e *Engine) SizeOf(t types.Type) (uint64, error) {
	l, err := e.layoutOf(t, nil)
	if err != nil {
		return 0, err
	}
	return l.Size, nil
}

// AlignOf returns the alignment requirement of t.
func (e *Engine) AlignOf(t types.Type) (uint64, error) {
	l, err := e.layoutOf(t, nil)
	if err != nil {
		return 0, err
	}
	return l.Align, nil
}

// Layout returns the full layout of t, field offsets included.
func (e *Engine) Layout(t types.Type) (TypeLayout, error) {
	return e.layoutOf(t, nil)
}

// layoutOf recurses with the set of struct tags currently being laid
// out, turning by-value self-embedding into an error instead of a hang.
func (e *Engine) layoutOf(t types.Type, busy map[source.StringID]bool) (TypeLayout, error) {
	switch t.Kind {
	case types.KindBool, types.KindChar, types.KindShort, types.KindInt,
		types.KindLong, types.KindFloat, types.KindDouble, types.KindEnum:
		size, _ := e.Target.Model.Size(t)
		return TypeLayout{Size: size, Align: e.scalarAlign(size)}, nil

	case types.KindPointer:
		size := e.Target.Model.PointerSize
		return TypeLayout{Size: size, Align: e.scalarAlign(size)}, nil

	case types.KindArray:
		if t.Len == types.Unbounded {
			return TypeLayout{}, &Error{Kind: ErrIncomplete, Type: t}
		}
		elem, err := e.layoutOf(*t.Elem, busy)
		if err != nil {
			return TypeLayout{}, err
		}
		if t.Len != 0 && elem.Size > ^uint64(0)/t.Len {
			return TypeLayout{}, &Error{Kind: ErrTooLarge, Type: t}
		}
		return TypeLayout{Size: elem.Size * t.Len, Align: elem.Align}, nil

	case types.KindStruct, types.KindUnion:
		return e.aggregateLayout(t, busy)

	default:
		// Void, Func, Error.
		return TypeLayout{}, &Error{Kind: ErrIncomplete, Type: t}
	}
}

func (e *Engine) aggregateLayout(t types.Type, busy map[source.StringID]bool) (TypeLayout, error) {
	if busy[t.Tag] {
		return TypeLayout{}, &Error{Kind: ErrRecursive, Type: t}
	}
	var fields []symbols.Field
	if e.Tags != nil {
		var ok bool
		fields, ok = e.Tags.Fields(t.Tag)
		if !ok {
			return TypeLayout{}, &Error{Kind: ErrUnknownTag, Type: t}
		}
	} else {
		return TypeLayout{}, &Error{Kind: ErrUnknownTag, Type: t}
	}

	if busy == nil {
		busy = make(map[source.StringID]bool)
	}
	busy[t.Tag] = true
	defer delete(busy, t.Tag)

	if t.Kind == types.KindUnion {
		var size, align uint64 = 0, 1
		for _, f := range fields {
			fl, err := e.layoutOf(f.Type, busy)
			if err != nil {
				return TypeLayout{}, err
			}
			size = max(size, fl.Size)
			align = max(align, fl.Align)
		}
		return TypeLayout{Size: roundUp(size, align), Align: align}, nil
	}

	var off, align uint64 = 0, 1
	offsets := make([]uint64, 0, len(fields))
	for _, f := range fields {
		fl, err := e.layoutOf(f.Type, busy)
		if err != nil {
			return TypeLayout{}, err
		}
		off = roundUp(off, fl.Align)
		offsets = append(offsets, off)
		off += fl.Size
		align = max(align, fl.Align)
	}
	return TypeLayout{Size: roundUp(off, align), Align: align, FieldOffsets: offsets}, nil
}

// scalarAlign is natural alignment capped by the target. The cap is
// what makes i686 align doubles to 4.
func (e *Engine) scalarAlign(size uint64) uint64 {
	if size == 0 {
		return 1
	}
	return min(size, e.Target.PtrAlign)
}

func roundUp(n, align uint64) uint64 {
	if align == 0 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + align - rem
}
