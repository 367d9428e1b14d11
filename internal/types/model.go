package types

// DataModel fixes the size in bytes of every scalar kind. Promotion
// results depend on it: `long` and `int` are distinct types either way,
// but whether one can represent the other is a model question.
type DataModel struct {
	BoolSize    uint64
	CharSize    uint64
	ShortSize   uint64
	IntSize     uint64
	LongSize    uint64
	FloatSize   uint64
	DoubleSize  uint64
	PointerSize uint64
}

// LP64 is the model of 64-bit Linux: 8-byte long and pointer.
func LP64() DataModel {
	return DataModel{
		BoolSize:    1,
		CharSize:    1,
		ShortSize:   2,
		IntSize:     4,
		LongSize:    8,
		FloatSize:   4,
		DoubleSize:  8,
		PointerSize: 8,
	}
}

// ILP32 is the model of 32-bit Linux: 4-byte long and pointer.
func ILP32() DataModel {
	return DataModel{
		BoolSize:    1,
		CharSize:    1,
		ShortSize:   2,
		IntSize:     4,
		LongSize:    4,
		FloatSize:   4,
		DoubleSize:  8,
		PointerSize: 4,
	}
}

// Size returns the size of t in bytes, or ok=false when the size is not
// known at this level. Aggregates and enums with missing definitions are
// resolved by the layout engine, which also knows the tag registry;
// here only scalars, pointers and arrays of sized elements resolve.
func (m DataModel) Size(t Type) (uint64, bool) {
	switch t.Kind {
	case KindBool:
		return m.BoolSize, true
	case KindChar:
		return m.CharSize, true
	case KindShort:
		return m.ShortSize, true
	case KindInt:
		return m.IntSize, true
	case KindLong:
		return m.LongSize, true
	case KindFloat:
		return m.FloatSize, true
	case KindDouble:
		return m.DoubleSize, true
	case KindPointer:
		return m.PointerSize, true
	case KindEnum:
		return m.IntSize, true
	case KindArray:
		if t.Len == Unbounded {
			return 0, false
		}
		elem, ok := m.Size(*t.Elem)
		if !ok {
			return 0, false
		}
		return elem * t.Len, true
	default:
		return 0, false
	}
}

// CanRepresent reports whether every value of other fits in t. Double
// represents float; among integer types a strictly larger one always
// fits a smaller one, and equal sizes fit only with matching signedness.
func (m DataModel) CanRepresent(t, other Type) bool {
	if t.Equal(other) {
		return true
	}
	if t.Kind == KindDouble && other.Kind == KindFloat {
		return true
	}
	if !t.IsIntegral() || !other.IsIntegral() {
		return false
	}
	ts, _ := m.Size(t)
	os, _ := m.Size(other)
	return ts > os || ts == os && t.Sign() == other.Sign()
}

// IntegerPromote applies the C integer promotions: integer types ranking
// at or below int become int, keeping signedness only when int can hold
// all their values. Higher ranks, enums and non-integral types pass
// through unchanged.
func (m DataModel) IntegerPromote(t Type) Type {
	if t.Rank() <= MakeInt(true).Rank() {
		if m.CanRepresent(MakeInt(true), t) {
			return MakeInt(true)
		}
		return MakeInt(false)
	}
	return t
}

// BinaryPromote computes the usual arithmetic conversions for a binary
// operator. Double wins over everything, then float; otherwise both
// sides integer-promote and the common type is picked by rank when the
// signs agree (left wins ties) or by representability when they differ.
// Both arguments must be arithmetic; Sign panics otherwise, so callers
// classify operands first.
func (m DataModel) BinaryPromote(left, right Type) Type {
	if left.Kind == KindDouble || right.Kind == KindDouble {
		return MakeDouble()
	}
	if left.Kind == KindFloat || right.Kind == KindFloat {
		return MakeFloat()
	}
	left = m.IntegerPromote(left)
	right = m.IntegerPromote(right)
	if left.Sign() == right.Sign() {
		if left.Rank() >= right.Rank() {
			return left
		}
		return right
	}
	signed, unsigned := left, right
	if right.Sign() {
		signed, unsigned = right, left
	}
	if m.CanRepresent(signed, unsigned) {
		return signed
	}
	return unsigned
}
