package types

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSize(t *testing.T) {
	lp64 := LP64()
	ilp32 := ILP32()

	tests := []struct {
		model DataModel
		typ   Type
		want  uint64
		ok    bool
	}{
		{lp64, MakeBool(), 1, true},
		{lp64, MakeChar(false), 1, true},
		{lp64, MakeShort(true), 2, true},
		{lp64, MakeInt(true), 4, true},
		{lp64, MakeLong(true), 8, true},
		{ilp32, MakeLong(true), 4, true},
		{lp64, MakeFloat(), 4, true},
		{lp64, MakeDouble(), 8, true},
		{lp64, MakePointer(MakeVoid()), 8, true},
		{ilp32, MakePointer(MakeVoid()), 4, true},
		{lp64, MakeEnum(1, nil), 4, true},
		{lp64, MakeArray(MakeInt(true), 3), 12, true},
		{lp64, MakeArray(MakeArray(MakeChar(true), 2), 5), 10, true},
		{lp64, MakeArray(MakeInt(true), Unbounded), 0, false},
		{lp64, MakeVoid(), 0, false},
		{lp64, MakeStruct(1), 0, false},
		{lp64, MakeFunc(Signature{Return: MakeVoid()}), 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.model.Size(tt.typ)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Size(%s) = (%d, %v), want (%d, %v)", tt.typ, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCanRepresent(t *testing.T) {
	m := LP64()
	tests := []struct {
		t, other Type
		want     bool
	}{
		{MakeInt(true), MakeInt(true), true},
		{MakeDouble(), MakeFloat(), true},
		{MakeFloat(), MakeDouble(), false},
		{MakeInt(true), MakeChar(false), true},
		{MakeInt(true), MakeInt(false), false},
		{MakeLong(true), MakeInt(false), true},
		{MakeLong(true), MakeLong(false), false},
		{MakeLong(false), MakeLong(false), true},
		{MakeInt(true), MakeError(), false},
		{MakeDouble(), MakeLong(true), false},
	}
	for _, tt := range tests {
		if got := m.CanRepresent(tt.t, tt.other); got != tt.want {
			t.Errorf("CanRepresent(%s, %s) = %v, want %v", tt.t, tt.other, got, tt.want)
		}
	}

	// long fits unsigned int only when it is wider.
	if ILP32().CanRepresent(MakeLong(true), MakeInt(false)) {
		t.Errorf("4-byte long cannot hold every unsigned int")
	}
}

func TestIntegerPromote(t *testing.T) {
	m := LP64()
	tests := []struct {
		typ, want Type
	}{
		{MakeBool(), MakeInt(true)},
		{MakeChar(true), MakeInt(true)},
		{MakeChar(false), MakeInt(true)},
		{MakeShort(true), MakeInt(true)},
		{MakeShort(false), MakeInt(true)},
		{MakeInt(true), MakeInt(true)},
		{MakeInt(false), MakeInt(false)},
		{MakeLong(true), MakeLong(true)},
		{MakeLong(false), MakeLong(false)},
		{MakeFloat(), MakeFloat()},
		{MakeEnum(3, nil), MakeEnum(3, nil)},
	}
	for _, tt := range tests {
		got := m.IntegerPromote(tt.typ)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("IntegerPromote(%s) mismatch (-want +got):\n%s", tt.typ, diff)
		}
	}
}

func TestBinaryPromote(t *testing.T) {
	m := LP64()
	tests := []struct {
		left, right, want Type
	}{
		{MakeLong(true), MakeDouble(), MakeDouble()},
		{MakeDouble(), MakeFloat(), MakeDouble()},
		{MakeFloat(), MakeLong(true), MakeFloat()},
		{MakeLong(true), MakeLong(true), MakeLong(true)},
		{MakeChar(true), MakeChar(true), MakeInt(true)},
		{MakeBool(), MakeShort(false), MakeInt(true)},
		{MakeInt(true), MakeInt(false), MakeInt(false)},
		{MakeLong(true), MakeInt(false), MakeLong(true)},
		{MakeLong(false), MakeInt(true), MakeLong(false)},
		{MakeInt(false), MakeLong(false), MakeLong(false)},
		{MakeEnum(2, nil), MakeLong(true), MakeEnum(2, nil)},
	}
	for _, tt := range tests {
		got := m.BinaryPromote(tt.left, tt.right)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("BinaryPromote(%s, %s) mismatch (-want +got):\n%s", tt.left, tt.right, diff)
		}
	}

	// Узкий long: при равном размере знаковая сторона проигрывает.
	got := ILP32().BinaryPromote(MakeLong(true), MakeInt(false))
	if diff := cmp.Diff(MakeInt(false), got); diff != "" {
		t.Errorf("ILP32 BinaryPromote(long, unsigned int) mismatch (-want +got):\n%s", diff)
	}
}

func TestBinaryPromoteCommutative(t *testing.T) {
	m := LP64()
	grid := []Type{
		MakeBool(),
		MakeChar(true), MakeChar(false),
		MakeShort(true), MakeShort(false),
		MakeInt(true), MakeInt(false),
		MakeLong(true), MakeLong(false),
		MakeFloat(), MakeDouble(),
	}
	for _, a := range grid {
		for _, b := range grid {
			ab := m.BinaryPromote(a, b)
			ba := m.BinaryPromote(b, a)
			if !ab.Equal(ba) {
				t.Errorf("BinaryPromote(%s, %s) = %s but reversed gives %s", a, b, ab, ba)
			}
		}
	}
}

func TestBinaryPromotePanicsOnPointer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("BinaryPromote must panic when an operand is not arithmetic")
		}
	}()
	LP64().BinaryPromote(MakeLong(true), MakePointer(MakeChar(true)))
}
