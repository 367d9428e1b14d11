// Package layout computes sizes, alignments and struct field offsets
// for a concrete ABI target. The analyzer asks it one question, the
// size of a pointee, but the engine answers for any complete type.
package layout

import "cedar/internal/types"

// Target pins the data model and alignment cap of one ABI triple.
// PtrAlign doubles as the maximum scalar alignment: on i686 a double is
// 8 bytes but 4-aligned, which the cap expresses directly.
type Target struct {
	Triple   string
	Model    types.DataModel
	PtrAlign uint64
}

// X86_64LinuxGNU is the default target: LP64, 8-byte pointers.
func X86_64LinuxGNU() Target {
	return Target{
		Triple:   "x86_64-linux-gnu",
		Model:    types.LP64(),
		PtrAlign: 8,
	}
}

// I686LinuxGNU is the 32-bit target: ILP32, 4-byte pointers.
func I686LinuxGNU() Target {
	return Target{
		Triple:   "i686-linux-gnu",
		Model:    types.ILP32(),
		PtrAlign: 4,
	}
}

// Lookup resolves a triple to a built-in target.
func Lookup(triple string) (Target, bool) {
	switch triple {
	case "", "x86_64-linux-gnu":
		return X86_64LinuxGNU(), true
	case "i686-linux-gnu":
		return I686LinuxGNU(), true
	default:
		return Target{}, false
	}
}
