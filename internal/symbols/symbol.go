// Package symbols holds the declaration state the analyzer resolves
// identifiers against: an arena of symbols, a lexical scope stack over
// it, and the registry of struct, union and enum tags.
package symbols

import (
	"cedar/internal/source"
	"cedar/internal/types"
)

// Storage is a C storage class.
type Storage uint8

const (
	StorageAuto Storage = iota
	StorageRegister
	StorageStatic
	StorageExtern
	// StorageTypedef marks a name that aliases a type. Typedef names
	// never denote objects; using one in an expression is an error.
	StorageTypedef
)

// String returns the C spelling of the storage class.
func (s Storage) String() string {
	switch s {
	case StorageAuto:
		return "auto"
	case StorageRegister:
		return "register"
	case StorageStatic:
		return "static"
	case StorageExtern:
		return "extern"
	case StorageTypedef:
		return "typedef"
	default:
		return "unknown"
	}
}

// Symbol describes one declared name. Symbols live in the arena for the
// whole analysis; IR nodes reference them by ID even after the declaring
// scope is gone, which is how compound-assignment temporaries outlive
// their transient scope.
type Symbol struct {
	Name    source.StringID
	Type    types.Type
	Quals   types.Quals
	Storage Storage
	Span    source.Span
}
