package layout

import (
	"fmt"

	"cedar/internal/types"
)

// ErrorKind enumerates layout failures.
type ErrorKind uint8

const (
	// ErrIncomplete marks void, function types and unbounded arrays.
	ErrIncomplete ErrorKind = iota + 1
	// ErrUnknownTag marks a struct or union whose tag has no definition.
	ErrUnknownTag
	// ErrRecursive marks a struct that embeds itself by value.
	ErrRecursive
	// ErrTooLarge marks an array whose byte size overflows.
	ErrTooLarge
)

// Error carries the failing type so callers can phrase diagnostics.
type Error struct {
	Kind ErrorKind
	Type types.Type
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ErrIncomplete:
		return fmt.Sprintf("type '%s' has no size", e.Type)
	case ErrUnknownTag:
		return fmt.Sprintf("'%s' is not defined", e.Type)
	case ErrRecursive:
		return fmt.Sprintf("'%s' embeds itself and has infinite size", e.Type)
	case ErrTooLarge:
		return fmt.Sprintf("'%s' is too large", e.Type)
	default:
		return fmt.Sprintf("layout error for '%s'", e.Type)
	}
}
