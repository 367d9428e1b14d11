package sema

import (
	"fmt"

	"cedar/internal/source"
	"cedar/internal/types"
)

// Ошибки ниже — типизированные исходы внутренних помощников. Диспетчер
// сводит их в диагностики через reportIf; тесты разбирают их напрямую
// через errors.As.

// CastError means no implicit conversion exists between two types.
type CastError struct {
	From types.Type
	To   types.Type
	Span source.Span
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cannot implicitly convert '%s' to '%s'", e.From, e.To)
}

// NonScalarCastError means an explicit cast targets an aggregate or
// other non-scalar type.
type NonScalarCastError struct {
	Target types.Type
	Span   source.Span
}

func (e *NonScalarCastError) Error() string {
	return fmt.Sprintf("cannot cast to non-scalar type '%s'", e.Target)
}

// FloatPointerCastError means an explicit cast crosses between floating
// and pointer representations.
type FloatPointerCastError struct {
	Span source.Span
}

func (e *FloatPointerCastError) Error() string {
	return "cannot cast between floating and pointer types"
}

// StructCastError means the cast source is a struct or union value.
type StructCastError struct {
	Span source.Span
}

func (e *StructCastError) Error() string {
	return "cannot cast a struct or union value"
}

// VoidCastError means the cast source has type void.
type VoidCastError struct {
	Span source.Span
}

func (e *VoidCastError) Error() string {
	return "cannot cast an expression of type 'void'"
}

// NotAssignableError means the assignment target is not a modifiable
// lvalue. Reason is the human-readable clause of the message.
type NotAssignableError struct {
	Reason string
	Span   source.Span
}

func (e *NotAssignableError) Error() string {
	return "cannot assign to " + e.Reason
}
