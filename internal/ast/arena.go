package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is append-only typed storage with 1-based indices, so a zero ID
// stays free to mean "no node".
type Arena[T any] struct {
	data []T
}

// NewArena creates an arena; capHint sizes the backing slice.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate stores value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	idx, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("ast arena overflow: %w", err))
	}
	return idx
}

// Get returns the element at index, or nil for 0 and out-of-range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Len returns the number of stored elements.
func (a *Arena[T]) Len() int { return len(a.data) }
