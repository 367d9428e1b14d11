package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores declared symbols in a compact slice. Index 0 is reserved
// for NoSymbolID, so a zero ID never aliases a real symbol.
type Arena struct {
	data []Symbol
}

// NewArena creates a symbol arena with an optional capacity hint.
func NewArena(capacity uint32) *Arena {
	if capacity == 0 {
		capacity = 64
	}
	return &Arena{
		data: make([]Symbol, 1, capacity+1), // index 0 reserved for NoSymbolID
	}
}

// New allocates a symbol in the arena and returns its ID.
func (a *Arena) New(sym Symbol) SymbolID {
	value, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("symbols arena overflow: %w", err))
	}
	id := SymbolID(value)
	a.data = append(a.data, sym)
	return id
}

// Get returns a symbol pointer or nil for an invalid ID.
func (a *Arena) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(a.data) {
		return nil
	}
	return &a.data[id]
}

// Len reports the number of stored symbols excluding the sentinel.
func (a *Arena) Len() int { return len(a.data) - 1 }
